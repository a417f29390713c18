package steps

import (
	"github.com/garyjia/eventbus/internal/application/dispatcher"
	"go.uber.org/zap"
)

// Report collects failures routed to it and summarises a finished run
type Report struct {
	Failures []error
	logger   *zap.Logger
}

// NewReport creates an empty report
func NewReport(logger *zap.Logger) *Report {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Report{logger: logger}
}

// Record is a dispatcher.ErrorHandler
func (r *Report) Record(err error) error {
	r.Failures = append(r.Failures, err)
	r.logger.Warn("Step failure recorded", zap.Error(err))
	return nil
}

// Summarize is a dispatcher.CompletionFunc
func (r *Report) Summarize(d *dispatcher.Dispatcher) error {
	r.logger.Info("Run summary",
		zap.Int("steps", d.Len()),
		zap.Int("failures", len(r.Failures)),
		zap.Stringer("policy", d.Policy()),
		zap.Stringer("state", d.State()),
	)
	return nil
}
