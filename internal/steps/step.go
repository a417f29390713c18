// Package steps turns configured demo steps into dispatcher events.
package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/garyjia/eventbus/internal/config"
	"github.com/garyjia/eventbus/internal/domain/event"
	"go.uber.org/zap"
)

// ErrStepFailed is returned by steps configured with fail: true
var ErrStepFailed = errors.New("step failed")

// Step is an event built from a StepConfig
type Step struct {
	cfg    config.StepConfig
	logger *zap.Logger
}

// New creates a step. A nil logger discards output.
func New(cfg config.StepConfig, logger *zap.Logger) *Step {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Step{cfg: cfg, logger: logger}
}

// Build creates one step per config entry, in order
func Build(cfgs []config.StepConfig, logger *zap.Logger) []event.Event {
	out := make([]event.Event, 0, len(cfgs))
	for _, c := range cfgs {
		out = append(out, New(c, logger))
	}
	return out
}

// Handle logs the step message, then fails or panics if configured to
func (s *Step) Handle(ctx context.Context) error {
	s.logger.Info("Step executed",
		zap.String("step", s.cfg.Name),
		zap.String("message", s.cfg.Message),
	)

	if s.cfg.Panic {
		panic(fmt.Sprintf("step %s panicked", s.cfg.Name))
	}
	if s.cfg.Fail {
		return fmt.Errorf("%w: %s", ErrStepFailed, s.cfg.Name)
	}
	return nil
}

// EventName returns the configured step name
func (s *Step) EventName() (string, bool) {
	return s.cfg.Name, s.cfg.Name != ""
}
