package dispatcher

import (
	"context"
	"fmt"
	"reflect"

	"github.com/garyjia/eventbus/internal/domain/event"
	"github.com/garyjia/eventbus/internal/domain/lifecycle"
	"go.uber.org/zap"
)

// ErrorHandler receives errors captured from events when failures are allowed.
// A returned error aborts the run and is returned from Run.
type ErrorHandler func(err error) error

// CompletionFunc runs after every event has been processed. A returned error
// stops the remaining callbacks and is returned from Run.
type CompletionFunc func(d *Dispatcher) error

// Dispatcher runs a fixed, ordered sequence of events one after another.
//
// A Dispatcher is built fluently and is not safe for concurrent use.
type Dispatcher struct {
	events      []any
	onError     ErrorHandler
	completions []CompletionFunc
	policy      Policy

	machine lifecycle.StateMachine
	logger  *zap.Logger
}

// New creates a dispatcher for the given events. Slice and array arguments,
// such as []event.Event or []*MyEvent, are flattened in place. Nothing is
// validated until Run.
func New(events ...any) *Dispatcher {
	return &Dispatcher{
		events:  normalize(events),
		policy:  PolicyStrict,
		machine: lifecycle.NewRunMachine(),
		logger:  zap.NewNop(),
	}
}

// Create is equivalent to New
func Create(events ...any) *Dispatcher {
	return New(events...)
}

func normalize(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		switch vs := v.(type) {
		case []event.Event:
			for _, e := range vs {
				out = append(out, e)
			}
		case []any:
			out = append(out, vs...)
		default:
			rv := reflect.ValueOf(v)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				out = append(out, v)
				continue
			}
			for i := 0; i < rv.Len(); i++ {
				out = append(out, rv.Index(i).Interface())
			}
		}
	}
	return out
}

// WithLogger sets the logger used during Run
func (d *Dispatcher) WithLogger(logger *zap.Logger) *Dispatcher {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// OnComplete appends a completion callback
func (d *Dispatcher) OnComplete(fn CompletionFunc) *Dispatcher {
	if fn != nil {
		d.completions = append(d.completions, fn)
	}
	return d
}

// OnError replaces the failure handler
func (d *Dispatcher) OnError(fn ErrorHandler) *Dispatcher {
	d.onError = fn
	return d
}

// AllowFailures switches the dispatcher to PolicyTolerant for good
func (d *Dispatcher) AllowFailures() *Dispatcher {
	d.policy = PolicyTolerant
	return d
}

// Len returns the number of events
func (d *Dispatcher) Len() int {
	return len(d.events)
}

// Events returns a copy of the event sequence
func (d *Dispatcher) Events() []any {
	out := make([]any, len(d.events))
	copy(out, d.events)
	return out
}

// Policy returns the failure policy
func (d *Dispatcher) Policy() Policy {
	return d.policy
}

// HasFailureHandler reports whether OnError registered a handler
func (d *Dispatcher) HasFailureHandler() bool {
	return d.onError != nil
}

// State returns the run state
func (d *Dispatcher) State() lifecycle.State {
	return d.machine.State()
}

// Run executes every event in order, then every completion callback.
//
// Event errors are discarded under PolicyStrict. Under PolicyTolerant they are
// passed to the failure handler; without one, Run stops at the first failure
// with ErrNoFailureHandler and the completion callbacks are skipped. Errors
// from the failure handler and from completion callbacks are returned as is.
// Run may be called again once it has returned; every event runs again.
func (d *Dispatcher) Run(ctx context.Context) (*Dispatcher, error) {
	if err := d.machine.Fire(lifecycle.TriggerStart); err != nil {
		return d, fmt.Errorf("dispatcher cannot run: %w", err)
	}
	// Leave RUNNING even if the failure handler panics
	defer func() {
		if d.machine.State() == lifecycle.StateRunning {
			_ = d.machine.Fire(lifecycle.TriggerAbort)
		}
	}()

	d.logger.Info("Dispatching events",
		zap.Int("event_count", len(d.events)),
		zap.Stringer("policy", d.policy),
		zap.Int("completion_count", len(d.completions)),
	)

	for i, v := range d.events {
		err := d.execute(ctx, i, v)
		if err == nil {
			continue
		}

		if fatal := d.handleFailure(err); fatal != nil {
			_ = d.machine.Fire(lifecycle.TriggerAbort)
			return d, fatal
		}
	}

	_ = d.machine.Fire(lifecycle.TriggerFinish)

	for i, fn := range d.completions {
		if err := fn(d); err != nil {
			d.logger.Error("Completion callback failed",
				zap.Int("callback_index", i),
				zap.Error(err),
			)
			return d, err
		}
	}

	d.logger.Info("Dispatch completed", zap.Int("event_count", len(d.events)))

	return d, nil
}

// execute runs one element with panic recovery
func (d *Dispatcher) execute(ctx context.Context, index int, v any) (err error) {
	identity := fmt.Sprintf("%T", v)

	defer func() {
		if r := recover(); r != nil {
			err = &ExecutionError{
				Index: index,
				Event: identity,
				Err:   fmt.Errorf("%w: %v", ErrEventPanicked, r),
			}
		}
	}()

	identity = event.ClassName(v)

	e, ok := v.(event.Event)
	if !ok {
		return &ExecutionError{
			Index: index,
			Event: identity,
			Err:   fmt.Errorf("%w: handle method does not exist in event [%s]", ErrNotExecutable, identity),
		}
	}

	fields := []zap.Field{zap.Int("index", index), zap.String("event", identity)}
	if name, ok := event.NameOf(e); ok {
		fields = append(fields, zap.String("event_name", name))
	}
	d.logger.Debug("Handling event", fields...)

	if herr := e.Handle(ctx); herr != nil {
		return &ExecutionError{Index: index, Event: identity, Err: herr}
	}
	return nil
}

// handleFailure applies the policy to a captured error. A non-nil result
// aborts the run.
func (d *Dispatcher) handleFailure(err error) error {
	if d.policy == PolicyStrict {
		d.logger.Debug("Event failure discarded", zap.Error(err))
		return nil
	}

	if d.onError == nil {
		d.logger.Error("Event failed with no failure handler registered", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNoFailureHandler, err)
	}

	d.logger.Warn("Event failed, routing to failure handler", zap.Error(err))
	return d.onError(err)
}
