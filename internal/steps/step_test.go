package steps

import (
	"context"
	"errors"
	"testing"

	"github.com/garyjia/eventbus/internal/application/dispatcher"
	"github.com/garyjia/eventbus/internal/config"
	"github.com/garyjia/eventbus/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStep_Handle(t *testing.T) {
	t.Run("logs message", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		s := New(config.StepConfig{Name: "greet", Message: "hello"}, zap.New(core))

		require.NoError(t, s.Handle(context.Background()))

		entries := logs.FilterMessage("Step executed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "greet", entries[0].ContextMap()["step"])
		assert.Equal(t, "hello", entries[0].ContextMap()["message"])
	})

	t.Run("configured failure", func(t *testing.T) {
		err := New(config.StepConfig{Name: "flaky", Fail: true}, nil).Handle(context.Background())

		assert.True(t, errors.Is(err, ErrStepFailed))
		assert.Contains(t, err.Error(), "flaky")
	})

	t.Run("configured panic", func(t *testing.T) {
		s := New(config.StepConfig{Name: "crash", Panic: true}, nil)

		assert.PanicsWithValue(t, "step crash panicked", func() {
			_ = s.Handle(context.Background())
		})
	})
}

func TestStep_Name(t *testing.T) {
	name, ok := event.NameOf(New(config.StepConfig{Name: "greet"}, nil))
	assert.True(t, ok)
	assert.Equal(t, "greet", name)
	assert.Equal(t, "*steps.Step", event.ClassName(New(config.StepConfig{}, nil)))
}

func TestBuild(t *testing.T) {
	evts := Build([]config.StepConfig{{Name: "a"}, {Name: "b"}, {Name: "c"}}, nil)

	require.Len(t, evts, 3)
	for i, want := range []string{"a", "b", "c"} {
		name, _ := event.NameOf(evts[i])
		assert.Equal(t, want, name)
	}
}

func TestReport_WithDispatcher(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	report := NewReport(logger)

	cfgs := []config.StepConfig{
		{Name: "greet"},
		{Name: "flaky", Fail: true},
		{Name: "crash", Panic: true},
		{Name: "bye"},
	}

	_, err := dispatcher.New(Build(cfgs, logger)).
		AllowFailures().
		OnError(report.Record).
		OnComplete(report.Summarize).
		Run(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Failures, 2)
	assert.True(t, errors.Is(report.Failures[0], ErrStepFailed))
	assert.True(t, errors.Is(report.Failures[1], dispatcher.ErrEventPanicked))

	summary := logs.FilterMessage("Run summary").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(4), summary[0].ContextMap()["steps"])
	assert.Equal(t, int64(2), summary[0].ContextMap()["failures"])
	assert.Equal(t, "COMPLETED", summary[0].ContextMap()["state"])
}
