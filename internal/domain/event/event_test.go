package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendReceipt struct{}

func (sendReceipt) Handle(ctx context.Context) error { return nil }

type customIdentity struct{ sendReceipt }

func (customIdentity) EventClassName() string { return "billing.receipt" }

type selfNamed struct{ sendReceipt }

func (selfNamed) EventName() (string, bool) { return "receipt", true }

func TestClassName(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"value type", sendReceipt{}, "event.sendReceipt"},
		{"pointer type", &sendReceipt{}, "*event.sendReceipt"},
		{"override", customIdentity{}, "billing.receipt"},
		{"not an event", 42, "int"},
		{"nil", nil, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassName(tt.value))
		})
	}
}

func TestNameOf(t *testing.T) {
	t.Run("absent by default", func(t *testing.T) {
		name, ok := NameOf(sendReceipt{})
		assert.False(t, ok)
		assert.Empty(t, name)
	})

	t.Run("reported by Namer", func(t *testing.T) {
		name, ok := NameOf(selfNamed{})
		assert.True(t, ok)
		assert.Equal(t, "receipt", name)
	})
}

func TestRequireName(t *testing.T) {
	t.Run("fails without a name", func(t *testing.T) {
		_, err := RequireName(&sendReceipt{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNameNotSet))
		assert.Contains(t, err.Error(), "[*event.sendReceipt]")
	})

	t.Run("returns the name", func(t *testing.T) {
		name, err := RequireName(selfNamed{})
		require.NoError(t, err)
		assert.Equal(t, "receipt", name)
	})
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	called := 0
	f := Func(func(ctx context.Context) error {
		called++
		return boom
	})

	err := f.Handle(context.Background())

	assert.Equal(t, boom, err)
	assert.Equal(t, 1, called)
}

func TestNamed(t *testing.T) {
	t.Run("reports name and keeps identity", func(t *testing.T) {
		e := Named("welcome-mail", &sendReceipt{})

		name, ok := NameOf(e)
		assert.True(t, ok)
		assert.Equal(t, "welcome-mail", name)
		assert.Equal(t, "*event.sendReceipt", ClassName(e))
	})

	t.Run("empty name is absent", func(t *testing.T) {
		_, ok := NameOf(Named("", sendReceipt{}))
		assert.False(t, ok)
	})

	t.Run("delegates Handle", func(t *testing.T) {
		called := false
		e := Named("x", Func(func(ctx context.Context) error {
			called = true
			return nil
		}))

		require.NoError(t, e.Handle(context.Background()))
		assert.True(t, called)
	})
}
