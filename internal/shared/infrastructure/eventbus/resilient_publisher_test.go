package eventbus_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyPublisher struct {
	mu     sync.Mutex
	err    error
	calls  int
	closed bool
}

func (f *flakyPublisher) Publish(context.Context, string, []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *flakyPublisher) Close() error {
	f.closed = true
	return nil
}

func (f *flakyPublisher) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func TestResilientPublisher(t *testing.T) {
	ctx := context.Background()
	brokerDown := errors.New("connection refused")

	t.Run("passes through while healthy", func(t *testing.T) {
		next := &flakyPublisher{}
		p := eventbus.NewResilientPublisher(next, eventbus.BreakerConfig{MaxFailures: 2}, nil)

		require.NoError(t, p.Publish(ctx, "core.task.created", nil))
		assert.Equal(t, 1, next.calls)
		assert.Equal(t, "closed", p.State())
	})

	t.Run("opens after consecutive failures", func(t *testing.T) {
		next := &flakyPublisher{err: brokerDown}
		p := eventbus.NewResilientPublisher(next, eventbus.BreakerConfig{MaxFailures: 2, OpenTimeout: time.Hour}, nil)

		assert.ErrorIs(t, p.Publish(ctx, "k", nil), brokerDown)
		assert.ErrorIs(t, p.Publish(ctx, "k", nil), brokerDown)
		assert.Equal(t, "open", p.State())

		err := p.Publish(ctx, "k", nil)
		assert.ErrorIs(t, err, eventbus.ErrPublisherUnavailable)
		assert.Equal(t, 2, next.calls)
	})

	t.Run("recovers after the open period", func(t *testing.T) {
		next := &flakyPublisher{err: brokerDown}
		p := eventbus.NewResilientPublisher(next, eventbus.BreakerConfig{MaxFailures: 1, OpenTimeout: 20 * time.Millisecond}, nil)

		assert.Error(t, p.Publish(ctx, "k", nil))
		assert.Equal(t, "open", p.State())

		next.setErr(nil)
		assert.Eventually(t, func() bool {
			return p.Publish(ctx, "k", nil) == nil
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, "closed", p.State())
	})

	t.Run("close reaches the wrapped publisher", func(t *testing.T) {
		next := &flakyPublisher{}
		require.NoError(t, eventbus.NewResilientPublisher(next, eventbus.DefaultBreakerConfig(), nil).Close())
		assert.True(t, next.closed)
	})
}
