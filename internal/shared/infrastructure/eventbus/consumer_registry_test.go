package eventbus_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConsumer struct {
	mu         sync.Mutex
	eventTypes []string
	events     []*eventbus.ConsumedEvent
	err        error
}

func (m *mockConsumer) EventTypes() []string {
	return m.eventTypes
}

func (m *mockConsumer) Handle(_ context.Context, event *eventbus.ConsumedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *mockConsumer) received() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"core.task.created", "core.task.created", true},
		{"core.task.created", "core.task.updated", false},
		{"core.task.*", "core.task.completed", true},
		{"core.*", "core.task.completed", false},
		{"core.#", "core.task.completed", true},
		{"core.task.#", "core.task", true},
		{"#", "core.energy.logged", true},
		{"*.energy.*", "core.energy.logged", true},
		{"core.#.logged", "core.energy.logged", true},
		{"core.#.logged", "core.task.completed", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, eventbus.MatchTopic(tt.pattern, tt.key))
		})
	}
}

func TestConsumerRegistry_Register(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(nil)
	consumer := &mockConsumer{eventTypes: []string{"core.task.created", "core.energy.logged"}}

	registry.Register(consumer)

	assert.Len(t, registry.GetConsumers("core.task.created"), 1)
	assert.Len(t, registry.GetConsumers("core.energy.logged"), 1)
	assert.Empty(t, registry.GetConsumers("core.task.deleted"))
	assert.Equal(t, 2, registry.ConsumerCount())
	assert.ElementsMatch(t, []string{"core.task.created", "core.energy.logged"}, registry.Patterns())
}

func TestConsumerRegistry_OverlappingPatternsDeliverOnce(t *testing.T) {
	registry := eventbus.NewConsumerRegistry(nil)
	consumer := &mockConsumer{eventTypes: []string{"core.task.#", "core.task.completed"}}
	registry.Register(consumer)

	err := registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{
		EventID:    uuid.New(),
		RoutingKey: "core.task.completed",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, consumer.received())
}

func TestConsumerRegistry_Dispatch(t *testing.T) {
	t.Run("delivers to every match in order", func(t *testing.T) {
		registry := eventbus.NewConsumerRegistry(nil)
		first := &mockConsumer{eventTypes: []string{"core.task.created"}}
		second := &mockConsumer{eventTypes: []string{"core.#"}}
		other := &mockConsumer{eventTypes: []string{"core.energy.logged"}}
		registry.Register(first)
		registry.Register(second)
		registry.Register(other)

		consumers := registry.GetConsumers("core.task.created")
		require.Len(t, consumers, 2)
		assert.Same(t, first, consumers[0])
		assert.Same(t, second, consumers[1])

		err := registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{RoutingKey: "core.task.created"})
		require.NoError(t, err)
		assert.Equal(t, 1, first.received())
		assert.Equal(t, 1, second.received())
		assert.Zero(t, other.received())
	})

	t.Run("keeps going after a failure and joins errors", func(t *testing.T) {
		registry := eventbus.NewConsumerRegistry(nil)
		errA := errors.New("a failed")
		errB := errors.New("b failed")
		a := &mockConsumer{eventTypes: []string{"core.task.created"}, err: errA}
		ok := &mockConsumer{eventTypes: []string{"core.task.created"}}
		b := &mockConsumer{eventTypes: []string{"core.task.created"}, err: errB}
		registry.Register(a)
		registry.Register(ok)
		registry.Register(b)

		err := registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{RoutingKey: "core.task.created"})

		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
		assert.Equal(t, 1, ok.received())
	})

	t.Run("no consumers is not an error", func(t *testing.T) {
		registry := eventbus.NewConsumerRegistry(nil)
		assert.NoError(t, registry.Dispatch(context.Background(), &eventbus.ConsumedEvent{RoutingKey: "x.y.z"}))
	})
}
