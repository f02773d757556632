package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleAggregate struct {
	domain.BaseAggregateRoot
}

type sampleEvent struct {
	domain.BaseEvent
	Name string `json:"name"`
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	agg := &sampleAggregate{BaseAggregateRoot: domain.NewBaseAggregateRoot()}
	require.NotEqual(t, uuid.Nil, agg.ID())
	assert.Empty(t, agg.DomainEvents())

	before := agg.UpdatedAt()
	time.Sleep(time.Millisecond)
	agg.AddDomainEvent(sampleEvent{BaseEvent: domain.NewBaseEvent(agg.ID(), "Sample", "test.sample.created")})

	require.Len(t, agg.DomainEvents(), 1)
	assert.True(t, agg.UpdatedAt().After(before))

	agg.ClearDomainEvents()
	assert.Empty(t, agg.DomainEvents())
}

func TestBaseAggregateRoot_Version(t *testing.T) {
	entity := domain.RehydrateBaseEntity(uuid.New(), time.Now(), time.Now())
	agg := domain.RehydrateBaseAggregateRoot(entity, 3)

	assert.Equal(t, 3, agg.Version())
	agg.IncrementVersion()
	assert.Equal(t, 4, agg.Version())
	assert.Empty(t, agg.DomainEvents())
}

func TestBaseEntity_SameIdentity(t *testing.T) {
	id := uuid.New()
	a := domain.NewBaseEntityWithID(id)
	b := domain.RehydrateBaseEntity(id, time.Now(), time.Now())

	assert.True(t, a.SameIdentity(b))
	assert.False(t, a.SameIdentity(domain.NewBaseEntity()))
	assert.False(t, a.SameIdentity(nil))
}

func TestBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	event := domain.NewBaseEvent(aggregateID, "Task", "core.task.created")

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "Task", event.AggregateType())
	assert.Equal(t, "core.task.created", event.RoutingKey())
	assert.Equal(t, time.UTC, event.OccurredAt().Location())

	meta := domain.EventMetadata{CorrelationID: uuid.New(), UserID: uuid.New()}
	event.SetMetadata(meta)
	assert.Equal(t, meta, event.Metadata())
}
