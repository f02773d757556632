package application

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/focusflow/internal/shared/domain"
	"github.com/felixgeelhaar/focusflow/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type txKey struct{}

func TestWithUnitOfWork(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, txKey{}, "tx")

	t.Run("commits on success", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)

		err := WithUnitOfWork(ctx, uow, func(got context.Context) error {
			assert.Equal(t, txCtx, got)
			return nil
		})

		require.NoError(t, err)
		uow.AssertExpectations(t)
	})

	t.Run("rolls back and returns the work error", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(errors.New("rollback failed"))
		workErr := errors.New("work failed")

		err := WithUnitOfWork(ctx, uow, func(context.Context) error { return workErr })

		assert.Equal(t, workErr, err)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("does not run work when begin fails", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		beginErr := errors.New("begin failed")
		uow.On("Begin", ctx).Return(ctx, beginErr)
		ran := false

		err := WithUnitOfWork(ctx, uow, func(context.Context) error {
			ran = true
			return nil
		})

		assert.Equal(t, beginErr, err)
		assert.False(t, ran)
	})

	t.Run("surfaces commit errors", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		commitErr := errors.New("commit failed")
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(commitErr)

		err := WithUnitOfWork(ctx, uow, func(context.Context) error { return nil })
		assert.Equal(t, commitErr, err)
	})
}

type stampedEvent struct {
	domain.BaseEvent
}

func TestNewEventMetadata(t *testing.T) {
	userID := uuid.New()

	t.Run("reuses a uuid correlation id from context", func(t *testing.T) {
		corr := uuid.New()
		ctx := observability.WithCorrelationID(context.Background(), corr.String())

		meta := NewEventMetadata(ctx, userID)

		assert.Equal(t, corr, meta.CorrelationID)
		assert.Equal(t, userID, meta.UserID)
		assert.NotEqual(t, uuid.Nil, meta.CausationID)
	})

	t.Run("generates one otherwise", func(t *testing.T) {
		ctx := observability.WithCorrelationID(context.Background(), "not-a-uuid")
		meta := NewEventMetadata(ctx, userID)
		assert.NotEqual(t, uuid.Nil, meta.CorrelationID)
	})
}

func TestApplyEventMetadata(t *testing.T) {
	event := &stampedEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "Task", "core.task.created")}
	meta := NewEventMetadata(context.Background(), uuid.New())

	ApplyEventMetadata([]domain.DomainEvent{event}, meta)

	assert.Equal(t, meta, event.Metadata())
	assert.NotPanics(t, func() { ApplyEventMetadata(nil, meta) })
}
