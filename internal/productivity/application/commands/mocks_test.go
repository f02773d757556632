package commands

import (
	"context"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type txKey struct{}

// mockTaskRepo is a mock implementation of task.Repository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindOpen(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockScoreRepo is a mock implementation of task.PriorityScoreRepository.
type mockScoreRepo struct {
	mock.Mock
}

func (m *mockScoreRepo) Save(ctx context.Context, score task.PriorityScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *mockScoreRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]task.PriorityScore, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.PriorityScore), args.Error(1)
}

func (m *mockScoreRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// mockOutbox is a mock implementation of outbox.Writer.
type mockOutbox struct {
	mock.Mock
}

func (m *mockOutbox) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockScoreCache struct {
	mock.Mock
}

func (m *mockScoreCache) GetNext(ctx context.Context, userID uuid.UUID, energy value_objects.EnergyLevel) (services.CachedNext, bool, error) {
	args := m.Called(ctx, userID, energy)
	return args.Get(0).(services.CachedNext), args.Bool(1), args.Error(2)
}

func (m *mockScoreCache) SetNext(ctx context.Context, userID uuid.UUID, energy value_objects.EnergyLevel, next services.CachedNext) error {
	args := m.Called(ctx, userID, energy, next)
	return args.Error(0)
}

func (m *mockScoreCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type fixture struct {
	taskRepo *mockTaskRepo
	outbox   *mockOutbox
	uow      *mockUnitOfWork
	ctx      context.Context
	txCtx    context.Context
}

// newFixture expects one unit of work. commit selects Commit or Rollback.
func newFixture(commit bool) *fixture {
	f := &fixture{
		taskRepo: new(mockTaskRepo),
		outbox:   new(mockOutbox),
		uow:      new(mockUnitOfWork),
		ctx:      context.Background(),
	}
	f.txCtx = context.WithValue(f.ctx, txKey{}, "tx")
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	if commit {
		f.uow.On("Commit", f.txCtx).Return(nil)
	} else {
		f.uow.On("Rollback", f.txCtx).Return(nil)
	}
	return f
}

// expectEvents expects one outbox batch whose routing keys are exactly keys.
func (f *fixture) expectEvents(keys ...string) {
	f.outbox.On("SaveBatch", f.txCtx, mock.MatchedBy(func(msgs []*outbox.Message) bool {
		if len(msgs) != len(keys) {
			return false
		}
		for i, msg := range msgs {
			if msg.RoutingKey != keys[i] {
				return false
			}
		}
		return true
	})).Return(nil).Once()
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.taskRepo.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }
