package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type txKey struct{}

type mockCheckInRepo struct {
	mock.Mock
}

func (m *mockCheckInRepo) Save(ctx context.Context, c *checkin.CheckIn) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCheckInRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*checkin.CheckIn, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkin.CheckIn), args.Error(1)
}

func (m *mockCheckInRepo) FindLatest(ctx context.Context, userID uuid.UUID) (*checkin.CheckIn, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkin.CheckIn), args.Error(1)
}

func (m *mockCheckInRepo) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*checkin.CheckIn, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*checkin.CheckIn), args.Error(1)
}

type mockOutbox struct {
	mock.Mock
}

func (m *mockOutbox) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

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

func TestLogEnergyHandler_Handle(t *testing.T) {
	userID := uuid.New()
	day := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	setup := func() (*LogEnergyHandler, *mockCheckInRepo, *mockOutbox, *mockUnitOfWork, context.Context, context.Context) {
		repo := new(mockCheckInRepo)
		ob := new(mockOutbox)
		uow := new(mockUnitOfWork)
		ctx := context.Background()
		txCtx := context.WithValue(ctx, txKey{}, "tx")
		uow.On("Begin", ctx).Return(txCtx, nil)
		return NewLogEnergyHandler(repo, ob, uow), repo, ob, uow, ctx, txCtx
	}

	t.Run("creates the first check-in of the day", func(t *testing.T) {
		handler, repo, ob, uow, ctx, txCtx := setup()
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByUserAndDay", txCtx, userID, checkin.DayOf(day)).Return(nil, checkin.ErrCheckInNotFound)
		repo.On("Save", txCtx, mock.AnythingOfType("*checkin.CheckIn")).Return(nil)
		ob.On("SaveBatch", txCtx, mock.MatchedBy(func(msgs []*outbox.Message) bool {
			return len(msgs) == 1 && msgs[0].RoutingKey == checkin.RoutingKeyLogged
		})).Return(nil)

		result, err := handler.Handle(ctx, LogEnergyCommand{UserID: userID, Level: "high", Day: day})

		require.NoError(t, err)
		assert.Equal(t, value_objects.EnergyHigh, result.Level)
		assert.False(t, result.Replaced)
		assert.Equal(t, checkin.DayOf(day), result.Day)
		repo.AssertExpectations(t)
		ob.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("replaces an existing check-in", func(t *testing.T) {
		handler, repo, ob, uow, ctx, txCtx := setup()
		existing, err := checkin.NewCheckIn(userID, day, value_objects.EnergyLow, "")
		require.NoError(t, err)
		existing.ClearDomainEvents()

		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByUserAndDay", txCtx, userID, checkin.DayOf(day)).Return(existing, nil)
		repo.On("Save", txCtx, existing).Return(nil)
		ob.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, LogEnergyCommand{UserID: userID, Level: "Medium", Day: day})

		require.NoError(t, err)
		assert.True(t, result.Replaced)
		assert.Equal(t, existing.ID(), result.CheckInID)
		assert.Equal(t, value_objects.EnergyMedium, existing.Level())
		assert.Empty(t, existing.DomainEvents())
	})

	t.Run("rejects unknown levels before opening a transaction", func(t *testing.T) {
		repo := new(mockCheckInRepo)
		uow := new(mockUnitOfWork)
		handler := NewLogEnergyHandler(repo, new(mockOutbox), uow)

		_, err := handler.Handle(context.Background(), LogEnergyCommand{UserID: userID, Level: "exhausted"})

		assert.ErrorIs(t, err, value_objects.ErrInvalidEnergyLevel)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("rolls back when saving fails", func(t *testing.T) {
		handler, repo, _, uow, ctx, txCtx := setup()
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByUserAndDay", txCtx, userID, checkin.DayOf(day)).Return(nil, checkin.ErrCheckInNotFound)
		repo.On("Save", txCtx, mock.Anything).Return(errors.New("locked"))

		_, err := handler.Handle(ctx, LogEnergyCommand{UserID: userID, Level: "low", Day: day})

		assert.EqualError(t, err, "locked")
		uow.AssertExpectations(t)
	})

	t.Run("an empty level is rejected", func(t *testing.T) {
		handler, repo, _, uow, ctx, txCtx := setup()
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByUserAndDay", txCtx, userID, checkin.DayOf(day)).Return(nil, checkin.ErrCheckInNotFound)

		_, err := handler.Handle(ctx, LogEnergyCommand{UserID: userID, Level: "", Day: day})

		assert.ErrorIs(t, err, checkin.ErrLevelRequired)
	})
}
