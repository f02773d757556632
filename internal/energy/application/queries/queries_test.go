package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCheckInRepo struct {
	mock.Mock
}

func (m *mockCheckInRepo) Save(ctx context.Context, c *checkin.CheckIn) error {
	return m.Called(ctx, c).Error(0)
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

var fixedNow = time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestCurrentEnergyHandler(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := checkin.DayOf(fixedNow)

	t.Run("returns today's level", func(t *testing.T) {
		repo := new(mockCheckInRepo)
		c := checkin.Rehydrate(uuid.New(), userID, today, value_objects.EnergyHigh, "", fixedNow)
		repo.On("FindByUserAndDay", ctx, userID, today).Return(c, nil)

		level, err := NewCurrentEnergyHandler(repo, clock).CurrentEnergy(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, value_objects.EnergyHigh, level)

		dto, err := NewCurrentEnergyHandler(repo, clock).Today(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, dto)
		assert.Equal(t, "2026-06-15", dto.Day)
	})

	t.Run("nothing logged today means no energy", func(t *testing.T) {
		repo := new(mockCheckInRepo)
		repo.On("FindByUserAndDay", ctx, userID, today).Return(nil, checkin.ErrCheckInNotFound)

		handler := NewCurrentEnergyHandler(repo, clock)
		level, err := handler.CurrentEnergy(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, value_objects.EnergyNone, level)

		dto, err := handler.Today(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, dto)
	})

	t.Run("repository errors surface", func(t *testing.T) {
		repo := new(mockCheckInRepo)
		repo.On("FindByUserAndDay", ctx, userID, today).Return(nil, errors.New("db down"))

		_, err := NewCurrentEnergyHandler(repo, clock).CurrentEnergy(ctx, userID)
		assert.EqualError(t, err, "db down")
	})
}

func TestEnergyHistoryHandler(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := checkin.DayOf(fixedNow)

	t.Run("defaults to a week", func(t *testing.T) {
		repo := new(mockCheckInRepo)
		repo.On("ListRange", ctx, userID, today.AddDate(0, 0, -6), today).Return([]*checkin.CheckIn{
			checkin.Rehydrate(uuid.New(), userID, today, value_objects.EnergyLow, "tired", fixedNow),
			checkin.Rehydrate(uuid.New(), userID, today.AddDate(0, 0, -2), value_objects.EnergyHigh, "", fixedNow),
		}, nil)

		history, err := NewEnergyHistoryHandler(repo, clock).Handle(ctx, EnergyHistoryQuery{UserID: userID})
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "2026-06-15", history[0].Day)
		assert.Equal(t, "tired", history[0].Note)
		assert.Equal(t, "2026-06-13", history[1].Day)
		repo.AssertExpectations(t)
	})

	t.Run("single day", func(t *testing.T) {
		repo := new(mockCheckInRepo)
		repo.On("ListRange", ctx, userID, today, today).Return(nil, nil)

		history, err := NewEnergyHistoryHandler(repo, clock).Handle(ctx, EnergyHistoryQuery{UserID: userID, Days: 1})
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
