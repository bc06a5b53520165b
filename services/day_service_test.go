package services

import (
	"context"
	"errors"
	"testing"

	"daybook/database"
	"daybook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==================== MOCKS ====================

// MockDayRepository is a mock implementation of DayRepository interface
type MockDayRepository struct {
	mock.Mock
}

// Ensure MockDayRepository implements DayRepository interface
var _ DayRepository = (*MockDayRepository)(nil)

func (m *MockDayRepository) GetDay(ctx context.Context, id int64) (*models.Day, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Day), args.Error(1)
}

func (m *MockDayRepository) ObserveDay(ctx context.Context, id int64) <-chan *models.Day {
	args := m.Called(ctx, id)
	return args.Get(0).(<-chan *models.Day)
}

func (m *MockDayRepository) ObserveDayRange(ctx context.Context, startID, endID int64) <-chan []models.Day {
	args := m.Called(ctx, startID, endID)
	return args.Get(0).(<-chan []models.Day)
}

func (m *MockDayRepository) ObserveDaysByCalendarDate(ctx context.Context, month, dayOfMonth int) <-chan []models.Day {
	args := m.Called(ctx, month, dayOfMonth)
	return args.Get(0).(<-chan []models.Day)
}

func (m *MockDayRepository) InsertDay(ctx context.Context, day *models.Day) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *MockDayRepository) UpdateDay(ctx context.Context, day *models.Day) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

// ==================== TESTS ====================

func TestDayService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing day is returned as-is", func(t *testing.T) {
		repo := new(MockDayRepository)
		want := models.NewDay(18840, "Trip")
		repo.On("GetDay", ctx, int64(18840)).Return(want, nil)

		service := NewDayService(repo)
		got, err := service.Get(ctx, 18840)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		repo.AssertExpectations(t)
	})

	t.Run("Absent day yields an empty entry for the date", func(t *testing.T) {
		repo := new(MockDayRepository)
		repo.On("GetDay", ctx, int64(18840)).Return(nil, nil)

		service := NewDayService(repo)
		got, err := service.Get(ctx, 18840)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(18840), got.ID)
		assert.Empty(t, got.Summary)
		assert.Equal(t, models.DateOfEpochDay(18840), got.Date)
	})

	t.Run("Repository error propagates", func(t *testing.T) {
		repo := new(MockDayRepository)
		repoErr := errors.New("disk on fire")
		repo.On("GetDay", ctx, int64(1)).Return(nil, repoErr)

		service := NewDayService(repo)
		_, err := service.Get(ctx, 1)

		assert.ErrorIs(t, err, repoErr)
	})
}

func TestDayService_Ensure(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates when missing", func(t *testing.T) {
		repo := new(MockDayRepository)
		repo.On("InsertDay", ctx, mock.AnythingOfType("*models.Day")).Return(nil)

		service := NewDayService(repo)
		assert.NoError(t, service.Ensure(ctx, 18840))
		repo.AssertExpectations(t)
	})

	t.Run("Swallows the duplicate conflict", func(t *testing.T) {
		repo := new(MockDayRepository)
		repo.On("InsertDay", ctx, mock.AnythingOfType("*models.Day")).Return(database.ErrConflict)

		service := NewDayService(repo)
		assert.NoError(t, service.Ensure(ctx, 18840))
	})

	t.Run("Other errors still surface", func(t *testing.T) {
		repo := new(MockDayRepository)
		repoErr := errors.New("locked")
		repo.On("InsertDay", ctx, mock.AnythingOfType("*models.Day")).Return(repoErr)

		service := NewDayService(repo)
		assert.ErrorIs(t, service.Ensure(ctx, 18840), repoErr)
	})
}

func TestDayService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Inserts on first save", func(t *testing.T) {
		repo := new(MockDayRepository)
		repo.On("GetDay", ctx, int64(100)).Return(nil, nil)
		repo.On("InsertDay", ctx, mock.MatchedBy(func(d *models.Day) bool {
			return d.ID == 100 && d.Summary == "hello" && d.IsFavorite
		})).Return(nil)

		service := NewDayService(repo)
		day, err := service.Save(ctx, 100, "hello", true)

		require.NoError(t, err)
		assert.Equal(t, "hello", day.Summary)
		repo.AssertExpectations(t)
	})

	t.Run("Updates on later saves", func(t *testing.T) {
		repo := new(MockDayRepository)
		existing := models.NewDay(100, "old")
		repo.On("GetDay", ctx, int64(100)).Return(existing, nil)
		repo.On("UpdateDay", ctx, mock.MatchedBy(func(d *models.Day) bool {
			return d.ID == 100 && d.Summary == "new"
		})).Return(nil)

		service := NewDayService(repo)
		day, err := service.Save(ctx, 100, "new", false)

		require.NoError(t, err)
		assert.Equal(t, "new", day.Summary)
		repo.AssertExpectations(t)
	})
}

func TestDayService_ToggleFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("Flips the flag", func(t *testing.T) {
		repo := new(MockDayRepository)
		existing := models.NewDay(100, "entry")
		repo.On("GetDay", ctx, int64(100)).Return(existing, nil)
		repo.On("UpdateDay", ctx, mock.MatchedBy(func(d *models.Day) bool {
			return d.IsFavorite
		})).Return(nil)

		service := NewDayService(repo)
		day, err := service.ToggleFavorite(ctx, 100)

		require.NoError(t, err)
		assert.True(t, day.IsFavorite)
	})

	t.Run("Unknown day is an error", func(t *testing.T) {
		repo := new(MockDayRepository)
		repo.On("GetDay", ctx, int64(100)).Return(nil, nil)

		service := NewDayService(repo)
		_, err := service.ToggleFavorite(ctx, 100)

		assert.ErrorIs(t, err, ErrDayNotFound)
	})
}

func TestDayService_ObserveRange(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDayRepository)

	var stream <-chan []models.Day = make(chan []models.Day)
	// Bounds are normalized before hitting the repository
	repo.On("ObserveDayRange", ctx, int64(10), int64(20)).Return(stream)

	service := NewDayService(repo)
	service.ObserveRange(ctx, 20, 10)

	repo.AssertExpectations(t)
}
