package occupancy_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	businessRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
	"github.com/kmlvsk/SBS-BookingEngine/internal/service/occupancy"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBusinessRepo struct {
	biz *domain.Business
	err error
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, _ int64) (*domain.Business, error) {
	return f.biz, f.err
}

type fakeScheduleRepo struct {
	entries []*domain.WeeklyScheduleEntry
}

func (f *fakeScheduleRepo) GetByBusinessAndWeekday(_ context.Context, _ int64, _ domain.Weekday) ([]*domain.WeeklyScheduleEntry, error) {
	return f.entries, nil
}

type fakeExceptionRepo struct {
	blocked bool
}

func (f *fakeExceptionRepo) IsBlocked(_ context.Context, _ int64, _ time.Time) (bool, error) {
	return f.blocked, nil
}

type fakeBookingRepo struct {
	confirmed int
}

func (f *fakeBookingRepo) CountConfirmedByDate(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.confirmed, nil
}

type env struct {
	businessRepo  *fakeBusinessRepo
	scheduleRepo  *fakeScheduleRepo
	exceptionRepo *fakeExceptionRepo
	bookingRepo   *fakeBookingRepo
	svc           *occupancy.Service
}

func newEnv() *env {
	e := &env{
		businessRepo: &fakeBusinessRepo{biz: &domain.Business{ID: 1, SlotIntervalMinutes: 30}},
		scheduleRepo: &fakeScheduleRepo{entries: []*domain.WeeklyScheduleEntry{{
			BusinessID:      1,
			Weekday:         domain.Monday,
			StartTime:       "09:00",
			EndTime:         "12:00",
			CapacityPerSlot: 2,
		}}},
		exceptionRepo: &fakeExceptionRepo{},
		bookingRepo:   &fakeBookingRepo{},
	}
	e.svc = occupancy.NewService(e.businessRepo, e.scheduleRepo, e.exceptionRepo, e.bookingRepo, nopLogger{})
	return e
}

var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestGetDailyOccupancy(t *testing.T) {
	e := newEnv()
	// 6 слотов по 2 места = 12; 3 confirmed -> 25%
	e.bookingRepo.confirmed = 3

	report, err := e.svc.GetDailyOccupancy(context.Background(), 1, monday)
	require.NoError(t, err)

	assert.Equal(t, 12, report.TotalCapacity)
	assert.Equal(t, 3, report.ConfirmedBookings)
	assert.Equal(t, 25, report.OccupancyPercent)
	assert.False(t, report.DateBlocked)
}

func TestGetDailyOccupancy_RoundsToNearestPercent(t *testing.T) {
	e := newEnv()
	// 1/12 = 8.33% -> 8
	e.bookingRepo.confirmed = 1

	report, err := e.svc.GetDailyOccupancy(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.Equal(t, 8, report.OccupancyPercent)

	// 5/12 = 41.67% -> 42
	e.bookingRepo.confirmed = 5
	report, err = e.svc.GetDailyOccupancy(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.Equal(t, 42, report.OccupancyPercent)
}

func TestGetDailyOccupancy_BlockedDate(t *testing.T) {
	e := newEnv()
	e.exceptionRepo.blocked = true
	e.bookingRepo.confirmed = 5

	report, err := e.svc.GetDailyOccupancy(context.Background(), 1, monday)
	require.NoError(t, err)

	assert.True(t, report.DateBlocked)
	assert.Zero(t, report.TotalCapacity)
	assert.Zero(t, report.ConfirmedBookings)
	assert.Zero(t, report.OccupancyPercent)
}

func TestGetDailyOccupancy_NoSchedule(t *testing.T) {
	e := newEnv()
	e.scheduleRepo.entries = nil

	report, err := e.svc.GetDailyOccupancy(context.Background(), 1, monday)
	require.NoError(t, err)

	assert.Zero(t, report.TotalCapacity)
	assert.Zero(t, report.OccupancyPercent)
}

func TestGetDailyOccupancy_IgnoresServiceDurations(t *testing.T) {
	e := newEnv()
	// Интервал бизнеса 60: 3 слота по 2 места
	e.businessRepo.biz.SlotIntervalMinutes = 60
	e.bookingRepo.confirmed = 6

	report, err := e.svc.GetDailyOccupancy(context.Background(), 1, monday)
	require.NoError(t, err)

	assert.Equal(t, 6, report.TotalCapacity)
	assert.Equal(t, 100, report.OccupancyPercent)
}

func TestGetDailyOccupancy_BusinessNotFound(t *testing.T) {
	e := newEnv()
	e.businessRepo.biz = nil
	e.businessRepo.err = businessRepo.ErrBusinessNotFound

	_, err := e.svc.GetDailyOccupancy(context.Background(), 1, monday)
	assert.ErrorIs(t, err, occupancy.ErrBusinessNotFound)
}

func TestGetDailyOccupancy_InvalidInput(t *testing.T) {
	e := newEnv()

	_, err := e.svc.GetDailyOccupancy(context.Background(), 0, monday)
	assert.ErrorIs(t, err, occupancy.ErrInvalidInput)

	_, err = e.svc.GetDailyOccupancy(context.Background(), 1, time.Time{})
	assert.ErrorIs(t, err, occupancy.ErrInvalidInput)
}
