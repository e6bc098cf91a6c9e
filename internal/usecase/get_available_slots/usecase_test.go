package get_available_slots_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	businessRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
	"github.com/kmlvsk/SBS-BookingEngine/internal/usecase/get_available_slots"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/ptr"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
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

func (f *fakeBusinessRepo) GetBySlug(_ context.Context, _ string) (*domain.Business, error) {
	return f.biz, f.err
}

type fakeServiceRepo struct {
	svc *domain.Service
	err error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _, _ int64) (*domain.Service, error) {
	return f.svc, f.err
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
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type env struct {
	businessRepo  *fakeBusinessRepo
	serviceRepo   *fakeServiceRepo
	scheduleRepo  *fakeScheduleRepo
	exceptionRepo *fakeExceptionRepo
	bookingRepo   *fakeBookingRepo
	uc            *get_available_slots.UseCase
}

func newEnv() *env {
	e := &env{
		businessRepo: &fakeBusinessRepo{biz: &domain.Business{
			ID:                  1,
			Slug:                "barber",
			SlotIntervalMinutes: 30,
		}},
		serviceRepo: &fakeServiceRepo{svc: &domain.Service{
			ID:              10,
			BusinessID:      1,
			Name:            "Haircut",
			Price:           decimal.NewFromInt(1500),
			DurationMinutes: 30,
			Active:          true,
		}},
		scheduleRepo: &fakeScheduleRepo{entries: []*domain.WeeklyScheduleEntry{{
			BusinessID:      1,
			Weekday:         domain.Monday,
			StartTime:       "09:00",
			EndTime:         "11:00",
			CapacityPerSlot: 2,
		}}},
		exceptionRepo: &fakeExceptionRepo{},
		bookingRepo:   &fakeBookingRepo{},
	}
	e.uc = get_available_slots.NewUseCase(
		e.businessRepo,
		e.serviceRepo,
		e.scheduleRepo,
		e.exceptionRepo,
		e.bookingRepo,
		nopLogger{},
	)
	return e
}

var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestExecute_GeneratesSlots(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessID: 1,
		ServiceID:  ptr.Ptr(int64(10)),
		Date:       monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[3].StartTime)
	for _, s := range resp.Slots {
		assert.Equal(t, 30, s.DurationMinutes)
		assert.Equal(t, 2, s.Capacity)
		assert.Equal(t, 2, s.RemainingCapacity)
		assert.True(t, s.Bookable)
	}
}

func TestExecute_AppliesConsumption(t *testing.T) {
	e := newEnv()
	e.bookingRepo.bookings = []*domain.Booking{
		{SlotStart: "09:00", Status: domain.StatusConfirmed},
		{SlotStart: "09:00", Status: domain.StatusPending},
		{SlotStart: "09:30", Status: domain.StatusCancelled},
	}

	resp, err := e.uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessID: 1,
		Date:       monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, 0, resp.Slots[0].RemainingCapacity)
	assert.False(t, resp.Slots[0].Bookable)
	// Отменённое бронирование место не занимает
	assert.Equal(t, 2, resp.Slots[1].RemainingCapacity)
	assert.True(t, resp.Slots[1].Bookable)
}

func TestExecute_BlockedDateYieldsNoSlots(t *testing.T) {
	e := newEnv()
	e.exceptionRepo.blocked = true

	resp, err := e.uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessID: 1,
		Date:       monday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoScheduleYieldsNoSlots(t *testing.T) {
	e := newEnv()
	e.scheduleRepo.entries = nil

	resp, err := e.uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessID: 1,
		Date:       monday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_LongServiceWidensSlots(t *testing.T) {
	e := newEnv()
	e.serviceRepo.svc.DurationMinutes = 60

	resp, err := e.uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessID: 1,
		ServiceID:  ptr.Ptr(int64(10)),
		Date:       monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestExecute_ResolvesBySlug(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessSlug: "barber",
		Date:         monday,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.BusinessID)
	assert.Len(t, resp.Slots, 4)
}

func TestExecute_InactiveService(t *testing.T) {
	e := newEnv()
	e.serviceRepo.svc.Active = false

	_, err := e.uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessID: 1,
		ServiceID:  ptr.Ptr(int64(10)),
		Date:       monday,
	})
	assert.ErrorIs(t, err, get_available_slots.ErrServiceNotFound)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	e := newEnv()
	e.businessRepo.biz = nil
	e.businessRepo.err = businessRepo.ErrBusinessNotFound

	_, err := e.uc.Execute(context.Background(), &get_available_slots.Request{
		BusinessID: 77,
		Date:       monday,
	})
	assert.ErrorIs(t, err, get_available_slots.ErrBusinessNotFound)
}

func TestExecute_Validation(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &get_available_slots.Request{Date: monday})
	assert.ErrorIs(t, err, get_available_slots.ErrInvalidInput)

	_, err = e.uc.Execute(context.Background(), &get_available_slots.Request{BusinessID: 1})
	assert.ErrorIs(t, err, get_available_slots.ErrInvalidInput)
}
