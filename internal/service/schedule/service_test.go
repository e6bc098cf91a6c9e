package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	businessRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
	exceptionRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/exception"
	scheduleRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/schedule"
	"github.com/kmlvsk/SBS-BookingEngine/internal/service/schedule"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/ptr"
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
	deleted []int64
	err     error
}

func (f *fakeScheduleRepo) GetByBusiness(_ context.Context, _ int64) ([]*domain.WeeklyScheduleEntry, error) {
	return f.entries, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, _, entryID int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, entryID)
	return nil
}

type fakeExceptionRepo struct {
	exceptions []*domain.ExceptionDate
	deleted    []int64
	err        error
}

func (f *fakeExceptionRepo) GetByBusiness(_ context.Context, _ int64, _ time.Time) ([]*domain.ExceptionDate, error) {
	return f.exceptions, nil
}

func (f *fakeExceptionRepo) Delete(_ context.Context, _, exceptionID int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, exceptionID)
	return nil
}

func newService(sr *fakeScheduleRepo, er *fakeExceptionRepo) *schedule.Service {
	return schedule.NewService(&fakeBusinessRepo{biz: &domain.Business{ID: 1}}, sr, er, nopLogger{})
}

func TestGetSchedule_GroupsByWeekdayInOrder(t *testing.T) {
	sr := &fakeScheduleRepo{entries: []*domain.WeeklyScheduleEntry{
		{ID: 3, Weekday: domain.Friday, StartTime: "10:00", EndTime: "14:00", CapacityPerSlot: 1},
		{ID: 1, Weekday: domain.Monday, StartTime: "09:00", EndTime: "12:00", CapacityPerSlot: 2},
		{ID: 2, Weekday: domain.Monday, StartTime: "14:00", EndTime: "18:00", CapacityPerSlot: 2},
	}}
	er := &fakeExceptionRepo{exceptions: []*domain.ExceptionDate{
		{ID: 7, Date: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), Reason: ptr.Ptr("holiday")},
	}}
	svc := newService(sr, er)

	resp, err := svc.GetSchedule(context.Background(), 1, time.Now())
	require.NoError(t, err)

	// Пустые дни опускаются, порядок календарный
	require.Len(t, resp.Weekdays, 2)
	assert.Equal(t, domain.Monday, resp.Weekdays[0].Weekday)
	assert.Len(t, resp.Weekdays[0].Entries, 2)
	assert.Equal(t, domain.Friday, resp.Weekdays[1].Weekday)

	require.Len(t, resp.Exceptions, 1)
	assert.Equal(t, int64(7), resp.Exceptions[0].ID)
	require.NotNil(t, resp.Exceptions[0].Reason)
	assert.Equal(t, "holiday", *resp.Exceptions[0].Reason)
}

func TestGetSchedule_EmptySchedule(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeExceptionRepo{})

	resp, err := svc.GetSchedule(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Empty(t, resp.Weekdays)
	assert.Empty(t, resp.Exceptions)
}

func TestGetSchedule_BusinessNotFound(t *testing.T) {
	svc := schedule.NewService(
		&fakeBusinessRepo{err: businessRepo.ErrBusinessNotFound},
		&fakeScheduleRepo{},
		&fakeExceptionRepo{},
		nopLogger{},
	)

	_, err := svc.GetSchedule(context.Background(), 5, time.Now())
	assert.ErrorIs(t, err, schedule.ErrBusinessNotFound)
}

func TestDeleteEntry(t *testing.T) {
	sr := &fakeScheduleRepo{}
	svc := newService(sr, &fakeExceptionRepo{})

	require.NoError(t, svc.DeleteEntry(context.Background(), 1, 10))
	assert.Equal(t, []int64{10}, sr.deleted)

	err := svc.DeleteEntry(context.Background(), 0, 10)
	assert.ErrorIs(t, err, schedule.ErrInvalidInput)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	sr := &fakeScheduleRepo{err: scheduleRepo.ErrEntryNotFound}
	svc := newService(sr, &fakeExceptionRepo{})

	err := svc.DeleteEntry(context.Background(), 1, 10)
	assert.ErrorIs(t, err, schedule.ErrEntryNotFound)
}

func TestDeleteException(t *testing.T) {
	er := &fakeExceptionRepo{}
	svc := newService(&fakeScheduleRepo{}, er)

	require.NoError(t, svc.DeleteException(context.Background(), 1, 20))
	assert.Equal(t, []int64{20}, er.deleted)
}

func TestDeleteException_NotFound(t *testing.T) {
	er := &fakeExceptionRepo{err: exceptionRepo.ErrExceptionNotFound}
	svc := newService(&fakeScheduleRepo{}, er)

	err := svc.DeleteException(context.Background(), 1, 20)
	assert.ErrorIs(t, err, schedule.ErrExceptionNotFound)
}
