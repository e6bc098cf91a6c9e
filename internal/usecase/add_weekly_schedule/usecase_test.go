package add_weekly_schedule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	businessRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
	"github.com/kmlvsk/SBS-BookingEngine/internal/usecase/add_weekly_schedule"
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
	existing map[domain.Weekday][]*domain.WeeklyScheduleEntry
	saved    []*domain.WeeklyScheduleEntry
}

func (f *fakeScheduleRepo) GetByBusinessAndWeekday(_ context.Context, _ int64, weekday domain.Weekday) ([]*domain.WeeklyScheduleEntry, error) {
	return f.existing[weekday], nil
}

func (f *fakeScheduleRepo) CreateBatch(_ context.Context, entries []*domain.WeeklyScheduleEntry) error {
	var id int64
	for _, e := range entries {
		id++
		e.ID = id
	}
	f.saved = entries
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newUseCase(scheduleRepo *fakeScheduleRepo) *add_weekly_schedule.UseCase {
	return add_weekly_schedule.NewUseCase(
		&fakeBusinessRepo{biz: &domain.Business{ID: 1}},
		scheduleRepo,
		fakeTxManager{},
		nopLogger{},
	)
}

func TestExecute_CreatesEntriesPerWeekday(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &add_weekly_schedule.Request{
		BusinessID: 1,
		Entries: []add_weekly_schedule.EntryInput{
			{Weekdays: []string{"monday", "wednesday"}, StartTime: "09:00", EndTime: "13:00", CapacityPerSlot: 3},
			{Weekdays: []string{"saturday"}, StartTime: "10:00", EndTime: "14:00"},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Entries, 3)
	assert.Equal(t, domain.Monday, resp.Entries[0].Weekday)
	assert.Equal(t, domain.Wednesday, resp.Entries[1].Weekday)
	assert.Equal(t, domain.Saturday, resp.Entries[2].Weekday)
	assert.Equal(t, 3, resp.Entries[0].CapacityPerSlot)
	// Нулевая вместимость заменяется значением по умолчанию
	assert.Equal(t, domain.DefaultCapacityPerSlot, resp.Entries[2].CapacityPerSlot)
	assert.Len(t, repo.saved, 3)
}

func TestExecute_RejectsOverlapWithExisting(t *testing.T) {
	repo := &fakeScheduleRepo{existing: map[domain.Weekday][]*domain.WeeklyScheduleEntry{
		domain.Monday: {{
			BusinessID: 1,
			Weekday:    domain.Monday,
			StartTime:  "09:00",
			EndTime:    "10:00",
		}},
	}}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &add_weekly_schedule.Request{
		BusinessID: 1,
		Entries: []add_weekly_schedule.EntryInput{
			{Weekdays: []string{"monday"}, StartTime: "09:30", EndTime: "10:30", CapacityPerSlot: 1},
		},
	})
	require.ErrorIs(t, err, add_weekly_schedule.ErrScheduleOverlap)

	var overlapErr *add_weekly_schedule.OverlapError
	require.ErrorAs(t, err, &overlapErr)
	assert.Equal(t, domain.Monday, overlapErr.Weekday)
	assert.Equal(t, "09:30", overlapErr.NewStart.String())
	assert.Equal(t, "09:00", overlapErr.ExistingStart.String())

	// При пересечении не сохраняется ничего
	assert.Empty(t, repo.saved)
}

func TestExecute_TouchingWindowsAccepted(t *testing.T) {
	repo := &fakeScheduleRepo{existing: map[domain.Weekday][]*domain.WeeklyScheduleEntry{
		domain.Monday: {{
			BusinessID: 1,
			Weekday:    domain.Monday,
			StartTime:  "09:00",
			EndTime:    "10:00",
		}},
	}}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &add_weekly_schedule.Request{
		BusinessID: 1,
		Entries: []add_weekly_schedule.EntryInput{
			{Weekdays: []string{"monday"}, StartTime: "10:00", EndTime: "11:00", CapacityPerSlot: 1},
		},
	})
	require.NoError(t, err)
	assert.Len(t, repo.saved, 1)
}

func TestExecute_RejectsIntraBatchOverlap(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &add_weekly_schedule.Request{
		BusinessID: 1,
		Entries: []add_weekly_schedule.EntryInput{
			{Weekdays: []string{"friday"}, StartTime: "09:00", EndTime: "12:00", CapacityPerSlot: 1},
			{Weekdays: []string{"friday"}, StartTime: "11:00", EndTime: "13:00", CapacityPerSlot: 1},
		},
	})
	assert.ErrorIs(t, err, add_weekly_schedule.ErrScheduleOverlap)
	assert.Empty(t, repo.saved)
}

func TestExecute_SameWindowDifferentWeekdays(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := newUseCase(repo)

	// Одинаковые окна на разных днях недели не пересекаются
	_, err := uc.Execute(context.Background(), &add_weekly_schedule.Request{
		BusinessID: 1,
		Entries: []add_weekly_schedule.EntryInput{
			{Weekdays: []string{"monday", "tuesday", "wednesday"}, StartTime: "09:00", EndTime: "18:00", CapacityPerSlot: 1},
		},
	})
	require.NoError(t, err)
	assert.Len(t, repo.saved, 3)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	uc := add_weekly_schedule.NewUseCase(
		&fakeBusinessRepo{err: businessRepo.ErrBusinessNotFound},
		&fakeScheduleRepo{},
		fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &add_weekly_schedule.Request{
		BusinessID: 42,
		Entries: []add_weekly_schedule.EntryInput{
			{Weekdays: []string{"monday"}, StartTime: "09:00", EndTime: "10:00", CapacityPerSlot: 1},
		},
	})
	assert.ErrorIs(t, err, add_weekly_schedule.ErrBusinessNotFound)
}

func TestExecute_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		req  *add_weekly_schedule.Request
	}{
		{
			name: "no entries",
			req:  &add_weekly_schedule.Request{BusinessID: 1},
		},
		{
			name: "unknown weekday",
			req: &add_weekly_schedule.Request{BusinessID: 1, Entries: []add_weekly_schedule.EntryInput{
				{Weekdays: []string{"someday"}, StartTime: "09:00", EndTime: "10:00"},
			}},
		},
		{
			name: "duplicate weekday in one entry",
			req: &add_weekly_schedule.Request{BusinessID: 1, Entries: []add_weekly_schedule.EntryInput{
				{Weekdays: []string{"monday", "monday"}, StartTime: "09:00", EndTime: "10:00"},
			}},
		},
		{
			name: "start not before end",
			req: &add_weekly_schedule.Request{BusinessID: 1, Entries: []add_weekly_schedule.EntryInput{
				{Weekdays: []string{"monday"}, StartTime: "10:00", EndTime: "10:00"},
			}},
		},
		{
			name: "bad time format",
			req: &add_weekly_schedule.Request{BusinessID: 1, Entries: []add_weekly_schedule.EntryInput{
				{Weekdays: []string{"monday"}, StartTime: "9:00", EndTime: "10:00"},
			}},
		},
		{
			name: "negative capacity",
			req: &add_weekly_schedule.Request{BusinessID: 1, Entries: []add_weekly_schedule.EntryInput{
				{Weekdays: []string{"monday"}, StartTime: "09:00", EndTime: "10:00", CapacityPerSlot: -1},
			}},
		},
		{
			name: "capacity above limit",
			req: &add_weekly_schedule.Request{BusinessID: 1, Entries: []add_weekly_schedule.EntryInput{
				{Weekdays: []string{"monday"}, StartTime: "09:00", EndTime: "10:00", CapacityPerSlot: domain.MaxCapacityPerSlot + 1},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(&fakeScheduleRepo{})
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, add_weekly_schedule.ErrInvalidInput)
		})
	}
}

func TestExecute_CapacityErrorMentionsDefaultConvention(t *testing.T) {
	uc := newUseCase(&fakeScheduleRepo{})

	_, err := uc.Execute(context.Background(), &add_weekly_schedule.Request{
		BusinessID: 1,
		Entries: []add_weekly_schedule.EntryInput{
			{Weekdays: []string{"monday"}, StartTime: "09:00", EndTime: "10:00", CapacityPerSlot: -1},
		},
	})
	require.ErrorIs(t, err, add_weekly_schedule.ErrInvalidInput)
	// Ноль допустим и означает вместимость по умолчанию
	assert.ErrorContains(t, err, "or 0 for the default")
}
