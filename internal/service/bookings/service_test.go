package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	bookingRepo "github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/booking"
	"github.com/kmlvsk/SBS-BookingEngine/internal/integrations/notifier"
	"github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings"
	"github.com/kmlvsk/SBS-BookingEngine/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	byID  map[int64]*domain.Booking
	byRef map[string]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byID:  make(map[int64]*domain.Booking),
		byRef: make(map[string]*domain.Booking),
	}
	for _, b := range bookings {
		f.byID[b.ID] = b
		f.byRef[b.Reference] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	b, ok := f.byRef[reference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.byID {
		if b.BusinessID == filter.BusinessID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) MarkDepositPaid(_ context.Context, id int64, receiptRef string) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.DepositPaid = true
	b.DepositReceiptRef = &receiptRef
	return nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) PublishBookingEvent(_ context.Context, routingKey string, _ *domain.Booking) error {
	f.events = append(f.events, routingKey)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:         1,
		Reference:  "ref-1",
		BusinessID: 1,
		ServiceID:  10,
		Date:       time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		SlotStart:  "10:00",
		Status:     domain.StatusPending,
		Customer:   domain.Customer{Name: "Ivan", Email: "ivan@example.com"},
	}
}

func newService(repo *fakeBookingRepo, pub *fakePublisher) *bookings.Service {
	return bookings.NewService(repo, pub, fakeTxManager{}, nopLogger{})
}

func TestTransition_PendingToConfirmed(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking())
	pub := &fakePublisher{}
	svc := newService(repo, pub)

	resp, err := svc.Transition(context.Background(), 1, "confirmed")
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.byID[1].Status)
	assert.Equal(t, []string{notifier.EventBookingConfirmed}, pub.events)
}

func TestTransition_ConfirmedToCancelled(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed
	repo := newFakeBookingRepo(b)
	pub := &fakePublisher{}
	svc := newService(repo, pub)

	resp, err := svc.Transition(context.Background(), 1, "cancelled")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, []string{notifier.EventBookingCancelled}, pub.events)
}

func TestTransition_NoShowPublishesNothing(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed
	repo := newFakeBookingRepo(b)
	pub := &fakePublisher{}
	svc := newService(repo, pub)

	resp, err := svc.Transition(context.Background(), 1, "no_show")
	require.NoError(t, err)

	assert.Equal(t, "no_show", resp.Status)
	assert.Empty(t, pub.events)
}

func TestTransition_Illegal(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.BookingStatus
		target string
	}{
		{name: "pending to no_show", from: domain.StatusPending, target: "no_show"},
		{name: "cancelled is terminal", from: domain.StatusCancelled, target: "confirmed"},
		{name: "no_show is terminal", from: domain.StatusNoShow, target: "cancelled"},
		{name: "same status", from: domain.StatusConfirmed, target: "confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := pendingBooking()
			b.Status = tt.from
			repo := newFakeBookingRepo(b)
			pub := &fakePublisher{}
			svc := newService(repo, pub)

			_, err := svc.Transition(context.Background(), 1, tt.target)
			require.ErrorIs(t, err, bookings.ErrIllegalTransition)

			var trErr *bookings.TransitionError
			require.ErrorAs(t, err, &trErr)
			assert.Equal(t, tt.from, trErr.From)

			// Статус не меняется, событие не публикуется
			assert.Equal(t, tt.from, repo.byID[1].Status)
			assert.Empty(t, pub.events)
		})
	}
}

func TestTransition_InvalidStatus(t *testing.T) {
	svc := newService(newFakeBookingRepo(pendingBooking()), &fakePublisher{})

	_, err := svc.Transition(context.Background(), 1, "completed")
	assert.ErrorIs(t, err, bookings.ErrInvalidStatus)
}

func TestTransition_NotFound(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakePublisher{})

	_, err := svc.Transition(context.Background(), 99, "confirmed")
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestConfirmDepositFromWebhook(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking())
	pub := &fakePublisher{}
	svc := newService(repo, pub)

	resp, err := svc.ConfirmDepositFromWebhook(context.Background(), "ref-1", "cs_test_123")
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.True(t, resp.DepositPaid)
	require.NotNil(t, resp.DepositReceiptRef)
	assert.Equal(t, "cs_test_123", *resp.DepositReceiptRef)
	assert.Equal(t, []string{notifier.EventBookingConfirmed}, pub.events)
}

func TestConfirmDepositFromWebhook_Idempotent(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking())
	pub := &fakePublisher{}
	svc := newService(repo, pub)

	_, err := svc.ConfirmDepositFromWebhook(context.Background(), "ref-1", "cs_test_123")
	require.NoError(t, err)

	// Повторная доставка webhook: успех без повторного события
	resp, err := svc.ConfirmDepositFromWebhook(context.Background(), "ref-1", "cs_test_123")
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, []string{notifier.EventBookingConfirmed}, pub.events)
}

func TestConfirmDepositFromWebhook_CancelledBooking(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusCancelled
	svc := newService(newFakeBookingRepo(b), &fakePublisher{})

	_, err := svc.ConfirmDepositFromWebhook(context.Background(), "ref-1", "cs_test_123")
	assert.ErrorIs(t, err, bookings.ErrIllegalTransition)
}

func TestConfirmDepositFromWebhook_NotFound(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakePublisher{})

	_, err := svc.ConfirmDepositFromWebhook(context.Background(), "ref-missing", "cs_test_123")
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestGetByReference(t *testing.T) {
	svc := newService(newFakeBookingRepo(pendingBooking()), &fakePublisher{})

	resp, err := svc.GetByReference(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "ref-1", resp.Reference)

	_, err = svc.GetByReference(context.Background(), "")
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestGetBusinessBookings_InvalidStatusFilter(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakePublisher{})

	status := "paid"
	_, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		BusinessID: 1,
		Status:     &status,
	})
	assert.ErrorIs(t, err, bookings.ErrInvalidStatus)
}
