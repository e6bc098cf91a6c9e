package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/dbmetrics"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/psqlbuilder"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/types"
)

var bookingColumns = []string{
	"id",
	"reference",
	"business_id",
	"service_id",
	"booking_date",
	"slot_start",
	"customer_name",
	"customer_email",
	"customer_phone",
	"status",
	"service_name",
	"service_price",
	"deposit_paid",
	"deposit_receipt_ref",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её - это
// обязательно при создании с проверкой вместимости слота, чтобы вставка
// и проверка выполнялись в одной атомарной единице.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"business_id",
			"service_id",
			"booking_date",
			"slot_start",
			"customer_name",
			"customer_email",
			"customer_phone",
			"status",
			"service_name",
			"service_price",
			"deposit_paid",
			"deposit_receipt_ref",
		).
		Values(
			booking.Reference,
			booking.BusinessID,
			booking.ServiceID,
			booking.Date,
			booking.SlotStart,
			booking.Customer.Name,
			booking.Customer.Email,
			booking.Customer.Phone,
			booking.Status,
			booking.ServiceName,
			booking.ServicePrice,
			booking.DepositPaid,
			booking.DepositReceiptRef,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByReference получает бронирование по публичному идентификатору
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"reference": reference})
}

func (r *Repository) getOne(ctx context.Context, cond squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(cond)

	// Внутри транзакции блокируем строку - статус будет перепроверен
	// и изменён в той же атомарной единице
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByBusinessWithFilter получает бронирования бизнеса с фильтрацией по
// дате, началу слота и статусу. Внутри транзакции выборка на конкретную
// дату блокируется FOR UPDATE (usecase создания бронирования).
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.SlotStart != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_start": *filter.SlotStart})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Без явного статуса отдаём только занимающие место бронирования
		consuming := make([]string, len(domain.ConsumingStatuses))
		for i, s := range domain.ConsumingStatuses {
			consuming[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": consuming})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("slot_start ASC, id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, slot_start DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ConsumedCount возвращает число бронирований, занимающих место в слоте
// (pending и confirmed) на точное сочетание (дата, начало слота)
func (r *Repository) ConsumedCount(ctx context.Context, businessID int64, date time.Time, slotStart types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	consuming := make([]string, len(domain.ConsumingStatuses))
	for i, s := range domain.ConsumingStatuses {
		consuming[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"business_id":  businessID,
			"booking_date": date,
			"slot_start":   slotStart,
			"status":       consuming,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ConsumedCount - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: ConsumedCount - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountConfirmedByDate возвращает число подтверждённых бронирований на дату
// (числитель формулы загрузки дня)
func (r *Repository) CountConfirmedByDate(ctx context.Context, businessID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"business_id":  businessID,
			"booking_date": date,
			"status":       string(domain.StatusConfirmed),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkDepositPaid отмечает депозит оплаченным и сохраняет ссылку на чек
// платёжного провайдера
func (r *Repository) MarkDepositPaid(ctx context.Context, id int64, receiptRef string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("deposit_paid", true).
		Set("deposit_receipt_ref", receiptRef).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkDepositPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkDepositPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkDepositPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var phone sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.BusinessID,
		&booking.ServiceID,
		&booking.Date,
		&booking.SlotStart,
		&booking.Customer.Name,
		&booking.Customer.Email,
		&phone,
		&booking.Status,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.DepositPaid,
		&booking.DepositReceiptRef,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Customer.Phone = phone.String
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var phone sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.BusinessID,
			&booking.ServiceID,
			&booking.Date,
			&booking.SlotStart,
			&booking.Customer.Name,
			&booking.Customer.Email,
			&phone,
			&booking.Status,
			&booking.ServiceName,
			&booking.ServicePrice,
			&booking.DepositPaid,
			&booking.DepositReceiptRef,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.Customer.Phone = phone.String
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
