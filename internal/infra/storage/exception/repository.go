package exception

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/dbmetrics"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий блокировок дат (exception dates)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок дат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsBlocked сообщает, заблокирована ли дата для бизнеса целиком
func (r *Repository) IsBlocked(ctx context.Context, businessID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("exception_dates").
		Where(squirrel.Eq{
			"business_id":    businessID,
			"exception_date": date,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsBlocked - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// CreateRange вставляет по одной строке на каждый день диапазона,
// включая обе границы. Повторная блокировка уже заблокированного дня
// не является ошибкой (ON CONFLICT DO NOTHING).
func (r *Repository) CreateRange(ctx context.Context, businessID int64, start, end time.Time, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		query, args, err := psqlbuilder.Insert("exception_dates").
			Columns("business_id", "exception_date", "reason").
			Values(businessID, day, reason).
			Suffix("ON CONFLICT (business_id, exception_date) DO NOTHING").
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: CreateRange - build insert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: CreateRange - execute insert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// GetByBusiness возвращает все блокировки бизнеса начиная с указанной даты
func (r *Repository) GetByBusiness(ctx context.Context, businessID int64, from time.Time) ([]*domain.ExceptionDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"exception_date",
		"reason",
		"created_at",
	).
		From("exception_dates").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"exception_date": from}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.ExceptionDate, 0)

	for rows.Next() {
		var exc domain.ExceptionDate
		var createdAt sql.NullTime

		if err := rows.Scan(&exc.ID, &exc.BusinessID, &exc.Date, &exc.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetByBusiness - scan row: %v", ErrScanRow, err)
		}

		exc.CreatedAt = createdAt.Time
		exceptions = append(exceptions, &exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// Delete удаляет блокировку даты бизнеса
func (r *Repository) Delete(ctx context.Context, businessID, exceptionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("exception_dates").
		Where(squirrel.Eq{
			"id":          exceptionID,
			"business_id": businessID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}
