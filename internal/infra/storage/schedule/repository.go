package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/dbmetrics"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var entryColumns = []string{
	"id",
	"business_id",
	"weekday",
	"start_time",
	"end_time",
	"capacity_per_slot",
	"created_at",
}

// Repository репозиторий окон недельного расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessAndWeekday возвращает окна бизнеса на день недели,
// упорядоченные по времени начала. Внутри транзакции строки блокируются
// FOR UPDATE - валидация пересечений и вставка новых окон должны видеть
// согласованный снимок (гонка двух одновременных добавлений расписания).
func (r *Repository) GetByBusinessAndWeekday(ctx context.Context, businessID int64, weekday domain.Weekday) ([]*domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("weekly_schedule").
		Where(squirrel.Eq{
			"business_id": businessID,
			"weekday":     weekday,
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByBusiness возвращает все окна бизнеса, упорядоченные по дню недели
// (понедельник первым) и времени начала
func (r *Repository) GetByBusiness(ctx context.Context, businessID int64) ([]*domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("weekly_schedule").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy(
			"array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday'], weekday)",
			"start_time ASC",
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// CreateBatch вставляет набор окон. Атомарность батча обеспечивает
// вызывающий usecase, выполняя вставку внутри транзакции.
func (r *Repository) CreateBatch(ctx context.Context, entries []*domain.WeeklyScheduleEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, entry := range entries {
		query, args, err := psqlbuilder.Insert("weekly_schedule").
			Columns("business_id", "weekday", "start_time", "end_time", "capacity_per_slot").
			Values(entry.BusinessID, entry.Weekday, entry.StartTime, entry.EndTime, entry.CapacityPerSlot).
			Suffix("RETURNING id, created_at").
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
			return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
		}
		entry.CreatedAt = createdAt.Time
	}

	return nil
}

// Delete удаляет окно расписания бизнеса. Безусловное удаление:
// уже созданные бронирования остаются нетронутыми.
func (r *Repository) Delete(ctx context.Context, businessID, entryID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("weekly_schedule").
		Where(squirrel.Eq{
			"id":          entryID,
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
		return ErrEntryNotFound
	}

	return nil
}

func scanEntries(rows *sql.Rows) ([]*domain.WeeklyScheduleEntry, error) {
	entries := make([]*domain.WeeklyScheduleEntry, 0)

	for rows.Next() {
		var entry domain.WeeklyScheduleEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.BusinessID,
			&entry.Weekday,
			&entry.StartTime,
			&entry.EndTime,
			&entry.CapacityPerSlot,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
