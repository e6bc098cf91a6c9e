package business

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/dbmetrics"
	"github.com/kmlvsk/SBS-BookingEngine/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var businessColumns = []string{
	"id",
	"slug",
	"name",
	"slot_interval_minutes",
	"deposit_enabled",
	"deposit_type",
	"deposit_value",
	"created_at",
	"updated_at",
}

// Repository репозиторий бизнесов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бизнес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug получает бизнес по публичному slug (адрес страницы бронирования)
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

func (r *Repository) getOne(ctx context.Context, cond squirrel.Eq) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		Where(cond).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var biz domain.Business
	var depositType sql.NullString
	var depositValue decimal.NullDecimal
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&biz.ID,
		&biz.Slug,
		&biz.Name,
		&biz.SlotIntervalMinutes,
		&biz.Deposit.Enabled,
		&depositType,
		&depositValue,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan business: %v", ErrScanRow, err)
	}

	// deposit_type и deposit_value nullable: у бизнеса без депозита их нет
	if depositType.Valid {
		biz.Deposit.Type = domain.DepositType(depositType.String)
	}
	if depositValue.Valid {
		biz.Deposit.Value = depositValue.Decimal
	}
	biz.CreatedAt = createdAt.Time
	biz.UpdatedAt = updatedAt.Time

	return &biz, nil
}
