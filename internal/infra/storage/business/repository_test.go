package business_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
	"github.com/kmlvsk/SBS-BookingEngine/internal/infra/storage/business"
)

// Стаб-драйвер database/sql: отдаёт заранее заданную строку на любой запрос.
// Набор данных выбирается через DSN.
var stubDatasets = map[string][][]driver.Value{}

type stubDriver struct{}

func (stubDriver) Open(dsn string) (driver.Conn, error) {
	values, ok := stubDatasets[dsn]
	if !ok {
		return nil, errors.New("unknown stub dataset: " + dsn)
	}
	return &stubConn{values: values}, nil
}

type stubConn struct {
	values [][]driver.Value
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return &stubStmt{values: c.values}, nil
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) { return nil, errors.New("not supported") }

type stubStmt struct {
	values [][]driver.Value
}

func (s *stubStmt) Close() error { return nil }

func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, errors.New("not supported")
}

func (s *stubStmt) Query([]driver.Value) (driver.Rows, error) {
	return &stubRows{values: s.values}, nil
}

type stubRows struct {
	values [][]driver.Value
	pos    int
}

func (r *stubRows) Columns() []string {
	return []string{
		"id", "slug", "name", "slot_interval_minutes",
		"deposit_enabled", "deposit_type", "deposit_value",
		"created_at", "updated_at",
	}
}

func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}

func init() {
	sql.Register("business-stub", stubDriver{})
}

func openStub(t *testing.T, dsn string, row []driver.Value) *sql.DB {
	t.Helper()

	stubDatasets[dsn] = [][]driver.Value{row}
	db, err := sql.Open("business-stub", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetByID_NullDepositColumns(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// Бизнес без депозита: deposit_type и deposit_value равны NULL
	db := openStub(t, "null-deposit", []driver.Value{
		int64(1), "barber", "Barber", int64(30),
		false, nil, nil,
		now, now,
	})

	biz, err := business.NewRepository(db).GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), biz.ID)
	assert.Equal(t, "barber", biz.Slug)
	assert.False(t, biz.Deposit.Enabled)
	assert.Empty(t, biz.Deposit.Type)
	assert.True(t, biz.Deposit.Value.IsZero())
	assert.False(t, biz.RequiresDeposit())
}

func TestGetByID_DepositColumnsPresent(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	db := openStub(t, "with-deposit", []driver.Value{
		int64(2), "spa", "Spa", int64(60),
		true, "percentage", []byte("20"),
		now, now,
	})

	biz, err := business.NewRepository(db).GetByID(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, domain.DepositPercentage, biz.Deposit.Type)
	assert.True(t, decimal.NewFromInt(20).Equal(biz.Deposit.Value))
	assert.True(t, biz.RequiresDeposit())
}

func TestGetByID_NotFound(t *testing.T) {
	stubDatasets["empty"] = [][]driver.Value{}
	db, err := sql.Open("business-stub", "empty")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = business.NewRepository(db).GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, business.ErrBusinessNotFound)
}
