package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kmlvsk/SBS-BookingEngine/internal/domain"
)

func TestRequiredDeposit(t *testing.T) {
	price := decimal.NewFromInt(1500)

	tests := []struct {
		name   string
		policy domain.DepositPolicy
		want   decimal.Decimal
	}{
		{
			name:   "disabled policy",
			policy: domain.DepositPolicy{Enabled: false, Type: domain.DepositFixed, Value: decimal.NewFromInt(500)},
			want:   decimal.Zero,
		},
		{
			name:   "zero value",
			policy: domain.DepositPolicy{Enabled: true, Type: domain.DepositPercentage, Value: decimal.Zero},
			want:   decimal.Zero,
		},
		{
			name:   "fixed amount verbatim",
			policy: domain.DepositPolicy{Enabled: true, Type: domain.DepositFixed, Value: decimal.NewFromInt(500)},
			want:   decimal.NewFromInt(500),
		},
		{
			name:   "percentage of price",
			policy: domain.DepositPolicy{Enabled: true, Type: domain.DepositPercentage, Value: decimal.NewFromInt(20)},
			want:   decimal.NewFromInt(300),
		},
		{
			name:   "percentage rounded to whole units",
			policy: domain.DepositPolicy{Enabled: true, Type: domain.DepositPercentage, Value: decimal.NewFromInt(33)},
			want:   decimal.NewFromInt(495), // 1500 * 0.33 = 495
		},
		{
			name:   "unknown type",
			policy: domain.DepositPolicy{Enabled: true, Type: domain.DepositType("weird"), Value: decimal.NewFromInt(10)},
			want:   decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.RequiredDeposit(tt.policy, price)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestRequiredDeposit_PercentageRounding(t *testing.T) {
	policy := domain.DepositPolicy{Enabled: true, Type: domain.DepositPercentage, Value: decimal.NewFromInt(25)}

	// 999 * 0.25 = 249.75 -> 250 после округления
	got := domain.RequiredDeposit(policy, decimal.NewFromInt(999))
	assert.True(t, decimal.NewFromInt(250).Equal(got), "got %s", got)
}

func TestBusiness_RequiresDeposit(t *testing.T) {
	assert.False(t, (&domain.Business{}).RequiresDeposit())
	assert.False(t, (&domain.Business{Deposit: domain.DepositPolicy{Enabled: true}}).RequiresDeposit())
	assert.True(t, (&domain.Business{Deposit: domain.DepositPolicy{
		Enabled: true,
		Type:    domain.DepositFixed,
		Value:   decimal.NewFromInt(100),
	}}).RequiresDeposit())
}

func TestParseWeekday(t *testing.T) {
	wd, err := domain.ParseWeekday("monday")
	assert.NoError(t, err)
	assert.Equal(t, domain.Monday, wd)

	wd, err = domain.ParseWeekday("saturday")
	assert.NoError(t, err)
	assert.Equal(t, domain.Saturday, wd)

	_, err = domain.ParseWeekday("someday")
	assert.ErrorIs(t, err, domain.ErrUnknownWeekday)

	// названия дней сопоставляются без нормализации регистра
	_, err = domain.ParseWeekday("Monday")
	assert.ErrorIs(t, err, domain.ErrUnknownWeekday)
}
