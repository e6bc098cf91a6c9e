package domain

import "github.com/shopspring/decimal"

// RequiredDeposit computes the upfront payment a booking for the given
// service must be funded with. Zero when the policy is disabled or its value
// is zero. Percentage deposits are rounded to whole currency units; fixed
// deposits are returned verbatim, not scaled by price.
func RequiredDeposit(policy DepositPolicy, servicePrice decimal.Decimal) decimal.Decimal {
	if !policy.Enabled || policy.Value.IsZero() {
		return decimal.Zero
	}

	switch policy.Type {
	case DepositPercentage:
		return servicePrice.Mul(policy.Value).Div(decimal.NewFromInt(100)).Round(0)
	case DepositFixed:
		return policy.Value
	default:
		return decimal.Zero
	}
}
