package asset

import (
	internal "github.com/assetdesk/asset-management/internal"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
)

// DepreciationSchedule is the straight-line bookkeeping derived for an asset.
type DepreciationSchedule struct {
	MonthlyDepreciation     decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	RemainingMonths         int
}

// ComputeDepreciation derives the straight-line depreciation schedule from
// the asset's cost basis. The depreciable base is totalAmount scaled by the
// rate percentage and spread evenly over the useful life.
//
// Accumulated depreciation divides last so that exact fractions of the base
// survive the rounding, and it never exceeds the total amount.
func ComputeDepreciation(totalAmount, rate decimal.Decimal, usefulLifeMonths, monthsInUse int) (DepreciationSchedule, error) {
	if usefulLifeMonths < 1 {
		return DepreciationSchedule{}, internal.NewValidationFieldError(
			"useful_life_months", "useful life must be at least one month", internal.ErrCodeInvalidLifetime)
	}
	if monthsInUse < 0 {
		return DepreciationSchedule{}, internal.NewValidationFieldError(
			"months_in_use", "months in use must not be negative", internal.ErrCodeInvalidLifetime)
	}
	if monthsInUse > usefulLifeMonths {
		return DepreciationSchedule{}, internal.NewValidationFieldError(
			"months_in_use", "months in use must not exceed the useful life", internal.ErrCodeInvalidLifetime)
	}
	if totalAmount.IsNegative() {
		return DepreciationSchedule{}, internal.NewValidationFieldError(
			"total_amount", "total amount must not be negative", internal.ErrCodeInvalidAmount)
	}
	if rate.IsNegative() {
		return DepreciationSchedule{}, internal.NewValidationFieldError(
			"depreciation_rate", "depreciation rate must not be negative", internal.ErrCodeInvalidRate)
	}

	life := decimal.NewFromInt(int64(usefulLifeMonths))
	base := totalAmount.Mul(rate).Div(hundred)

	monthly := base.Div(life).Round(2)

	accumulated := base.Mul(decimal.NewFromInt(int64(monthsInUse))).Div(life).Round(2)
	if accumulated.GreaterThan(totalAmount) {
		accumulated = totalAmount
	}

	remaining := usefulLifeMonths - monthsInUse

	return DepreciationSchedule{
		MonthlyDepreciation:     monthly,
		AccumulatedDepreciation: accumulated,
		RemainingMonths:         remaining,
	}, nil
}
