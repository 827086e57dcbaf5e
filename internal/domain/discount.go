package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places kept on monetary outputs.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds a monetary result half-up to two decimal places.
// Rounding happens only at the point of output, never on intermediate
// values, or totals stop footing.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ValidatePercent rejects any percentage outside [0, 100]. Out-of-range
// percentages are rejected, never capped.
func ValidatePercent(p decimal.Decimal, sentinel error, field string) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return Invalid(sentinel, "%s is %s", field, p.String())
	}
	return nil
}

// DiscountBreakdown is the auditable result of a two-tier discount pass.
type DiscountBreakdown struct {
	Discount1Amount decimal.Decimal `json:"discount1_amount"`
	Discount2Amount decimal.Decimal `json:"discount2_amount"`
	TotalDiscount   decimal.Decimal `json:"total_discount"`
	FinalAmount     decimal.Decimal `json:"final_amount"`
}

// ApplySequentialDiscounts applies two discount tiers in fixed order:
// discount1 on baseAmount, discount2 on the discount1-reduced base. The
// ordering is deliberate (trade discount, then promotional discount) and
// changes the result whenever both tiers are nonzero.
func ApplySequentialDiscounts(baseAmount, discount1Percent, discount2Percent decimal.Decimal) (DiscountBreakdown, error) {
	if err := ValidatePercent(discount1Percent, ErrDiscountOutOfRange, "discount 1"); err != nil {
		return DiscountBreakdown{}, err
	}

	if err := ValidatePercent(discount2Percent, ErrDiscountOutOfRange, "discount 2"); err != nil {
		return DiscountBreakdown{}, err
	}

	discount1 := baseAmount.Mul(discount1Percent).Div(hundred)
	afterDiscount1 := baseAmount.Sub(discount1)
	discount2 := afterDiscount1.Mul(discount2Percent).Div(hundred)

	d1 := RoundMoney(discount1)
	d2 := RoundMoney(discount2)

	return DiscountBreakdown{
		Discount1Amount: d1,
		Discount2Amount: d2,
		TotalDiscount:   d1.Add(d2),
		FinalAmount:     RoundMoney(baseAmount).Sub(d1).Sub(d2),
	}, nil
}

// ClampDiscountAmount caps an amount-form discount at the base it
// discounts. This is the one documented exception to "reject, don't
// clamp": an amount discount may never drive a line negative.
func ClampDiscountAmount(base, amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}

	if amount.GreaterThan(base) {
		return base
	}

	return amount
}
