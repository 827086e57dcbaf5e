package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestApplySequentialDiscounts(t *testing.T) {
	tests := []struct {
		name            string
		base            int64
		discount1       string
		discount2       string
		wantDiscount1   string
		wantDiscount2   string
		wantTotal       string
		wantFinal       string
		expectError     error
	}{
		{
			name:          "both tiers stack sequentially",
			base:          1000,
			discount1:     "10",
			discount2:     "5",
			wantDiscount1: "100",
			wantDiscount2: "45",
			wantTotal:     "145",
			wantFinal:     "855",
		},
		{
			name:          "single tier",
			base:          1000,
			discount1:     "10",
			discount2:     "0",
			wantDiscount1: "100",
			wantDiscount2: "0",
			wantTotal:     "100",
			wantFinal:     "900",
		},
		{
			name:          "no discounts",
			base:          250,
			discount1:     "0",
			discount2:     "0",
			wantDiscount1: "0",
			wantDiscount2: "0",
			wantTotal:     "0",
			wantFinal:     "250",
		},
		{
			name:          "full discount",
			base:          1000,
			discount1:     "100",
			discount2:     "0",
			wantDiscount1: "1000",
			wantDiscount2: "0",
			wantTotal:     "1000",
			wantFinal:     "0",
		},
		{
			name:        "discount 1 above 100",
			base:        1000,
			discount1:   "100.01",
			discount2:   "0",
			expectError: ErrDiscountOutOfRange,
		},
		{
			name:        "negative discount 2",
			base:        1000,
			discount1:   "10",
			discount2:   "-1",
			expectError: ErrDiscountOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplySequentialDiscounts(
				decimal.NewFromInt(tt.base),
				decimal.RequireFromString(tt.discount1),
				decimal.RequireFromString(tt.discount2),
			)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertDecimal(t, "discount1", got.Discount1Amount, tt.wantDiscount1)
			assertDecimal(t, "discount2", got.Discount2Amount, tt.wantDiscount2)
			assertDecimal(t, "total", got.TotalDiscount, tt.wantTotal)
			assertDecimal(t, "final", got.FinalAmount, tt.wantFinal)
		})
	}
}

func TestApplySequentialDiscounts_OrderMatters(t *testing.T) {
	base := decimal.NewFromInt(1000)

	forward, err := ApplySequentialDiscounts(base, decimal.NewFromInt(10), decimal.NewFromInt(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reversed, err := ApplySequentialDiscounts(base, decimal.NewFromInt(5), decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Final amounts coincide but the per-tier attribution must not.
	if forward.Discount1Amount.Equal(reversed.Discount1Amount) {
		t.Errorf("expected tier attribution to depend on order, got %s both ways", forward.Discount1Amount)
	}

	// discount2 is 5% of 900, never 5% of 1000
	assertDecimal(t, "discount2", forward.Discount2Amount, "45")
}

func TestClampDiscountAmount(t *testing.T) {
	base := decimal.NewFromInt(500)

	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "within base", amount: 100, want: "100"},
		{name: "equal to base", amount: 500, want: "500"},
		{name: "exceeds base is clamped", amount: 600, want: "500"},
		{name: "negative becomes zero", amount: -10, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampDiscountAmount(base, decimal.NewFromInt(tt.amount))
			assertDecimal(t, "clamped", got, tt.want)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "10.005", want: "10.01"},
		{in: "10.004", want: "10"},
		{in: "153", want: "153"},
		{in: "0.125", want: "0.13"},
	}

	for _, tt := range tests {
		got := RoundMoney(decimal.RequireFromString(tt.in))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("RoundMoney(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func assertDecimal(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", field, got, want)
	}
}
