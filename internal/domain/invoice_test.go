package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateLine(t *testing.T) {
	t.Run("single tier discount round trip", func(t *testing.T) {
		calc, err := CalculateLine(LineItem{
			ItemID:           "item-1",
			Quantity:         decimal.NewFromInt(10),
			UnitPrice:        decimal.NewFromInt(100),
			Discount1Percent: decimal.NewFromInt(10),
			GSTRate:          decimal.NewFromInt(17),
			WHTRate:          decimal.NewFromInt(1),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertDecimal(t, "subtotal", calc.Subtotal, "1000")
		assertDecimal(t, "discount1", calc.Discount1Amount, "100")
		assertDecimal(t, "taxable", calc.TaxableAmount, "900")
		assertDecimal(t, "gst", calc.GSTAmount, "153")
		assertDecimal(t, "wht", calc.WHTAmount, "9")
		assertDecimal(t, "tax", calc.TaxAmount, "144")
		assertDecimal(t, "total", calc.Total, "1044")
	})

	t.Run("two tiers apply sequentially", func(t *testing.T) {
		calc, err := CalculateLine(LineItem{
			ItemID:           "item-1",
			Quantity:         decimal.NewFromInt(1),
			UnitPrice:        decimal.NewFromInt(1000),
			Discount1Percent: decimal.NewFromInt(10),
			Discount2Percent: decimal.NewFromInt(5),
			ClaimAccountID:   "acc-claims",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertDecimal(t, "discount1", calc.Discount1Amount, "100")
		assertDecimal(t, "discount2", calc.Discount2Amount, "45")
		assertDecimal(t, "taxable", calc.TaxableAmount, "855")
	})

	t.Run("amount form discount is clamped to the line", func(t *testing.T) {
		calc, err := CalculateLine(LineItem{
			ItemID:          "item-1",
			Quantity:        decimal.NewFromInt(2),
			UnitPrice:       decimal.NewFromInt(50),
			Discount1Amount: decimal.NewFromInt(150),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertDecimal(t, "discount1", calc.Discount1Amount, "100")
		assertDecimal(t, "taxable", calc.TaxableAmount, "0")
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := CalculateLine(LineItem{
			ItemID:    "item-x",
			Quantity:  decimal.Zero,
			UnitPrice: decimal.NewFromInt(100),
		})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %T", err)
		}
		if vErr.Details != "item item-x" {
			t.Errorf("details = %q, want the failing item named", vErr.Details)
		}
	})

	t.Run("negative unit price rejected", func(t *testing.T) {
		_, err := CalculateLine(LineItem{
			ItemID:    "item-x",
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.NewFromInt(-5),
		})
		if !errors.Is(err, ErrNegativeUnitPrice) {
			t.Fatalf("expected ErrNegativeUnitPrice, got %v", err)
		}
	})

	t.Run("out of range percent rejected, not capped", func(t *testing.T) {
		_, err := CalculateLine(LineItem{
			ItemID:           "item-x",
			Quantity:         decimal.NewFromInt(1),
			UnitPrice:        decimal.NewFromInt(100),
			Discount1Percent: decimal.NewFromInt(120),
		})
		if !errors.Is(err, ErrDiscountOutOfRange) {
			t.Fatalf("expected ErrDiscountOutOfRange, got %v", err)
		}
	})
}

func TestCalculateInvoiceTotals(t *testing.T) {
	items := []LineItem{
		{
			ItemID:           "item-1",
			Quantity:         decimal.NewFromInt(10),
			UnitPrice:        decimal.NewFromInt(100),
			Discount1Percent: decimal.NewFromInt(10),
			GSTRate:          decimal.NewFromInt(17),
			WHTRate:          decimal.NewFromInt(1),
		},
		{
			ItemID:    "item-2",
			Quantity:  decimal.NewFromInt(5),
			UnitPrice: decimal.NewFromInt(200),
			GSTRate:   decimal.NewFromInt(17),
		},
	}

	t.Run("straight sums across lines", func(t *testing.T) {
		totals, err := CalculateInvoiceTotals(items, decimal.Zero)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertDecimal(t, "subtotal", totals.Subtotal, "2000")
		assertDecimal(t, "discount1", totals.TotalDiscount1, "100")
		assertDecimal(t, "taxable", totals.TaxableAmount, "1900")
		// 144 (item-1) + 170 (item-2)
		assertDecimal(t, "tax", totals.TotalTax, "314")
		assertDecimal(t, "grand total", totals.GrandTotal, "2214")

		if len(totals.Lines) != 2 {
			t.Errorf("expected 2 line breakdowns, got %d", len(totals.Lines))
		}
	})

	t.Run("invoice level discount runs after line discounts", func(t *testing.T) {
		totals, err := CalculateInvoiceTotals(items, decimal.NewFromInt(10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 10% of the post-line-discount taxable sum (1900), not of the subtotal.
		assertDecimal(t, "invoice discount", totals.InvoiceDiscount, "190")
		assertDecimal(t, "taxable", totals.TaxableAmount, "1710")
		assertDecimal(t, "total discount", totals.TotalDiscount, "290")
		assertDecimal(t, "grand total", totals.GrandTotal, "2024")
	})

	t.Run("bad item fails the whole invoice", func(t *testing.T) {
		bad := append([]LineItem{}, items...)
		bad = append(bad, LineItem{ItemID: "item-3", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(1)})

		_, err := CalculateInvoiceTotals(bad, decimal.Zero)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})
}
