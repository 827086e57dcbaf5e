package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is the raw calculation input for one invoice line. Discounts
// can be given as a percent or as an absolute amount per tier; the legacy
// single "discount" field maps onto tier 1.
type LineItem struct {
	ItemID           string          `json:"item_id"`
	Description      string          `json:"description"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Discount1Percent decimal.Decimal `json:"discount1_percent"`
	Discount1Amount  decimal.Decimal `json:"discount1_amount"`
	Discount2Percent decimal.Decimal `json:"discount2_percent"`
	Discount2Amount  decimal.Decimal `json:"discount2_amount"`
	ClaimAccountID   string          `json:"claim_account_id"`
	GSTRate          decimal.Decimal `json:"gst_rate"`
	WHTRate          decimal.Decimal `json:"wht_rate"`
	AdvanceTaxRate   decimal.Decimal `json:"advance_tax_rate"`
	NonFiler         bool            `json:"non_filer"`
}

// HasDiscount2 reports whether the second discount tier is in play, which
// makes a claim account mandatory.
func (li LineItem) HasDiscount2() bool {
	return li.Discount2Percent.IsPositive() || li.Discount2Amount.IsPositive()
}

// LineCalc is the deterministic breakdown for one line.
type LineCalc struct {
	ItemID           string          `json:"item_id"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Discount1Amount  decimal.Decimal `json:"discount1_amount"`
	Discount2Amount  decimal.Decimal `json:"discount2_amount"`
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	GSTAmount        decimal.Decimal `json:"gst_amount"`
	WHTAmount        decimal.Decimal `json:"wht_amount"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	AdvanceTaxAmount decimal.Decimal `json:"advance_tax_amount"`
	Total            decimal.Decimal `json:"total"`
}

// CalculateLine turns a raw line item into its discount and tax breakdown.
// Discount tiers apply sequentially: tier 1 on the line subtotal, tier 2
// on the tier-1-reduced base.
func CalculateLine(item LineItem) (LineCalc, error) {
	if item.Quantity.LessThanOrEqual(decimal.Zero) {
		return LineCalc{}, Invalid(ErrInvalidQuantity, "item %s", item.ItemID)
	}

	if item.UnitPrice.IsNegative() {
		return LineCalc{}, Invalid(ErrNegativeUnitPrice, "item %s", item.ItemID)
	}

	subtotal := item.Quantity.Mul(item.UnitPrice)

	discount1, err := tierAmount(subtotal, item.Discount1Percent, item.Discount1Amount, "discount 1", item.ItemID)
	if err != nil {
		return LineCalc{}, err
	}

	afterDiscount1 := subtotal.Sub(discount1)

	discount2, err := tierAmount(afterDiscount1, item.Discount2Percent, item.Discount2Amount, "discount 2", item.ItemID)
	if err != nil {
		return LineCalc{}, err
	}

	taxable := subtotal.Sub(discount1).Sub(discount2)

	tax, err := CalculateItemTax(taxable, item.GSTRate, item.WHTRate)
	if err != nil {
		return LineCalc{}, err
	}

	if err := ValidatePercent(item.AdvanceTaxRate, ErrTaxRateOutOfRange, "advance tax rate"); err != nil {
		return LineCalc{}, err
	}

	advanceTax := RoundMoney(taxable.Mul(item.AdvanceTaxRate).Div(hundred))
	taxableOut := RoundMoney(taxable)

	return LineCalc{
		ItemID:           item.ItemID,
		Subtotal:         RoundMoney(subtotal),
		Discount1Amount:  RoundMoney(discount1),
		Discount2Amount:  RoundMoney(discount2),
		TaxableAmount:    taxableOut,
		GSTAmount:        tax.GSTAmount,
		WHTAmount:        tax.WHTAmount,
		TaxAmount:        tax.NetTax,
		AdvanceTaxAmount: advanceTax,
		Total:            taxableOut.Add(tax.NetTax),
	}, nil
}

// tierAmount resolves one discount tier to an absolute amount. A percent
// outside [0, 100] is rejected; an amount-form discount is clamped to the
// base it discounts.
func tierAmount(base, percent, amount decimal.Decimal, field, itemID string) (decimal.Decimal, error) {
	if percent.IsPositive() {
		if err := ValidatePercent(percent, ErrDiscountOutOfRange, field+" for item "+itemID); err != nil {
			return decimal.Zero, err
		}
		return base.Mul(percent).Div(hundred), nil
	}

	if percent.IsNegative() {
		return decimal.Zero, Invalid(ErrDiscountOutOfRange, "%s for item %s is %s", field, itemID, percent.String())
	}

	return ClampDiscountAmount(base, amount), nil
}

// InvoiceTotals is the aggregate the orchestrator posts to the ledger.
type InvoiceTotals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	TotalDiscount1  decimal.Decimal `json:"total_discount1"`
	TotalDiscount2  decimal.Decimal `json:"total_discount2"`
	InvoiceDiscount decimal.Decimal `json:"invoice_discount"`
	TotalDiscount   decimal.Decimal `json:"total_discount"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	Lines           []LineCalc      `json:"lines"`
}

// CalculateInvoiceTotals aggregates line calculations into invoice totals.
// An invoice-level discount, when present, runs as a final pass over the
// post-line-discount taxable sum using the same sequential-discount
// function.
func CalculateInvoiceTotals(items []LineItem, invoiceDiscountPercent decimal.Decimal) (*InvoiceTotals, error) {
	totals := &InvoiceTotals{
		Subtotal:        decimal.Zero,
		TotalDiscount1:  decimal.Zero,
		TotalDiscount2:  decimal.Zero,
		InvoiceDiscount: decimal.Zero,
		TotalDiscount:   decimal.Zero,
		TaxableAmount:   decimal.Zero,
		TotalTax:        decimal.Zero,
		GrandTotal:      decimal.Zero,
		Lines:           make([]LineCalc, 0, len(items)),
	}

	for _, item := range items {
		calc, err := CalculateLine(item)
		if err != nil {
			return nil, err
		}

		totals.Subtotal = totals.Subtotal.Add(calc.Subtotal)
		totals.TotalDiscount1 = totals.TotalDiscount1.Add(calc.Discount1Amount)
		totals.TotalDiscount2 = totals.TotalDiscount2.Add(calc.Discount2Amount)
		totals.TaxableAmount = totals.TaxableAmount.Add(calc.TaxableAmount)
		totals.TotalTax = totals.TotalTax.Add(calc.TaxAmount)
		totals.Lines = append(totals.Lines, calc)
	}

	if invoiceDiscountPercent.IsPositive() {
		pass, err := ApplySequentialDiscounts(totals.TaxableAmount, invoiceDiscountPercent, decimal.Zero)
		if err != nil {
			return nil, err
		}

		totals.InvoiceDiscount = pass.Discount1Amount
		totals.TaxableAmount = pass.FinalAmount
	} else if invoiceDiscountPercent.IsNegative() {
		return nil, Invalid(ErrDiscountOutOfRange, "invoice discount is %s", invoiceDiscountPercent.String())
	}

	totals.TotalDiscount = totals.TotalDiscount1.Add(totals.TotalDiscount2).Add(totals.InvoiceDiscount)
	totals.GrandTotal = totals.TaxableAmount.Add(totals.TotalTax)

	return totals, nil
}

// InvoiceSummary is the slice of an invoice document interleaved into the
// richer account statement variant.
type InvoiceSummary struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	AccountID     string          `json:"account_id"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	DueDate       time.Time       `json:"due_date"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Status        string          `json:"status"`
}
