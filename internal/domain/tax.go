package domain

import "github.com/shopspring/decimal"

// TaxBreakdown splits an item's tax into its components. WHT is a
// withholding that reduces the net tax collected, not an additive tax.
type TaxBreakdown struct {
	GSTAmount decimal.Decimal `json:"gst_amount"`
	WHTAmount decimal.Decimal `json:"wht_amount"`
	NetTax    decimal.Decimal `json:"net_tax"`
}

// CalculateItemTax computes GST and WHT on a taxable amount.
// Net tax = GST - WHT.
func CalculateItemTax(taxableAmount, gstRate, whtRate decimal.Decimal) (TaxBreakdown, error) {
	if err := ValidatePercent(gstRate, ErrTaxRateOutOfRange, "gst rate"); err != nil {
		return TaxBreakdown{}, err
	}

	if err := ValidatePercent(whtRate, ErrTaxRateOutOfRange, "wht rate"); err != nil {
		return TaxBreakdown{}, err
	}

	gst := RoundMoney(taxableAmount.Mul(gstRate).Div(hundred))
	wht := RoundMoney(taxableAmount.Mul(whtRate).Div(hundred))

	return TaxBreakdown{
		GSTAmount: gst,
		WHTAmount: wht,
		NetTax:    gst.Sub(wht),
	}, nil
}

// TaxLine is the persisted per-line tax projection read back by the
// comprehensive tax report. It carries the same fields the calculator
// produced at invoice time; the report only regroups them.
type TaxLine struct {
	InvoiceID        string          `json:"invoice_id"`
	CustomerID       string          `json:"customer_id"`
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	GSTRate          decimal.Decimal `json:"gst_rate"`
	GSTAmount        decimal.Decimal `json:"gst_amount"`
	WHTAmount        decimal.Decimal `json:"wht_amount"`
	AdvanceTaxRate   decimal.Decimal `json:"advance_tax_rate"`
	AdvanceTaxAmount decimal.Decimal `json:"advance_tax_amount"`
	NonFiler         bool            `json:"non_filer"`
}

// TaxReport groups per-line tax fields for remittance reporting: GST by
// rate bracket, advance tax by customer-specific rate, and non-filer
// surcharge GST as its own bucket.
type TaxReport struct {
	GSTByRate        map[string]decimal.Decimal `json:"gst_by_rate"`
	NonFilerGST      decimal.Decimal            `json:"non_filer_gst"`
	AdvanceTaxByRate map[string]decimal.Decimal `json:"advance_tax_by_rate"`
	TotalGST         decimal.Decimal            `json:"total_gst"`
	TotalWHT         decimal.Decimal            `json:"total_wht"`
	TotalAdvanceTax  decimal.Decimal            `json:"total_advance_tax"`
}

// BuildTaxReport aggregates persisted tax lines. It is a projection over
// stored fields, not a recalculation.
func BuildTaxReport(lines []TaxLine) *TaxReport {
	report := &TaxReport{
		GSTByRate:        make(map[string]decimal.Decimal),
		AdvanceTaxByRate: make(map[string]decimal.Decimal),
		NonFilerGST:      decimal.Zero,
		TotalGST:         decimal.Zero,
		TotalWHT:         decimal.Zero,
		TotalAdvanceTax:  decimal.Zero,
	}

	for _, line := range lines {
		report.TotalGST = report.TotalGST.Add(line.GSTAmount)
		report.TotalWHT = report.TotalWHT.Add(line.WHTAmount)
		report.TotalAdvanceTax = report.TotalAdvanceTax.Add(line.AdvanceTaxAmount)

		if line.NonFiler {
			report.NonFilerGST = report.NonFilerGST.Add(line.GSTAmount)
		} else {
			bracket := line.GSTRate.String()
			report.GSTByRate[bracket] = report.GSTByRate[bracket].Add(line.GSTAmount)
		}

		if line.AdvanceTaxAmount.IsPositive() {
			rate := line.AdvanceTaxRate.String()
			report.AdvanceTaxByRate[rate] = report.AdvanceTaxByRate[rate].Add(line.AdvanceTaxAmount)
		}
	}

	return report
}
