// Package derive computes the production view of a revenue record: per line
// item property metadata and a proportional split of taxes and deductions.
// Every value here is an estimate derived from free text and totals.
package derive

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

// Totals are the statement-level figures the apportionment starts from.
type Totals struct {
	Gross           decimal.Decimal
	Taxes           decimal.Decimal // absolute value of the record's taxes
	OtherDeductions decimal.Decimal // max(0, gross - net - |taxes|)
	Net             decimal.Decimal
}

// Share is one line item's slice of the totals.
type Share struct {
	Proportion decimal.Decimal
	Gross      decimal.Decimal
	Deductions decimal.Decimal
	Taxes      decimal.Decimal
	Net        decimal.Decimal
}

// Row pairs a line item with everything derived from it.
type Row struct {
	Item     entity.LineItem
	Property PropertyInfo
	Share    Share
}

type Result struct {
	Totals Totals
	Rows   []Row
}

type Calculator struct {
	jitter Jitter
}

// NewCalculator uses jitter for owner-interest variation; nil means Fixed(0.5).
func NewCalculator(jitter Jitter) *Calculator {
	if jitter == nil {
		jitter = Fixed(0.5)
	}
	return &Calculator{jitter: jitter}
}

// ComputeTotals derives the statement totals used for apportionment.
func ComputeTotals(rec entity.RevenueRecord) Totals {
	gross := decimal.NewFromFloat(rec.TotalRevenue)
	net := decimal.NewFromFloat(rec.NetRevenue)
	taxes := decimal.NewFromFloat(rec.Taxes).Abs()

	other := gross.Sub(net).Sub(taxes)
	if other.IsNegative() {
		other = decimal.Zero
	}
	return Totals{Gross: gross, Taxes: taxes, OtherDeductions: other, Net: net}
}

// Apportion splits totals across an item by |amount| / gross.
func Apportion(t Totals, amount float64) Share {
	gross := decimal.NewFromFloat(amount).Abs()
	proportion := decimal.Zero
	if t.Gross.IsPositive() {
		proportion = gross.Div(t.Gross)
	}
	deductions := t.OtherDeductions.Mul(proportion)
	taxes := t.Taxes.Mul(proportion)
	return Share{
		Proportion: proportion,
		Gross:      gross,
		Deductions: deductions,
		Taxes:      taxes,
		Net:        gross.Sub(deductions).Sub(taxes),
	}
}

// Describe extracts property metadata from one description.
func (c *Calculator) Describe(description string) PropertyInfo {
	desc := strings.TrimSpace(description)
	name := PropertyName(desc)
	profile := InferProduct(desc)
	return PropertyInfo{
		Name:          name,
		Number:        PropertyNumber(desc, numberSeed(desc)),
		Product:       profile.Type,
		Unit:          profile.Unit,
		BTUFactor:     profile.BTUFactor,
		OwnerInterest: OwnerInterest(profile.BaseOwnerInterest, c.jitter.Float64()),
	}
}

// Derive computes a fresh Result. rec is not modified.
func (c *Calculator) Derive(rec entity.RevenueRecord) Result {
	totals := ComputeTotals(rec)
	rows := make([]Row, 0, len(rec.LineItems))
	for _, item := range rec.LineItems {
		rows = append(rows, Row{
			Item:     item,
			Property: c.Describe(item.Description),
			Share:    Apportion(totals, item.Amount),
		})
	}
	return Result{Totals: totals, Rows: rows}
}
