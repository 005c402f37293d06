package sale

import (
	"strconv"
	"strings"
)

// Totals is the client-side preview of a draft's money amounts. The core API
// recomputes all three authoritatively at save time; these exist only so the
// form can show a running total while the user types.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	TaxAmount   float64 `json:"taxAmount"`
	TotalAmount float64 `json:"totalAmount"`
}

// ComputeTotals derives the preview totals from the current draft state. It
// is pure: the draft is not modified and identical drafts always produce
// identical totals. Empty or non-numeric quantity, unit price and tax values
// count as zero so an in-progress row cannot break the preview.
func ComputeTotals(d *Draft) Totals {
	var subtotal float64
	for _, item := range d.Items {
		subtotal += toNumber(item.Quantity) * toNumber(item.UnitPrice)
	}
	tax := subtotal * toNumber(d.TaxPercentage) / 100
	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal + tax,
	}
}

// toNumber coerces a raw form value to a number, treating anything
// unparseable as zero.
func toNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
