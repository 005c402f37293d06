package sale

import "strings"

// PayloadItem is the external shape of one line item: identifiers as strings,
// amounts as numbers.
type PayloadItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// SubmissionPayload is the body posted to the core sales API. The backend
// recomputes subtotal, tax and total authoritatively and may reject the sale
// on insufficient stock; nothing client-side is trusted beyond the raw line
// items.
type SubmissionPayload struct {
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone"`
	TaxPercentage float64       `json:"taxPercentage"`
	Items         []PayloadItem `json:"items"`
}

// BuildSubmissionPayload converts a validated draft into the external
// submission shape: customer fields trimmed, numeric fields coerced to
// numbers regardless of how they were typed.
func BuildSubmissionPayload(d *Draft) SubmissionPayload {
	items := make([]PayloadItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = PayloadItem{
			ProductID: strings.TrimSpace(item.ProductID),
			Quantity:  toNumber(item.Quantity),
			UnitPrice: toNumber(item.UnitPrice),
		}
	}
	return SubmissionPayload{
		CustomerName:  strings.TrimSpace(d.CustomerName),
		CustomerEmail: strings.TrimSpace(d.CustomerEmail),
		CustomerPhone: strings.TrimSpace(d.CustomerPhone),
		TaxPercentage: toNumber(d.TaxPercentage),
		Items:         items,
	}
}
