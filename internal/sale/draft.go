// Package sale implements the sale composition and pricing workflow used by
// the admin dashboard: an in-progress draft of customer details plus line
// items, live preview totals, a validation pass, and the submission payload
// handed to the core sales API.
package sale

// Line item field names accepted by UpdateLineItem.
const (
	FieldProductID = "productId"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unitPrice"
)

// LineItem is one product row of an in-progress sale. Quantity and unit price
// keep the raw form values so a half-typed row never breaks the live preview;
// they are coerced to numbers for totals and for the submission payload.
type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// Draft is the unsaved state of a sale being composed. A draft always holds
// at least one line item.
type Draft struct {
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
	TaxPercentage string     `json:"taxPercentage"`
	Items         []LineItem `json:"items"`
}

func defaultItem() LineItem {
	return LineItem{ProductID: "", Quantity: "1", UnitPrice: "0"}
}

// NewDraft returns a fresh draft with a single default line item.
func NewDraft() *Draft {
	return &Draft{
		TaxPercentage: "0",
		Items:         []LineItem{defaultItem()},
	}
}

// AddLineItem appends a line item with default values. It always succeeds.
func (d *Draft) AddLineItem() {
	d.Items = append(d.Items, defaultItem())
}

// RemoveLineItem removes the item at index, preserving the order of the
// remaining rows. Removing the last remaining row is refused so the draft
// never ends up empty; out-of-range indexes are ignored the same way.
func (d *Draft) RemoveLineItem(index int) {
	if len(d.Items) <= 1 {
		return
	}
	if index < 0 || index >= len(d.Items) {
		return
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
}

// UpdateLineItem replaces one field of the item at index, leaving every other
// field and row untouched. Unknown fields and out-of-range indexes report
// false.
func (d *Draft) UpdateLineItem(index int, field, value string) bool {
	if index < 0 || index >= len(d.Items) {
		return false
	}
	switch field {
	case FieldProductID:
		d.Items[index].ProductID = value
	case FieldQuantity:
		d.Items[index].Quantity = value
	case FieldUnitPrice:
		d.Items[index].UnitPrice = value
	default:
		return false
	}
	return true
}

// Reset restores the draft to its initial empty state.
func (d *Draft) Reset() {
	*d = *NewDraft()
}

// Clone returns a deep copy of the draft.
func (d *Draft) Clone() *Draft {
	cp := *d
	cp.Items = make([]LineItem, len(d.Items))
	copy(cp.Items, d.Items)
	return &cp
}
