package sale

import (
	"regexp"
	"strconv"
	"strings"
)

// Permissive shape check only: something, @, something, dot, something.
// Full RFC validation is deliberately not attempted.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ItemErrors holds the validation messages for a single line item. A zero
// value means the row is valid.
type ItemErrors struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  string `json:"quantity,omitempty"`
	UnitPrice string `json:"unitPrice,omitempty"`
}

// IsZero reports whether the row has no errors.
func (e ItemErrors) IsZero() bool {
	return e == ItemErrors{}
}

// ValidationResult maps draft fields to human-readable error messages. An
// empty field means it passed. ItemErrors is aligned by index with the
// draft's items and is only populated when at least one row failed.
type ValidationResult struct {
	CustomerName  string       `json:"customerName,omitempty"`
	CustomerEmail string       `json:"customerEmail,omitempty"`
	TaxPercentage string       `json:"taxPercentage,omitempty"`
	Items         string       `json:"items,omitempty"`
	ItemErrors    []ItemErrors `json:"itemErrors,omitempty"`
}

// Valid reports whether no rule was violated.
func (r ValidationResult) Valid() bool {
	return r.CustomerName == "" &&
		r.CustomerEmail == "" &&
		r.TaxPercentage == "" &&
		r.Items == "" &&
		len(r.ItemErrors) == 0
}

// Validate checks every rule independently and collects all violations; it
// never stops at the first failure. The second return value is true iff the
// draft may be submitted.
func Validate(d *Draft) (ValidationResult, bool) {
	var res ValidationResult

	if strings.TrimSpace(d.CustomerName) == "" {
		res.CustomerName = "Customer name is required"
	}

	email := strings.TrimSpace(d.CustomerEmail)
	switch {
	case email == "":
		res.CustomerEmail = "Customer email is required"
	case !emailPattern.MatchString(email):
		res.CustomerEmail = "Enter a valid email address"
	}

	// A blank tax field counts as zero, matching the totals coercion. A
	// value that is present must parse and lie within [0, 100].
	if tax := strings.TrimSpace(d.TaxPercentage); tax != "" {
		v, err := strconv.ParseFloat(tax, 64)
		if err != nil || v < 0 || v > 100 {
			res.TaxPercentage = "Tax must be between 0 and 100"
		}
	}

	if len(d.Items) == 0 {
		res.Items = "Add at least one item"
		return res, res.Valid()
	}

	rows := make([]ItemErrors, len(d.Items))
	anyRowFailed := false
	for i, item := range d.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			rows[i].ProductID = "Select a product"
		}
		if qty, err := strconv.ParseFloat(strings.TrimSpace(item.Quantity), 64); err != nil || qty < 1 {
			rows[i].Quantity = "Quantity must be at least 1"
		}
		if price, err := strconv.ParseFloat(strings.TrimSpace(item.UnitPrice), 64); err != nil || price < 0 {
			rows[i].UnitPrice = "Unit price must be 0 or more"
		}
		if !rows[i].IsZero() {
			anyRowFailed = true
		}
	}
	if anyRowFailed {
		res.ItemErrors = rows
	}

	return res, res.Valid()
}
