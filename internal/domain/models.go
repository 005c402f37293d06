package domain

import "time"

// Profile is the dashboard user as reported by the core API on login.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Credential is the upstream token plus the profile it was issued for. It is
// held in the session store for the lifetime of a browser session and
// attached to every outbound core API call.
type Credential struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Product is a purchasable catalog entry. Price is a default-fill convenience
// for the sale form; the core API remains the source of truth for pricing at
// save time.
type Product struct {
	ID    string  `json:"id"`
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// SaleRecord is a persisted sale as listed by the core API, with the
// authoritative totals it computed.
type SaleRecord struct {
	ID            string     `json:"id"`
	SaleNumber    string     `json:"sale_number"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	Status        SaleStatus `json:"status"`
	Subtotal      float64    `json:"subtotal"`
	TaxAmount     float64    `json:"tax_amount"`
	TotalAmount   float64    `json:"total_amount"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Invoice is a generated invoice as listed by the core API. The PDF bytes are
// produced upstream and only streamed through this service.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	SaleID        string        `json:"sale_id"`
	CustomerName  string        `json:"customer_name"`
	TotalAmount   float64       `json:"total_amount"`
	Status        InvoiceStatus `json:"status"`
	IssuedAt      time.Time     `json:"issued_at"`
	DueAt         *time.Time    `json:"due_at,omitempty"`
}

// SummaryRow is one dated bucket of the sales summary report.
type SummaryRow struct {
	Date       string  `json:"date"`
	Revenue    float64 `json:"revenue"`
	SalesCount int     `json:"sales_count"`
}
