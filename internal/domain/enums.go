package domain

// SaleStatus represents the lifecycle status of a persisted sale.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// IsValid checks if the sale status is a known value.
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is allowed. The core API
// enforces this authoritatively; the gateway checks it up front to spare a
// pointless round trip.
func (s SaleStatus) CanTransitionTo(newStatus SaleStatus) bool {
	switch s {
	case SaleStatusPending:
		return newStatus == SaleStatusCompleted || newStatus == SaleStatusCancelled
	case SaleStatusCompleted, SaleStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}

// InvoiceStatus represents the payment status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid    InvoiceStatus = "UNPAID"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the invoice status is a known value.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if an invoice status transition is allowed.
func (s InvoiceStatus) CanTransitionTo(newStatus InvoiceStatus) bool {
	switch s {
	case InvoiceStatusUnpaid:
		return newStatus == InvoiceStatusPaid ||
			newStatus == InvoiceStatusOverdue ||
			newStatus == InvoiceStatusCancelled
	case InvoiceStatusOverdue:
		return newStatus == InvoiceStatusPaid || newStatus == InvoiceStatusCancelled
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}
