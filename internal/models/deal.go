package models

import "time"

// Deal statuses. "Payment Pending" and "Closed" carry date side effects,
// see ApplyStatus.
const (
	StatusActive         = "Active"
	StatusClosed         = "Closed"
	StatusPaymentPending = "Payment Pending"
	StatusCancelled      = "Cancelled"
)

const (
	ServiceOwner  = "Owner"
	ServiceTenant = "Tenant"
)

// Deal is a sales-pipeline record. CreatedBy is set once at insert from the
// authenticated caller and scopes every later read and write.
type Deal struct {
	ID                    string    `gorm:"type:uuid;primaryKey" json:"id"`
	Status                string    `gorm:"not null;default:Active" json:"status"`
	ServiceType           string    `gorm:"not null;default:Owner" json:"service_type"`
	Customer              string    `gorm:"not null" json:"customer"`
	Location              string    `gorm:"not null" json:"location"`
	Size                  float64   `json:"size"`
	CostOrBudget          float64   `json:"cost_or_budget"`
	RevenueFromOwner      float64   `json:"revenue_from_owner"`
	RevenueFromTenant     float64   `json:"revenue_from_tenant"`
	TotalRevenue          float64   `json:"total_revenue"`
	Notes                 string    `json:"notes"`
	PropertyOrInquiryLink string    `json:"property_or_inquiry_link"`
	StartDate             string    `json:"start_date"`
	PaymentDate           *string   `json:"payment_date,omitempty"`
	ClosedDate            *string   `json:"closed_date,omitempty"`
	CreatedBy             string    `gorm:"index;not null" json:"created_by"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func ValidDealStatus(s string) bool {
	switch s {
	case StatusActive, StatusClosed, StatusPaymentPending, StatusCancelled:
		return true
	}
	return false
}

func ValidServiceType(s string) bool {
	return s == ServiceOwner || s == ServiceTenant
}

// ApplyStatus sets the status and its date side effects. Moving to Closed
// fills closed_date with today only when absent; Payment Pending does the
// same for payment_date; moving back to Active clears closed_date. Cancelled
// leaves both dates untouched.
func (d *Deal) ApplyStatus(status, today string) {
	d.Status = status
	switch status {
	case StatusClosed:
		if d.ClosedDate == nil || *d.ClosedDate == "" {
			d.ClosedDate = &today
		}
	case StatusPaymentPending:
		if d.PaymentDate == nil || *d.PaymentDate == "" {
			d.PaymentDate = &today
		}
	case StatusActive:
		d.ClosedDate = nil
	}
}

// ComputeTotal keeps total_revenue server-derived rather than caller-supplied.
func (d *Deal) ComputeTotal() {
	d.TotalRevenue = d.RevenueFromOwner + d.RevenueFromTenant
}

// Today returns the wire format used for all deal dates.
func Today() string {
	return time.Now().Format("2006-01-02")
}
