package billing

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "Draft"
	StatusSent      = "Sent"
	StatusPaid      = "Paid"
	StatusOverdue   = "Overdue"
	StatusCancelled = "Cancelled"
)

var InvoiceStatuses = []string{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled}

const (
	PaymentCreditCard = "Credit Card"
	PaymentInsurance  = "Insurance"
	PaymentCash       = "Cash"
	PaymentCheck      = "Check"
)

var PaymentMethods = []string{PaymentCreditCard, PaymentInsurance, PaymentCash, PaymentCheck}

const (
	ClaimSubmitted         = "Submitted"
	ClaimInReview          = "In Review"
	ClaimApproved          = "Approved"
	ClaimDenied            = "Denied"
	ClaimPartiallyApproved = "Partially Approved"
)

var ClaimStatuses = []string{
	ClaimSubmitted, ClaimInReview, ClaimApproved, ClaimDenied, ClaimPartiallyApproved,
}

// LineItem is one billable row on an invoice, persisted as part of a
// jsonb column. Total is always recomputed as quantity * unit_price.
type LineItem struct {
	Description string  `json:"description"`
	Code        string  `json:"code,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// InsuranceClaim tracks a claim filed against an invoice, persisted as
// a jsonb column.
type InsuranceClaim struct {
	Provider       string     `json:"provider"`
	PolicyNumber   string     `json:"policy_number,omitempty"`
	ClaimNumber    string     `json:"claim_number,omitempty"`
	SubmissionDate *time.Time `json:"submission_date,omitempty"`
	Status         string     `json:"status,omitempty"`
	ApprovedAmount *float64   `json:"approved_amount,omitempty"`
	DenialReason   string     `json:"denial_reason,omitempty"`
}

// Invoice maps to the invoice table. Every invoice bills exactly one
// visit.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	PatientID     uuid.UUID       `db:"patient_id" json:"patient_id"`
	VisitID       uuid.UUID       `db:"visit_id" json:"visit_id"`
	Items         []LineItem      `db:"items" json:"items"`
	Total         float64         `db:"total" json:"total"`
	Status        string          `db:"status" json:"status"`
	PaymentMethod *string         `db:"payment_method" json:"payment_method,omitempty"`
	DatePaid      *time.Time      `db:"date_paid" json:"date_paid,omitempty"`
	Claim         *InsuranceClaim `db:"claim" json:"claim,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}
