package encounter

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeInitial   = "Initial"
	TypeFollowUp  = "Follow-up"
	TypeDischarge = "Discharge"
)

var VisitTypes = []string{TypeInitial, TypeFollowUp, TypeDischarge}

const (
	StatusScheduled  = "Scheduled"
	StatusCheckedIn  = "Checked-in"
	StatusInProgress = "In-progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

var VisitStatuses = []string{
	StatusScheduled, StatusCheckedIn, StatusInProgress,
	StatusCompleted, StatusCancelled,
}

const (
	BillingUnbilled = "Unbilled"
	BillingBilled   = "Billed"
	BillingPaid     = "Paid"
	BillingDenied   = "Denied"
)

var BillingStatuses = []string{BillingUnbilled, BillingBilled, BillingPaid, BillingDenied}

// SOAPNote is the clinical note for a visit, persisted as a jsonb
// column. Once a note is attached all four sections must be filled.
type SOAPNote struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
}

// Visit maps to the visit table. Clinical status and billing status
// move independently of each other.
type Visit struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	ProviderID    uuid.UUID  `db:"provider_id" json:"provider_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Date          time.Time  `db:"date" json:"date"`
	Type          string     `db:"type" json:"type"`
	Status        string     `db:"status" json:"status"`
	BillingStatus string     `db:"billing_status" json:"billing_status"`
	SOAP          *SOAPNote  `db:"soap" json:"soap,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
