package scheduling

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeInitialVisit = "Initial Visit"
	TypeFollowUp     = "Follow-up"
	TypeConsultation = "Consultation"
	TypeProcedure    = "Procedure"
)

var AppointmentTypes = []string{TypeInitialVisit, TypeFollowUp, TypeConsultation, TypeProcedure}

const (
	StatusScheduled  = "Scheduled"
	StatusCheckedIn  = "Checked-in"
	StatusInProgress = "In-progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
	StatusNoShow     = "No-show"
)

var AppointmentStatuses = []string{
	StatusScheduled, StatusCheckedIn, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusNoShow,
}

// MinDurationMinutes is the shortest bookable appointment.
const MinDurationMinutes = 15

// Appointment maps to the appointment table. Time of day is kept as a
// separate HH:MM string alongside the calendar date.
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	ProviderID      uuid.UUID `db:"provider_id" json:"provider_id"`
	Date            time.Time `db:"date" json:"date"`
	Time            string    `db:"time" json:"time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Type            string    `db:"type" json:"type"`
	Status          string    `db:"status" json:"status"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
