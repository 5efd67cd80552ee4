package patient

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

var Genders = []string{GenderMale, GenderFemale, GenderOther}

// Address is stored as flat columns on the patient row.
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// Medication is one entry of a patient's current medication list,
// persisted as part of a jsonb column.
type Medication struct {
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage,omitempty"`
	Frequency string     `json:"frequency,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Patient maps to the patient table. Records are deactivated rather
// than deleted so historical visits and invoices keep a valid subject.
type Patient struct {
	ID                uuid.UUID    `db:"id" json:"id"`
	FirstName         string       `db:"first_name" json:"first_name"`
	LastName          string       `db:"last_name" json:"last_name"`
	DateOfBirth       time.Time    `db:"date_of_birth" json:"date_of_birth"`
	Gender            string       `db:"gender" json:"gender"`
	Email             *string      `db:"email" json:"email,omitempty"`
	Phone             *string      `db:"phone" json:"phone,omitempty"`
	Address           Address      `json:"address"`
	InsuranceProvider *string      `db:"insurance_provider" json:"insurance_provider,omitempty"`
	InsuranceNumber   *string      `db:"insurance_number" json:"insurance_number,omitempty"`
	Allergies         []string     `db:"allergies" json:"allergies,omitempty"`
	Medications       []Medication `db:"medications" json:"medications,omitempty"`
	ChronicConditions []string     `db:"chronic_conditions" json:"chronic_conditions,omitempty"`
	FamilyHistory     []string     `db:"family_history" json:"family_history,omitempty"`
	SurgicalHistory   []string     `db:"surgical_history" json:"surgical_history,omitempty"`
	Active            bool         `db:"active" json:"active"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updated_at"`
}
