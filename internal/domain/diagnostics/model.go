package diagnostics

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOrdered   = "Ordered"
	StatusCollected = "Collected"
	StatusInProcess = "In Process"
	StatusCompleted = "Completed"
	StatusReviewed  = "Reviewed"
)

var ReportStatuses = []string{
	StatusOrdered, StatusCollected, StatusInProcess, StatusCompleted, StatusReviewed,
}

const (
	CategoryBlood     = "Blood"
	CategoryUrine     = "Urine"
	CategoryImaging   = "Imaging"
	CategoryPathology = "Pathology"
	CategoryOther     = "Other"
)

var Categories = []string{
	CategoryBlood, CategoryUrine, CategoryImaging, CategoryPathology, CategoryOther,
}

const (
	InterpretationNormal       = "Normal"
	InterpretationAbnormal     = "Abnormal"
	InterpretationCritical     = "Critical"
	InterpretationInconclusive = "Inconclusive"
)

var Interpretations = []string{
	InterpretationNormal, InterpretationAbnormal,
	InterpretationCritical, InterpretationInconclusive,
}

// Result is one measured value on a lab report, persisted as part of a
// jsonb column.
type Result struct {
	TestName       string `json:"test_name"`
	Value          string `json:"value"`
	Unit           string `json:"unit,omitempty"`
	ReferenceRange string `json:"reference_range,omitempty"`
	Interpretation string `json:"interpretation,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// LabReport maps to the lab_report table.
type LabReport struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	PatientID          uuid.UUID  `db:"patient_id" json:"patient_id"`
	OrderingProviderID uuid.UUID  `db:"ordering_provider_id" json:"ordering_provider_id"`
	LabName            string     `db:"lab_name" json:"lab_name"`
	Category           string     `db:"category" json:"category"`
	Status             string     `db:"status" json:"status"`
	CollectionDate     *time.Time `db:"collection_date" json:"collection_date,omitempty"`
	ReportDate         *time.Time `db:"report_date" json:"report_date,omitempty"`
	Results            []Result   `db:"results" json:"results,omitempty"`
	Notes              *string    `db:"notes" json:"notes,omitempty"`
	DocumentURL        *string    `db:"document_url" json:"document_url,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}
