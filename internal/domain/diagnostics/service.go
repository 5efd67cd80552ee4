package diagnostics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medtrack/emr/internal/platform/validate"
)

type Service struct {
	reports Repository
}

func NewService(reports Repository) *Service {
	return &Service{reports: reports}
}

func (s *Service) validate(lr *LabReport) error {
	v := validate.New().
		Required("lab_name", lr.LabName).
		Required("category", lr.Category).
		OneOf("category", lr.Category, Categories...).
		OneOf("status", lr.Status, ReportStatuses...)
	if lr.PatientID == uuid.Nil {
		v = v.Required("patient_id", "")
	}
	if lr.OrderingProviderID == uuid.Nil {
		v = v.Required("ordering_provider_id", "")
	}
	if lr.CollectionDate == nil || lr.CollectionDate.IsZero() {
		v = v.Required("collection_date", "")
	}
	if lr.ReportDate == nil || lr.ReportDate.IsZero() {
		v = v.Required("report_date", "")
	}
	for i, res := range lr.Results {
		v = v.Required(fmt.Sprintf("results[%d].test_name", i), res.TestName).
			Required(fmt.Sprintf("results[%d].value", i), res.Value).
			Required(fmt.Sprintf("results[%d].unit", i), res.Unit).
			Required(fmt.Sprintf("results[%d].interpretation", i), res.Interpretation).
			OneOf(fmt.Sprintf("results[%d].interpretation", i), res.Interpretation, Interpretations...)
	}
	return v.Err()
}

func (s *Service) Create(ctx context.Context, lr *LabReport) error {
	if lr.Status == "" {
		lr.Status = StatusOrdered
	}
	if err := s.validate(lr); err != nil {
		return err
	}
	return s.reports.Create(ctx, lr)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*LabReport, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, lr *LabReport) error {
	if _, err := s.reports.GetByID(ctx, lr.ID); err != nil {
		return err
	}
	if err := s.validate(lr); err != nil {
		return err
	}
	return s.reports.Update(ctx, lr)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.reports.GetByID(ctx, id); err != nil {
		return err
	}
	return s.reports.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*LabReport, int, error) {
	return s.reports.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabReport, int, error) {
	return s.reports.Search(ctx, params, limit, offset)
}
