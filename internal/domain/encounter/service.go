package encounter

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medtrack/emr/internal/platform/validate"
)

var statusTransitions = map[string][]string{
	StatusScheduled:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// billingTransitions moves independently of clinical status. Denied
// claims can be rebilled; Paid is terminal.
var billingTransitions = map[string][]string{
	BillingUnbilled: {BillingBilled},
	BillingBilled:   {BillingPaid, BillingDenied},
	BillingDenied:   {BillingBilled},
}

func canTransition(graph map[string][]string, from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range graph[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Service struct {
	visits Repository
}

func NewService(visits Repository) *Service {
	return &Service{visits: visits}
}

func (s *Service) validate(v *Visit) error {
	val := validate.New().
		Required("type", v.Type).
		OneOf("type", v.Type, VisitTypes...).
		OneOf("status", v.Status, VisitStatuses...).
		OneOf("billing_status", v.BillingStatus, BillingStatuses...)
	if v.PatientID == uuid.Nil {
		val = val.Required("patient_id", "")
	}
	if v.ProviderID == uuid.Nil {
		val = val.Required("provider_id", "")
	}
	if v.Date.IsZero() {
		val = val.Required("date", "")
	}
	if v.SOAP != nil {
		val = val.Required("soap.subjective", v.SOAP.Subjective).
			Required("soap.objective", v.SOAP.Objective).
			Required("soap.assessment", v.SOAP.Assessment).
			Required("soap.plan", v.SOAP.Plan)
	}
	return val.Err()
}

func (s *Service) Create(ctx context.Context, v *Visit) error {
	if v.Status == "" {
		v.Status = StatusScheduled
	}
	if v.BillingStatus == "" {
		v.BillingStatus = BillingUnbilled
	}
	if err := s.validate(v); err != nil {
		return err
	}
	return s.visits.Create(ctx, v)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, v *Visit) error {
	current, err := s.visits.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if err := s.validate(v); err != nil {
		return err
	}
	if !canTransition(statusTransitions, current.Status, v.Status) {
		return fmt.Errorf("cannot move visit from %s to %s", current.Status, v.Status)
	}
	if !canTransition(billingTransitions, current.BillingStatus, v.BillingStatus) {
		return fmt.Errorf("cannot move billing from %s to %s", current.BillingStatus, v.BillingStatus)
	}
	return s.visits.Update(ctx, v)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.visits.GetByID(ctx, id); err != nil {
		return err
	}
	return s.visits.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	return s.visits.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Visit, int, error) {
	return s.visits.Search(ctx, params, limit, offset)
}
