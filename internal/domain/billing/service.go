package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/emr/internal/platform/validate"
)

// statusTransitions is the allowed forward moves for an invoice. Paid
// and Cancelled are terminal.
var statusTransitions = map[string][]string{
	StatusDraft:   {StatusSent, StatusCancelled},
	StatusSent:    {StatusPaid, StatusOverdue, StatusCancelled},
	StatusOverdue: {StatusPaid, StatusCancelled},
}

func canTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Service struct {
	invoices Repository
}

func NewService(invoices Repository) *Service {
	return &Service{invoices: invoices}
}

func (s *Service) validate(inv *Invoice) error {
	v := validate.New().
		OneOf("status", inv.Status, InvoiceStatuses...)
	if inv.PatientID == uuid.Nil {
		v = v.Required("patient_id", "")
	}
	if inv.VisitID == uuid.Nil {
		v = v.Required("visit_id", "")
	}
	if len(inv.Items) == 0 {
		v = v.Required("items", "")
	}
	for i, item := range inv.Items {
		v = v.Required(fmt.Sprintf("items[%d].description", i), item.Description).
			Required(fmt.Sprintf("items[%d].code", i), item.Code).
			Min(fmt.Sprintf("items[%d].quantity", i), float64(item.Quantity), 1).
			Min(fmt.Sprintf("items[%d].unit_price", i), item.UnitPrice, 0)
	}
	if inv.PaymentMethod != nil {
		v = v.OneOf("payment_method", *inv.PaymentMethod, PaymentMethods...)
	}
	if inv.Claim != nil {
		v = v.Required("claim.provider", inv.Claim.Provider).
			Required("claim.policy_number", inv.Claim.PolicyNumber).
			OneOf("claim.status", inv.Claim.Status, ClaimStatuses...)
	}
	return v.Err()
}

// computeTotals overwrites line totals and the invoice total from
// quantity and unit price. Client-supplied totals are never trusted.
func computeTotals(inv *Invoice) {
	var sum float64
	for i := range inv.Items {
		inv.Items[i].Total = float64(inv.Items[i].Quantity) * inv.Items[i].UnitPrice
		sum += inv.Items[i].Total
	}
	inv.Total = sum
}

func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	if inv.Status == "" {
		inv.Status = StatusDraft
	}
	if err := s.validate(inv); err != nil {
		return err
	}
	computeTotals(inv)
	return s.invoices.Create(ctx, inv)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	current, err := s.invoices.GetByID(ctx, inv.ID)
	if err != nil {
		return err
	}
	if err := s.validate(inv); err != nil {
		return err
	}
	if !canTransition(current.Status, inv.Status) {
		return fmt.Errorf("cannot move invoice from %s to %s", current.Status, inv.Status)
	}
	if inv.Status == StatusPaid && inv.DatePaid == nil {
		now := time.Now()
		inv.DatePaid = &now
	}
	computeTotals(inv)
	return s.invoices.Update(ctx, inv)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.invoices.GetByID(ctx, id); err != nil {
		return err
	}
	return s.invoices.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error) {
	return s.invoices.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Invoice, int, error) {
	return s.invoices.Search(ctx, params, limit, offset)
}
