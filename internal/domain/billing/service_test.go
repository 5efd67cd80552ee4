package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/emr/internal/platform/validate"
)

// -- Mock Repository --

type mockRepo struct {
	invoices map[uuid.UUID]*Invoice
}

func newMockRepo() *mockRepo {
	return &mockRepo{invoices: make(map[uuid.UUID]*Invoice)}
}

func (m *mockRepo) Create(_ context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = time.Now()
	cp := *inv
	m.invoices[inv.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	cp := *inv
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, inv *Invoice) error {
	if _, ok := m.invoices[inv.ID]; !ok {
		return fmt.Errorf("not found")
	}
	cp := *inv
	m.invoices[inv.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.invoices, id)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error) {
	var items []*Invoice
	for _, inv := range m.invoices {
		if inv.PatientID == patientID {
			items = append(items, inv)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Invoice, int, error) {
	var items []*Invoice
	for _, inv := range m.invoices {
		if st, ok := params["status"]; ok && inv.Status != st {
			continue
		}
		items = append(items, inv)
	}
	return items, len(items), nil
}

func validInvoice() *Invoice {
	return &Invoice{
		PatientID: uuid.New(),
		VisitID:   uuid.New(),
		Items: []LineItem{
			{Description: "Office visit", Code: "99213", Quantity: 1, UnitPrice: 150},
			{Description: "Blood draw", Code: "36415", Quantity: 2, UnitPrice: 25},
		},
	}
}

// -- Tests --

func TestCreateInvoice_ComputesTotals(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := validInvoice()
	inv.Total = 9999 // client-supplied totals are ignored
	inv.Items[0].Total = 9999
	if err := svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != StatusDraft {
		t.Errorf("expected default status Draft, got %s", inv.Status)
	}
	if inv.Items[0].Total != 150 || inv.Items[1].Total != 50 {
		t.Errorf("line totals must be recomputed, got %v and %v", inv.Items[0].Total, inv.Items[1].Total)
	}
	if inv.Total != 200 {
		t.Errorf("expected invoice total 200, got %v", inv.Total)
	}
}

func TestCreateInvoice_NoItems(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := validInvoice()
	inv.Items = nil
	if err := svc.Create(context.Background(), inv); err == nil {
		t.Error("expected error for invoice without items")
	}
}

func TestCreateInvoice_BadQuantity(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := validInvoice()
	inv.Items[0].Quantity = 0
	err := svc.Create(context.Background(), inv)
	if err == nil {
		t.Fatal("expected error for quantity under 1")
	}
	fields, ok := validate.AsErrors(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if fields[0].Field != "items[0].quantity" {
		t.Errorf("expected items[0].quantity field error, got %v", fields)
	}
}

func TestCreateInvoice_NegativePrice(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := validInvoice()
	inv.Items[1].UnitPrice = -5
	if err := svc.Create(context.Background(), inv); err == nil {
		t.Error("expected error for negative unit price")
	}
}

func TestCreateInvoice_BadPaymentMethod(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := validInvoice()
	method := "Bitcoin"
	inv.PaymentMethod = &method
	if err := svc.Create(context.Background(), inv); err == nil {
		t.Error("expected error for payment method outside allowed set")
	}
}

func TestCreateInvoice_ClaimValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := validInvoice()
	inv.Claim = &InsuranceClaim{Status: ClaimSubmitted}
	if err := svc.Create(context.Background(), inv); err == nil {
		t.Error("expected error for claim without a provider")
	}

	inv = validInvoice()
	inv.Claim = &InsuranceClaim{Provider: "Acme Health", PolicyNumber: "POL-4821", Status: "Pending"}
	if err := svc.Create(context.Background(), inv); err == nil {
		t.Error("expected error for claim status outside allowed set")
	}

	inv = validInvoice()
	inv.Claim = &InsuranceClaim{Provider: "Acme Health", Status: ClaimSubmitted}
	err := svc.Create(context.Background(), inv)
	if err == nil {
		t.Fatal("expected error for claim without a policy number")
	}
	fields, ok := validate.AsErrors(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if fields[0].Field != "claim.policy_number" {
		t.Errorf("expected claim.policy_number field error, got %v", fields)
	}

	inv = validInvoice()
	inv.Claim = &InsuranceClaim{Provider: "Acme Health", PolicyNumber: "POL-4821", Status: ClaimSubmitted}
	if err := svc.Create(context.Background(), inv); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCreateInvoice_MissingItemCode(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	inv := validInvoice()
	inv.Items[1].Code = ""
	err := svc.Create(context.Background(), inv)
	if err == nil {
		t.Fatal("expected error for line item without a code")
	}
	fields, ok := validate.AsErrors(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if fields[0].Field != "items[1].code" {
		t.Errorf("expected items[1].code field error, got %v", fields)
	}
	if len(repo.invoices) != 0 {
		t.Error("expected nothing persisted")
	}
}

func TestUpdateInvoice_Transitions(t *testing.T) {
	svc := NewService(newMockRepo())
	inv := validInvoice()
	if err := svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv.Status = StatusPaid
	if err := svc.Update(context.Background(), inv); err == nil {
		t.Error("Draft -> Paid must be rejected")
	}

	inv.Status = StatusSent
	if err := svc.Update(context.Background(), inv); err != nil {
		t.Fatalf("Draft -> Sent should be allowed: %v", err)
	}

	inv.Status = StatusOverdue
	if err := svc.Update(context.Background(), inv); err != nil {
		t.Fatalf("Sent -> Overdue should be allowed: %v", err)
	}

	inv.Status = StatusPaid
	if err := svc.Update(context.Background(), inv); err != nil {
		t.Fatalf("Overdue -> Paid should be allowed: %v", err)
	}
	if inv.DatePaid == nil {
		t.Error("expected date_paid to be stamped when the invoice is paid")
	}

	inv.Status = StatusDraft
	if err := svc.Update(context.Background(), inv); err == nil {
		t.Error("paid invoices must stay paid")
	}
}

func TestUpdateInvoice_RecomputesTotals(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	inv := validInvoice()
	if err := svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv.Items = append(inv.Items, LineItem{Description: "X-ray", Code: "71045", Quantity: 1, UnitPrice: 300})
	if err := svc.Update(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.invoices[inv.ID].Total != 500 {
		t.Errorf("expected recomputed total 500, got %v", repo.invoices[inv.ID].Total)
	}
}
