package diagnostics

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
	reports map[uuid.UUID]*LabReport
}

func newMockRepo() *mockRepo {
	return &mockRepo{reports: make(map[uuid.UUID]*LabReport)}
}

func (m *mockRepo) Create(_ context.Context, lr *LabReport) error {
	lr.ID = uuid.New()
	lr.CreatedAt = time.Now()
	lr.UpdatedAt = time.Now()
	cp := *lr
	m.reports[lr.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*LabReport, error) {
	lr, ok := m.reports[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	cp := *lr
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, lr *LabReport) error {
	if _, ok := m.reports[lr.ID]; !ok {
		return fmt.Errorf("not found")
	}
	cp := *lr
	m.reports[lr.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.reports, id)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*LabReport, int, error) {
	var items []*LabReport
	for _, lr := range m.reports {
		if lr.PatientID == patientID {
			items = append(items, lr)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*LabReport, int, error) {
	var items []*LabReport
	for _, lr := range m.reports {
		if cat, ok := params["category"]; ok && lr.Category != cat {
			continue
		}
		items = append(items, lr)
	}
	return items, len(items), nil
}

func validReport() *LabReport {
	collected := time.Now().Add(-48 * time.Hour)
	reported := time.Now().Add(-24 * time.Hour)
	return &LabReport{
		PatientID:          uuid.New(),
		OrderingProviderID: uuid.New(),
		LabName:            "Quest Diagnostics",
		Category:           CategoryBlood,
		CollectionDate:     &collected,
		ReportDate:         &reported,
	}
}

// -- Tests --

func TestCreateReport_DefaultsToOrdered(t *testing.T) {
	svc := NewService(newMockRepo())
	lr := validReport()
	if err := svc.Create(context.Background(), lr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lr.Status != StatusOrdered {
		t.Errorf("expected default status Ordered, got %s", lr.Status)
	}
}

func TestCreateReport_MissingLabName(t *testing.T) {
	svc := NewService(newMockRepo())
	lr := validReport()
	lr.LabName = ""
	if err := svc.Create(context.Background(), lr); err == nil {
		t.Error("expected error for missing lab name")
	}
}

func TestCreateReport_InvalidCategory(t *testing.T) {
	svc := NewService(newMockRepo())
	lr := validReport()
	lr.Category = "Genetics"
	if err := svc.Create(context.Background(), lr); err == nil {
		t.Error("expected error for category outside allowed set")
	}
}

func TestCreateReport_MissingCategory(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	lr := validReport()
	lr.Category = ""
	err := svc.Create(context.Background(), lr)
	if err == nil {
		t.Fatal("expected error for missing category")
	}
	fes, ok := validate.AsErrors(err)
	if !ok || !hasField(fes, "category") {
		t.Errorf("expected category field error, got %v", err)
	}
	if len(repo.reports) != 0 {
		t.Error("expected nothing persisted")
	}
}

func TestCreateReport_MissingDates(t *testing.T) {
	svc := NewService(newMockRepo())

	lr := validReport()
	lr.CollectionDate = nil
	err := svc.Create(context.Background(), lr)
	if fes, ok := validate.AsErrors(err); !ok || !hasField(fes, "collection_date") {
		t.Errorf("expected collection_date field error, got %v", err)
	}

	lr = validReport()
	lr.ReportDate = nil
	err = svc.Create(context.Background(), lr)
	if fes, ok := validate.AsErrors(err); !ok || !hasField(fes, "report_date") {
		t.Errorf("expected report_date field error, got %v", err)
	}
}

func hasField(fes validate.Errors, field string) bool {
	for _, fe := range fes {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestCreateReport_ResultValidation(t *testing.T) {
	svc := NewService(newMockRepo())

	lr := validReport()
	lr.Results = []Result{{TestName: "WBC"}}
	if err := svc.Create(context.Background(), lr); err == nil {
		t.Error("expected error for result without a value")
	}

	lr = validReport()
	lr.Results = []Result{{TestName: "WBC", Value: "7.2", Unit: "K/uL", Interpretation: "Fine"}}
	if err := svc.Create(context.Background(), lr); err == nil {
		t.Error("expected error for interpretation outside allowed set")
	}

	lr = validReport()
	lr.Results = []Result{{TestName: "WBC", Value: "7.2", Interpretation: InterpretationNormal}}
	err := svc.Create(context.Background(), lr)
	if fes, ok := validate.AsErrors(err); !ok || !hasField(fes, "results[0].unit") {
		t.Errorf("expected unit field error, got %v", err)
	}

	lr = validReport()
	lr.Results = []Result{{TestName: "WBC", Value: "7.2", Unit: "K/uL"}}
	err = svc.Create(context.Background(), lr)
	if fes, ok := validate.AsErrors(err); !ok || !hasField(fes, "results[0].interpretation") {
		t.Errorf("expected interpretation field error, got %v", err)
	}

	lr = validReport()
	lr.Results = []Result{{TestName: "WBC", Value: "7.2", Unit: "K/uL", Interpretation: InterpretationNormal}}
	if err := svc.Create(context.Background(), lr); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUpdateReport_Lifecycle(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	lr := validReport()
	if err := svc.Create(context.Background(), lr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Now()
	lr.Status = StatusCompleted
	lr.ReportDate = &now
	lr.Results = []Result{{TestName: "Hgb", Value: "13.9", Unit: "g/dL", Interpretation: InterpretationNormal}}
	if err := svc.Update(context.Background(), lr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.reports[lr.ID]
	if stored.Status != StatusCompleted || len(stored.Results) != 1 {
		t.Error("expected status and results to be saved")
	}
}

func TestUpdateReport_Unknown(t *testing.T) {
	svc := NewService(newMockRepo())
	lr := validReport()
	lr.ID = uuid.New()
	lr.Status = StatusOrdered
	if err := svc.Update(context.Background(), lr); err == nil {
		t.Error("expected error for unknown report id")
	}
}

func TestListByPatient(t *testing.T) {
	svc := NewService(newMockRepo())
	patientID := uuid.New()

	lr := validReport()
	lr.PatientID = patientID
	if err := svc.Create(context.Background(), lr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := validReport()
	if err := svc.Create(context.Background(), other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, total, err := svc.ListByPatient(context.Background(), patientID, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 report for patient, got %d", total)
	}
}
