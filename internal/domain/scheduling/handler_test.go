package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockRepo) {
	repo := newMockRepo()
	return NewHandler(NewService(repo)), repo
}

func TestHandlerCreate(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	body := fmt.Sprintf(`{"patient_id":%q,"provider_id":%q,"date":"2026-09-14T00:00:00Z","time":"10:30","duration_minutes":30,"type":"Follow-up"}`,
		uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var a Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("expected default Scheduled status, got %s", a.Status)
	}
}

func TestHandlerCreate_ShortDuration(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()

	body := fmt.Sprintf(`{"patient_id":%q,"provider_id":%q,"date":"2026-09-14T00:00:00Z","time":"10:30","duration_minutes":5,"type":"Follow-up"}`,
		uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "duration_minutes") {
		t.Errorf("expected duration_minutes field error, got %s", rec.Body.String())
	}
	if len(repo.appointments) != 0 {
		t.Error("no appointment should be persisted on validation failure")
	}
}

func TestHandlerList_FilterByPatient(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	patientID := uuid.New()
	a := validAppointment()
	a.PatientID = patientID
	if err := h.svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments?patient_id="+patientID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), patientID.String()) {
		t.Error("expected the patient's appointment in the list")
	}
}

func TestHandlerUpdate_BlockedTransition(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	a := validAppointment()
	if err := h.svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"status":"Completed"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/appointments/:id")
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	err := h.Update(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTP error, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandlerDelete(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()

	a := validAppointment()
	if err := h.svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/appointments/:id")
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(repo.appointments) != 0 {
		t.Error("expected appointment to be removed")
	}
}
