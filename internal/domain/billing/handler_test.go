package billing

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

func TestHandlerCreate_IgnoresClientTotals(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	body := fmt.Sprintf(`{"patient_id":%q,"visit_id":%q,"total":1,"items":[{"description":"Office visit","code":"99213","quantity":2,"unit_price":100,"total":1}]}`,
		uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var inv Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &inv); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if inv.Total != 200 || inv.Items[0].Total != 200 {
		t.Errorf("expected recomputed totals, got invoice %v line %v", inv.Total, inv.Items[0].Total)
	}
}

func TestHandlerCreate_BadQuantity(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()

	body := fmt.Sprintf(`{"patient_id":%q,"visit_id":%q,"items":[{"description":"Office visit","quantity":0,"unit_price":100}]}`,
		uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(repo.invoices) != 0 {
		t.Error("no invoice should be persisted on validation failure")
	}
}

func TestHandlerUpdate_BlockedTransition(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	inv := validInvoice()
	if err := h.svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"status":"Paid"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/invoices/:id")
	c.SetParamNames("id")
	c.SetParamValues(inv.ID.String())

	err := h.Update(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTP error, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandlerList_FilterByStatus(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	inv := validInvoice()
	if err := h.svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inv.Status = StatusSent
	if err := h.svc.Update(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	draft := validInvoice()
	if err := h.svc.Create(context.Background(), draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices?status=Sent", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected 1 sent invoice, got %d", resp.Total)
	}
}
