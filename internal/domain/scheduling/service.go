package scheduling

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/medtrack/emr/internal/platform/validate"
)

// statusTransitions is the set of allowed forward moves. Completed,
// Cancelled and No-show are terminal.
var statusTransitions = map[string][]string{
	StatusScheduled:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
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

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Service struct {
	appointments Repository
}

func NewService(appointments Repository) *Service {
	return &Service{appointments: appointments}
}

func (s *Service) validate(a *Appointment) error {
	v := validate.New().
		Required("type", a.Type).
		OneOf("type", a.Type, AppointmentTypes...).
		OneOf("status", a.Status, AppointmentStatuses...).
		Min("duration_minutes", float64(a.DurationMinutes), MinDurationMinutes)
	if a.PatientID == uuid.Nil {
		v = v.Required("patient_id", "")
	}
	if a.ProviderID == uuid.Nil {
		v = v.Required("provider_id", "")
	}
	if a.Date.IsZero() {
		v = v.Required("date", "")
	}
	if a.Time == "" {
		v = v.Required("time", "")
	} else {
		v = v.Pattern("time", a.Time, timeOfDay, "must be a 24-hour HH:MM value")
	}
	return v.Err()
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if err := s.validate(a); err != nil {
		return err
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// Update checks the status move against the transition graph before
// persisting. Same-status saves are always allowed.
func (s *Service) Update(ctx context.Context, a *Appointment) error {
	current, err := s.appointments.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if err := s.validate(a); err != nil {
		return err
	}
	if !canTransition(current.Status, a.Status) {
		return fmt.Errorf("cannot move appointment from %s to %s", current.Status, a.Status)
	}
	return s.appointments.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.appointments.GetByID(ctx, id); err != nil {
		return err
	}
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByProvider(ctx, providerID, limit, offset)
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.Search(ctx, params, limit, offset)
}
