package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/medtrack/emr/internal/platform/validate"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) validate(p *Patient) error {
	v := validate.New().
		Required("first_name", p.FirstName).
		Required("last_name", p.LastName).
		OneOf("gender", p.Gender, Genders...)
	if p.DateOfBirth.IsZero() {
		v = v.Required("date_of_birth", "")
	}
	if p.Email != nil && *p.Email != "" {
		v = v.Email("email", *p.Email)
	}
	for _, m := range p.Medications {
		if m.Name == "" {
			v = v.Required("medications.name", "")
			break
		}
	}
	return v.Err()
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	p.Active = true
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.patients.Update(ctx, p)
}

// Deactivate marks the record inactive. Nothing is ever hard-deleted.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.patients.GetByID(ctx, id); err != nil {
		return err
	}
	return s.patients.Deactivate(ctx, id)
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	return s.patients.Search(ctx, params, limit, offset)
}
