// Package sandbox generates synthetic EMR data for demo and development
// environments. Output is reproducible for a given seed and clinically
// plausible enough for UI demos and manual API exploration.
package sandbox

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/medtrack/emr/internal/domain/billing"
	"github.com/medtrack/emr/internal/domain/diagnostics"
	"github.com/medtrack/emr/internal/domain/encounter"
	"github.com/medtrack/emr/internal/domain/identity"
	"github.com/medtrack/emr/internal/domain/patient"
	"github.com/medtrack/emr/internal/domain/scheduling"
	"github.com/medtrack/emr/internal/platform/auth"
)

// SeedConfig controls the volume of generated synthetic data.
type SeedConfig struct {
	PatientCount           int
	DoctorCount            int
	AppointmentsPerPatient int
	VisitsPerPatient       int
	LabReportsPerPatient   int
	InvoicesPerPatient     int
	Seed                   int64
}

// DefaultSeedConfig returns volumes suitable for a demo environment.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		PatientCount:           25,
		DoctorCount:            4,
		AppointmentsPerPatient: 3,
		VisitsPerPatient:       2,
		LabReportsPerPatient:   1,
		InvoicesPerPatient:     1,
	}
}

// SeedResult reports how many records of each kind were created.
type SeedResult struct {
	Users        int `json:"users"`
	Patients     int `json:"patients"`
	Appointments int `json:"appointments"`
	Visits       int `json:"visits"`
	LabReports   int `json:"lab_reports"`
	Invoices     int `json:"invoices"`
}

// Repos bundles the repositories the seeder writes through.
type Repos struct {
	Users        identity.UserRepository
	Patients     patient.Repository
	Appointments scheduling.Repository
	Visits       encounter.Repository
	LabReports   diagnostics.Repository
	Invoices     billing.Repository
}

var (
	firstNames = []string{
		"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
		"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
		"Joseph", "Jessica", "Thomas", "Sarah", "Carlos", "Aisha", "Wei", "Priya",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Chen", "Patel", "Nguyen", "Kim",
	}
	cities    = []string{"Springfield", "Franklin", "Clinton", "Greenville", "Bristol", "Fairview"}
	states    = []string{"CA", "TX", "NY", "FL", "IL", "OH"}
	streets   = []string{"Main St", "Oak Ave", "Maple Dr", "Cedar Ln", "Elm St", "Park Blvd"}
	allergies = []string{"Penicillin", "Peanuts", "Latex", "Sulfa drugs", "Shellfish", "Aspirin"}
	chronic   = []string{"Hypertension", "Type 2 Diabetes", "Asthma", "Hyperlipidemia", "Osteoarthritis"}
	insurers  = []string{"Blue Shield", "Aetna", "United Health", "Cigna", "Kaiser"}
	labNames  = []string{"Quest Diagnostics", "LabCorp", "City Medical Lab", "Regional Pathology"}

	medsPool = []patient.Medication{
		{Name: "Lisinopril", Dosage: "10mg", Frequency: "once daily"},
		{Name: "Metformin", Dosage: "500mg", Frequency: "twice daily"},
		{Name: "Atorvastatin", Dosage: "20mg", Frequency: "once daily"},
		{Name: "Albuterol", Dosage: "90mcg", Frequency: "as needed"},
		{Name: "Levothyroxine", Dosage: "50mcg", Frequency: "once daily"},
	}

	labPanels = map[string][]diagnostics.Result{
		"CBC": {
			{TestName: "WBC", Value: "7.2", Unit: "10^3/uL", ReferenceRange: "4.0-11.0", Interpretation: diagnostics.InterpretationNormal},
			{TestName: "Hemoglobin", Value: "13.8", Unit: "g/dL", ReferenceRange: "12.0-16.0", Interpretation: diagnostics.InterpretationNormal},
			{TestName: "Platelets", Value: "250", Unit: "10^3/uL", ReferenceRange: "150-400", Interpretation: diagnostics.InterpretationNormal},
		},
		"Metabolic": {
			{TestName: "Glucose", Value: "118", Unit: "mg/dL", ReferenceRange: "70-100", Interpretation: diagnostics.InterpretationAbnormal},
			{TestName: "Creatinine", Value: "0.9", Unit: "mg/dL", ReferenceRange: "0.6-1.2", Interpretation: diagnostics.InterpretationNormal},
			{TestName: "Potassium", Value: "4.1", Unit: "mmol/L", ReferenceRange: "3.5-5.0", Interpretation: diagnostics.InterpretationNormal},
		},
	}

	lineItemsPool = []billing.LineItem{
		{Description: "Office visit, established patient", Code: "99213", Quantity: 1, UnitPrice: 125},
		{Description: "Office visit, new patient", Code: "99203", Quantity: 1, UnitPrice: 175},
		{Description: "Venipuncture", Code: "36415", Quantity: 1, UnitPrice: 15},
		{Description: "ECG with interpretation", Code: "93000", Quantity: 1, UnitPrice: 85},
	}
)

// Seeder generates and persists synthetic records through the domain repos.
type Seeder struct {
	cfg   SeedConfig
	repos Repos
	rng   *rand.Rand
}

func NewSeeder(cfg SeedConfig, repos Repos) *Seeder {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{cfg: cfg, repos: repos, rng: rand.New(rand.NewSource(seed))}
}

func (s *Seeder) pick(pool []string) string {
	return pool[s.rng.Intn(len(pool))]
}

func (s *Seeder) randomDOB() time.Time {
	year := 1940 + s.rng.Intn(70)
	return time.Date(year, time.Month(1+s.rng.Intn(12)), 1+s.rng.Intn(28), 0, 0, 0, 0, time.UTC)
}

func (s *Seeder) randomPhone() string {
	return fmt.Sprintf("555-%03d-%04d", s.rng.Intn(1000), s.rng.Intn(10000))
}

// Run generates the configured volume of data. Doctors are created first so
// appointments and visits can reference a real provider.
func (s *Seeder) Run(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		return nil, err
	}

	doctors := make([]*identity.User, 0, s.cfg.DoctorCount)
	for i := 0; i < s.cfg.DoctorCount; i++ {
		u := &identity.User{
			Name:         fmt.Sprintf("Dr. %s %s", s.pick(firstNames), s.pick(lastNames)),
			Email:        fmt.Sprintf("doctor%d@demo.example", i+1),
			PasswordHash: hash,
			Role:         identity.RoleDoctor,
		}
		if err := s.repos.Users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("seed doctor: %w", err)
		}
		doctors = append(doctors, u)
		result.Users++
	}

	for i := 0; i < s.cfg.PatientCount; i++ {
		p, err := s.seedPatient(ctx, i)
		if err != nil {
			return nil, err
		}
		result.Patients++

		doctor := doctors[s.rng.Intn(len(doctors))]

		for j := 0; j < s.cfg.AppointmentsPerPatient; j++ {
			if err := s.seedAppointment(ctx, p, doctor); err != nil {
				return nil, err
			}
			result.Appointments++
		}

		var lastVisit *encounter.Visit
		for j := 0; j < s.cfg.VisitsPerPatient; j++ {
			v, err := s.seedVisit(ctx, p, doctor)
			if err != nil {
				return nil, err
			}
			lastVisit = v
			result.Visits++
		}

		for j := 0; j < s.cfg.LabReportsPerPatient; j++ {
			if err := s.seedLabReport(ctx, p, doctor); err != nil {
				return nil, err
			}
			result.LabReports++
		}

		if lastVisit != nil {
			for j := 0; j < s.cfg.InvoicesPerPatient; j++ {
				if err := s.seedInvoice(ctx, p, lastVisit); err != nil {
					return nil, err
				}
				result.Invoices++
			}
		}
	}

	return result, nil
}

func (s *Seeder) seedPatient(ctx context.Context, n int) (*patient.Patient, error) {
	first := s.pick(firstNames)
	last := s.pick(lastNames)
	email := fmt.Sprintf("%s.%s%d@demo.example", first, last, n)
	phone := s.randomPhone()
	insurer := s.pick(insurers)
	policy := fmt.Sprintf("POL-%06d", s.rng.Intn(1000000))

	p := &patient.Patient{
		FirstName:   first,
		LastName:    last,
		DateOfBirth: s.randomDOB(),
		Gender:      s.pick(patient.Genders),
		Email:       &email,
		Phone:       &phone,
		Address: patient.Address{
			Street: fmt.Sprintf("%d %s", 100+s.rng.Intn(900), s.pick(streets)),
			City:   s.pick(cities),
			State:  s.pick(states),
			Zip:    fmt.Sprintf("%05d", 10000+s.rng.Intn(90000)),
		},
		InsuranceProvider: &insurer,
		InsuranceNumber:   &policy,
		Active:            true,
	}
	if s.rng.Intn(2) == 0 {
		p.Allergies = []string{s.pick(allergies)}
	}
	if s.rng.Intn(2) == 0 {
		p.ChronicConditions = []string{s.pick(chronic)}
		p.Medications = []patient.Medication{medsPool[s.rng.Intn(len(medsPool))]}
	}
	if err := s.repos.Patients.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("seed patient: %w", err)
	}
	return p, nil
}

func (s *Seeder) seedAppointment(ctx context.Context, p *patient.Patient, doctor *identity.User) error {
	a := &scheduling.Appointment{
		PatientID:       p.ID,
		ProviderID:      doctor.ID,
		Date:            time.Now().AddDate(0, 0, s.rng.Intn(60)-30).Truncate(24 * time.Hour),
		Time:            fmt.Sprintf("%02d:%02d", 8+s.rng.Intn(9), 15*s.rng.Intn(4)),
		DurationMinutes: scheduling.MinDurationMinutes * (1 + s.rng.Intn(4)),
		Type:            s.pick(scheduling.AppointmentTypes),
		Status:          scheduling.StatusScheduled,
	}
	if err := s.repos.Appointments.Create(ctx, a); err != nil {
		return fmt.Errorf("seed appointment: %w", err)
	}
	return nil
}

func (s *Seeder) seedVisit(ctx context.Context, p *patient.Patient, doctor *identity.User) (*encounter.Visit, error) {
	v := &encounter.Visit{
		PatientID:     p.ID,
		ProviderID:    doctor.ID,
		Date:          time.Now().AddDate(0, 0, -s.rng.Intn(180)).Truncate(24 * time.Hour),
		Type:          s.pick(encounter.VisitTypes),
		Status:        encounter.StatusCompleted,
		BillingStatus: encounter.BillingUnbilled,
		SOAP: &encounter.SOAPNote{
			Subjective: "Patient reports feeling well overall.",
			Objective:  "Vitals within normal limits.",
			Assessment: "Stable, no acute findings.",
			Plan:       "Continue current management, follow up in 3 months.",
		},
	}
	if err := s.repos.Visits.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("seed visit: %w", err)
	}
	return v, nil
}

func (s *Seeder) seedLabReport(ctx context.Context, p *patient.Patient, doctor *identity.User) error {
	panel := "CBC"
	category := diagnostics.CategoryBlood
	if s.rng.Intn(2) == 0 {
		panel = "Metabolic"
	}
	collected := time.Now().AddDate(0, 0, -s.rng.Intn(90))
	reported := collected.AddDate(0, 0, 2)

	r := &diagnostics.LabReport{
		PatientID:          p.ID,
		OrderingProviderID: doctor.ID,
		LabName:            s.pick(labNames),
		Category:           category,
		Status:             diagnostics.StatusCompleted,
		CollectionDate:     &collected,
		ReportDate:         &reported,
		Results:            labPanels[panel],
	}
	if err := s.repos.LabReports.Create(ctx, r); err != nil {
		return fmt.Errorf("seed lab report: %w", err)
	}
	return nil
}

func (s *Seeder) seedInvoice(ctx context.Context, p *patient.Patient, v *encounter.Visit) error {
	item := lineItemsPool[s.rng.Intn(len(lineItemsPool))]
	item.Total = float64(item.Quantity) * item.UnitPrice

	inv := &billing.Invoice{
		PatientID: p.ID,
		VisitID:   v.ID,
		Items:     []billing.LineItem{item},
		Total:     item.Total,
		Status:    billing.StatusDraft,
	}
	if err := s.repos.Invoices.Create(ctx, inv); err != nil {
		return fmt.Errorf("seed invoice: %w", err)
	}
	return nil
}
