package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const patientCols = `id, first_name, last_name, date_of_birth, gender, email, phone,
	address_street, address_city, address_state, address_zip,
	insurance_provider, insurance_number,
	allergies, medications, chronic_conditions, family_history, surgical_history,
	active, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender, &p.Email, &p.Phone,
		&p.Address.Street, &p.Address.City, &p.Address.State, &p.Address.Zip,
		&p.InsuranceProvider, &p.InsuranceNumber,
		&p.Allergies, &p.Medications, &p.ChronicConditions, &p.FamilyHistory, &p.SurgicalHistory,
		&p.Active, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (id, first_name, last_name, date_of_birth, gender, email, phone,
			address_street, address_city, address_state, address_zip,
			insurance_provider, insurance_number,
			allergies, medications, chronic_conditions, family_history, surgical_history, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.Email, p.Phone,
		p.Address.Street, p.Address.City, p.Address.State, p.Address.Zip,
		p.InsuranceProvider, p.InsuranceNumber,
		p.Allergies, p.Medications, p.ChronicConditions, p.FamilyHistory, p.SurgicalHistory, p.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patient SET first_name=$2, last_name=$3, date_of_birth=$4, gender=$5, email=$6, phone=$7,
			address_street=$8, address_city=$9, address_state=$10, address_zip=$11,
			insurance_provider=$12, insurance_number=$13,
			allergies=$14, medications=$15, chronic_conditions=$16, family_history=$17,
			surgical_history=$18, active=$19, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.Email, p.Phone,
		p.Address.Street, p.Address.City, p.Address.State, p.Address.Zip,
		p.InsuranceProvider, p.InsuranceNumber,
		p.Allergies, p.Medications, p.ChronicConditions, p.FamilyHistory,
		p.SurgicalHistory, p.Active)
	return err
}

func (r *repoPG) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE patient SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	query := `SELECT ` + patientCols + ` FROM patient WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM patient WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["name"]; ok {
		query += fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d)`, idx, idx)
		countQuery += fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d)`, idx, idx)
		args = append(args, "%"+p+"%")
		idx++
	}
	if p, ok := params["active"]; ok {
		query += fmt.Sprintf(` AND active = $%d`, idx)
		countQuery += fmt.Sprintf(` AND active = $%d`, idx)
		args = append(args, p)
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY last_name ASC, first_name ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
