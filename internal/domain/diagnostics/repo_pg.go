package diagnostics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const reportCols = `id, patient_id, ordering_provider_id, lab_name, category, status,
	collection_date, report_date, results, notes, document_url, created_at, updated_at`

func (r *repoPG) scanReport(row pgx.Row) (*LabReport, error) {
	var lr LabReport
	err := row.Scan(&lr.ID, &lr.PatientID, &lr.OrderingProviderID, &lr.LabName, &lr.Category, &lr.Status,
		&lr.CollectionDate, &lr.ReportDate, &lr.Results, &lr.Notes, &lr.DocumentURL,
		&lr.CreatedAt, &lr.UpdatedAt)
	return &lr, err
}

func (r *repoPG) Create(ctx context.Context, lr *LabReport) error {
	lr.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_report (id, patient_id, ordering_provider_id, lab_name, category, status,
			collection_date, report_date, results, notes, document_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		lr.ID, lr.PatientID, lr.OrderingProviderID, lr.LabName, lr.Category, lr.Status,
		lr.CollectionDate, lr.ReportDate, lr.Results, lr.Notes, lr.DocumentURL)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabReport, error) {
	return r.scanReport(r.pool.QueryRow(ctx, `SELECT `+reportCols+` FROM lab_report WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, lr *LabReport) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE lab_report SET patient_id=$2, ordering_provider_id=$3, lab_name=$4, category=$5,
			status=$6, collection_date=$7, report_date=$8, results=$9, notes=$10,
			document_url=$11, updated_at=NOW()
		WHERE id = $1`,
		lr.ID, lr.PatientID, lr.OrderingProviderID, lr.LabName, lr.Category,
		lr.Status, lr.CollectionDate, lr.ReportDate, lr.Results, lr.Notes, lr.DocumentURL)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lab_report WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*LabReport, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_report WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+reportCols+` FROM lab_report WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*LabReport
	for rows.Next() {
		lr, err := r.scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, lr)
	}
	return items, total, nil
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabReport, int, error) {
	query := `SELECT ` + reportCols + ` FROM lab_report WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM lab_report WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["patient_id"]; ok {
		query += fmt.Sprintf(` AND patient_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["provider_id"]; ok {
		query += fmt.Sprintf(` AND ordering_provider_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND ordering_provider_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["status"]; ok {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["category"]; ok {
		query += fmt.Sprintf(` AND category = $%d`, idx)
		countQuery += fmt.Sprintf(` AND category = $%d`, idx)
		args = append(args, p)
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*LabReport
	for rows.Next() {
		lr, err := r.scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, lr)
	}
	return items, total, nil
}
