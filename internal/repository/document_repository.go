package repository

import (
	"context"
	"database/sql"

	"github.com/wicaksana/report-tracking/internal/model"
)

// DocumentRepo stores attachment metadata for reports. Rows are append-only;
// there is no update or delete path.
type DocumentRepo struct{ DB *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

// Create inserts a document metadata row and returns its ID.
func (r *DocumentRepo) Create(ctx context.Context, d *model.Document) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO documents (report_id, file_name, file_url, file_type) VALUES (?,?,?,?)",
		d.ReportID, d.FileName, d.FileURL, d.FileType)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	d.ID = uint64(id)
	return d.ID, nil
}

// ListByReport returns all documents attached to a report in upload order.
func (r *DocumentRepo) ListByReport(ctx context.Context, reportID uint64) ([]model.Document, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, report_id, file_name, file_url, file_type, uploaded_at FROM documents WHERE report_id=? ORDER BY uploaded_at ASC",
		reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.ReportID, &d.FileName, &d.FileURL, &d.FileType, &d.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
