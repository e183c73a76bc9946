package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/wicaksana/report-tracking/internal/model"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// ReportRepo provides CRUD operations for reports. Status changes go through
// UpdateStatusTx, which performs a compare-and-swap on the current status so
// that two concurrent transitions cannot both succeed; the caller pairs it
// with a timeline append in the same transaction.
type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

const reportColumns = `id, letter_number, subject, status, service_type,
	disposition_nature, disposition_degree, disposition_agenda_no,
	disposition_originating_group, disposition_sestama_agenda,
	disposition_letter_no, disposition_from, disposition_agenda_date,
	disposition_letter_date, created_by, created_at, updated_at`

// CreateTx inserts a new report within an existing transaction and populates
// the generated ID and timestamps on the provided record. The status must be
// the workflow initial status; callers append the creation timeline event in
// the same transaction.
func (r *ReportRepo) CreateTx(ctx context.Context, tx *sql.Tx, rep *model.Report) error {
	const q = `INSERT INTO reports (letter_number, subject, status, service_type,
		disposition_nature, disposition_degree, disposition_agenda_no,
		disposition_originating_group, disposition_sestama_agenda,
		disposition_letter_no, disposition_from, disposition_agenda_date,
		disposition_letter_date, created_by)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, q,
		rep.LetterNumber, rep.Subject, string(rep.Status), rep.ServiceType,
		strings.Join(rep.Disposition.Nature, ","), strings.Join(rep.Disposition.Degree, ","),
		rep.Disposition.AgendaNo, rep.Disposition.OriginatingGroup,
		rep.Disposition.SestamaAgenda, rep.Disposition.LetterNo,
		rep.Disposition.From, rep.Disposition.AgendaDate, rep.Disposition.LetterDate,
		rep.CreatedBy)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrLetterNumberExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rep.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	return scanReport(tx.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE id = ?", rep.ID), rep)
}

// GetByID fetches a report by id.
func (r *ReportRepo) GetByID(ctx context.Context, id uint64) (model.Report, error) {
	var rep model.Report
	err := scanReport(r.DB.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE id=? LIMIT 1", id), &rep)
	if err == sql.ErrNoRows {
		return rep, ErrReportNotFound
	}
	return rep, err
}

// GetByLetterNumber fetches a report by its public lookup key. The match is
// exact and case-sensitive regardless of the column collation, hence the
// BINARY comparison.
func (r *ReportRepo) GetByLetterNumber(ctx context.Context, letterNumber string) (model.Report, error) {
	var rep model.Report
	err := scanReport(r.DB.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE BINARY letter_number=? LIMIT 1",
		letterNumber), &rep)
	if err == sql.ErrNoRows {
		return rep, ErrReportNotFound
	}
	return rep, err
}

// ListByCreator returns reports registered by a TU user, newest first.
func (r *ReportRepo) ListByCreator(ctx context.Context, tuID uint64) ([]model.Report, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE created_by=? ORDER BY created_at DESC", tuID)
	if err != nil {
		return nil, err
	}
	return collectReports(rows)
}

// ListByStatus returns reports currently in any of the given statuses,
// oldest first so queues are worked in arrival order.
func (r *ReportRepo) ListByStatus(ctx context.Context, statuses ...workflow.Status) ([]model.Report, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
	args := make([]interface{}, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, string(s))
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE status IN ("+placeholders+") ORDER BY created_at ASC",
		args...)
	if err != nil {
		return nil, err
	}
	return collectReports(rows)
}

// UpdateStatusTx moves a report from one status to another within an
// existing transaction. The WHERE clause re-checks the expected current
// status; zero affected rows means another writer got there first and the
// caller must roll back with ErrConflict.
func (r *ReportRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, from, to workflow.Status) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE reports SET status=? WHERE id=? AND status=?",
		string(to), id, string(from))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReport reads one row in reportColumns order. Nature and degree tags
// are stored comma-joined and split back into slices here.
func scanReport(row rowScanner, rep *model.Report) error {
	var nature, degree string
	err := row.Scan(
		&rep.ID, &rep.LetterNumber, &rep.Subject, &rep.Status, &rep.ServiceType,
		&nature, &degree,
		&rep.Disposition.AgendaNo, &rep.Disposition.OriginatingGroup,
		&rep.Disposition.SestamaAgenda, &rep.Disposition.LetterNo,
		&rep.Disposition.From, &rep.Disposition.AgendaDate,
		&rep.Disposition.LetterDate, &rep.CreatedBy, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rep.Disposition.Nature = splitTags(nature)
	rep.Disposition.Degree = splitTags(degree)
	return nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func collectReports(rows *sql.Rows) ([]model.Report, error) {
	defer rows.Close()
	var out []model.Report
	for rows.Next() {
		var rep model.Report
		if err := scanReport(rows, &rep); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
