package repository

import (
	"context"
	"database/sql"

	"github.com/wicaksana/report-tracking/internal/model"
)

// TimelineRepo stores the append-only history of status-changing events per
// report. Rows are only ever inserted; ordering for display is by
// occurred_at (with id as a tiebreaker), never by insertion order, so events
// written out of timestamp order still read back correctly.
type TimelineRepo struct{ DB *sql.DB }

func NewTimelineRepo(db *sql.DB) *TimelineRepo { return &TimelineRepo{DB: db} }

const timelineColumns = "id, report_id, status, status_label, actor_id, actor_name, description, occurred_at"

// AppendTx inserts one timeline event within an existing transaction.
// Callers pair it with exactly one status update per transition.
func (r *TimelineRepo) AppendTx(ctx context.Context, tx *sql.Tx, ev *model.TimelineEvent) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO timeline_events (report_id, status, status_label, actor_id, actor_name, description, occurred_at)
		 VALUES (?,?,?,?,?,?,?)`,
		ev.ReportID, ev.Status, ev.StatusLabel, ev.ActorID, ev.ActorName, ev.Description, ev.OccurredAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// ListByReport returns all events for a report in ascending timestamp order.
func (r *TimelineRepo) ListByReport(ctx context.Context, reportID uint64) ([]model.TimelineEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+timelineColumns+" FROM timeline_events WHERE report_id=? ORDER BY occurred_at ASC, id ASC",
		reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TimelineEvent
	for rows.Next() {
		var ev model.TimelineEvent
		if err := rows.Scan(&ev.ID, &ev.ReportID, &ev.Status, &ev.StatusLabel,
			&ev.ActorID, &ev.ActorName, &ev.Description, &ev.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
