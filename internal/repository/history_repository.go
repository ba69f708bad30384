package repository

import (
	"context"
	"database/sql"

	"github.com/videolens/video-insight/internal/model"
)

// HistoryRepo appends and lists the per-user activity feed. Rows are
// append-only and deliberately not deduplicated: re-submitting a
// video is a new activity.
type HistoryRepo struct{ DB *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{DB: db} }

// Append records that the user requested the analysis.
func (r *HistoryRepo) Append(ctx context.Context, userID uint64, analysisID string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_history (user_id, analysis_id) VALUES (?,?)",
		userID, analysisID)
	return err
}

// ListRecentByUser returns the newest entries joined with the cached
// video title and URL.
func (r *HistoryRepo) ListRecentByUser(ctx context.Context, userID uint64, limit int) ([]model.HistoryView, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT h.analysis_id, COALESCE(v.title, ''), COALESCE(v.url, ''), h.created_at
		FROM user_history h
		LEFT JOIN videos v ON v.analysis_id = h.analysis_id
		WHERE h.user_id = ?
		ORDER BY h.created_at DESC, h.id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HistoryView
	for rows.Next() {
		var h model.HistoryView
		if err := rows.Scan(&h.AnalysisID, &h.Title, &h.URL, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
