package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/videolens/video-insight/internal/model"
)

// RequestRepo persists the generic video_requests rows used by the
// relay endpoints: one row per forwarded processing request, updated
// in place when the workflow engine posts its callback.
type RequestRepo struct{ DB *sql.DB }

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{DB: db} }

// Create inserts a request row with the given id and status.
func (r *RequestRepo) Create(ctx context.Context, id, videoURL, status string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO video_requests (id, video_url, status) VALUES (?,?,?)",
		id, videoURL, status)
	return err
}

// GetByID fetches a request row.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (model.VideoRequest, error) {
	var (
		req     model.VideoRequest
		results sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, video_url, status, results, created_at, updated_at FROM video_requests WHERE id=? LIMIT 1",
		id).Scan(&req.ID, &req.VideoURL, &req.Status, &results, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.VideoRequest{}, ErrRequestNotFound
	}
	if err != nil {
		return model.VideoRequest{}, err
	}
	if results.Valid {
		req.Results = json.RawMessage(results.String)
	}
	return req, nil
}

// FailStale marks "processing" rows older than the cutoff as failed.
// The workflow engine never reports back for these, so a sweep keeps
// them from looking in-flight forever.
func (r *RequestRepo) FailStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE video_requests SET status='failed', updated_at=NOW() WHERE status='processing' AND created_at < ?",
		cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateResult overwrites status and results for a request and
// returns the updated row. Unknown ids yield ErrRequestNotFound.
func (r *RequestRepo) UpdateResult(ctx context.Context, id, status string, results json.RawMessage) (model.VideoRequest, error) {
	var blob any
	if len(results) > 0 {
		blob = string(results)
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE video_requests SET status=?, results=?, updated_at=NOW() WHERE id=?",
		status, blob, id)
	if err != nil {
		return model.VideoRequest{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.VideoRequest{}, err
	}
	if n == 0 {
		// RowsAffected is zero both for unknown ids and no-op updates;
		// settle it with a read.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.VideoRequest{}, err
		}
	}
	return r.GetByID(ctx, id)
}
