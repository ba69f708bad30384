package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/videolens/video-insight/internal/model"
)

// VideoRepo caches scraped video metadata keyed by the external
// analysis id. Rows are shared between users: whoever submits the URL
// first creates the row, later submissions refresh it.
type VideoRepo struct{ DB *sql.DB }

func NewVideoRepo(db *sql.DB) *VideoRepo { return &VideoRepo{DB: db} }

// Upsert inserts the video row or refreshes its metadata when the
// analysis id is already cached.
func (r *VideoRepo) Upsert(ctx context.Context, v model.VideoAnalysis) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO videos (analysis_id, url, title, view_count, like_count, comment_count, channel_name, posted_at, last_comment_at)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			url = VALUES(url),
			title = VALUES(title),
			view_count = VALUES(view_count),
			like_count = VALUES(like_count),
			comment_count = VALUES(comment_count),
			channel_name = VALUES(channel_name),
			posted_at = VALUES(posted_at),
			last_comment_at = VALUES(last_comment_at)`,
		v.AnalysisID, v.URL, v.Title, v.ViewCount, v.LikeCount, v.CommentCount,
		v.ChannelName, v.PostedAt, v.LastCommentAt)
	return err
}

// GetByAnalysisID fetches the cached row for an analysis id.
func (r *VideoRepo) GetByAnalysisID(ctx context.Context, analysisID string) (model.VideoAnalysis, error) {
	var v model.VideoAnalysis
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, analysis_id, url, title, view_count, like_count, comment_count, channel_name, posted_at, last_comment_at, created_at
		FROM videos WHERE analysis_id=? LIMIT 1`,
		analysisID).Scan(&v.ID, &v.AnalysisID, &v.URL, &v.Title, &v.ViewCount, &v.LikeCount,
		&v.CommentCount, &v.ChannelName, &v.PostedAt, &v.LastCommentAt, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.VideoAnalysis{}, ErrAnalysisNotFound
	}
	return v, err
}
