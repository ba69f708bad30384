package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/videolens/video-insight/internal/model"
)

// CommentRepo stores scraped comments per analysis id. The initial
// scrape bulk-inserts unlabeled comments; a later sentiment pass
// re-upserts the sampled subset with labels filled in.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// ReplaceForAnalysis rewrites the comment set for an analysis inside
// one transaction. Used when a fresh scrape supersedes the cached
// comments; labels coming with the payload are kept.
func (r *CommentRepo) ReplaceForAnalysis(ctx context.Context, analysisID string, rows []model.Comment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE analysis_id=?", analysisID); err != nil {
		return fmt.Errorf("clear comments: %w", err)
	}
	for _, c := range rows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO comments (analysis_id, author, body, like_count, reply_count, sentiment_label)
			VALUES (?,?,?,?,?,?)`,
			analysisID, c.Author, c.Body, c.LikeCount, c.ReplyCount, c.SentimentLabel); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
	}
	return tx.Commit()
}

// ListByAnalysisID returns all comments for an analysis ordered by id
// so repeated loads see a stable order.
func (r *CommentRepo) ListByAnalysisID(ctx context.Context, analysisID string) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, analysis_id, author, body, like_count, reply_count, sentiment_label
		FROM comments WHERE analysis_id=? ORDER BY id`,
		analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		var label sql.NullString
		if err := rows.Scan(&c.ID, &c.AnalysisID, &c.Author, &c.Body, &c.LikeCount, &c.ReplyCount, &label); err != nil {
			return nil, err
		}
		if label.Valid {
			c.SentimentLabel = &label.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountByAnalysisID returns how many comments are cached for an
// analysis; the sentiment sample size is validated against it.
func (r *CommentRepo) CountByAnalysisID(ctx context.Context, analysisID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE analysis_id=?", analysisID).Scan(&n)
	return n, err
}
