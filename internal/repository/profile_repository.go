package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/videolens/video-insight/internal/model"
)

// ProfileRepo reads and mutates the per-user credit balance. All
// balance mutations are single conditional statements executed by the
// store itself; a read-modify-write from application code is never
// performed, which is what keeps concurrent spends from losing
// updates.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// Create provisions a profile with the starting balance. Called once
// at registration.
func (r *ProfileRepo) Create(ctx context.Context, userID uint64, email string, credits int64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO profiles (user_id, email, credits) VALUES (?,?,?)",
		userID, email, credits)
	return err
}

// GetByUserID fetches a profile by user id.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.Profile, error) {
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, email, credits, created_at, updated_at FROM profiles WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.Email, &p.Credits, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrProfileNotFound
	}
	return p, err
}

// DebitCredits atomically decrements the balance by amount. The WHERE
// clause guards the invariant credits >= 0: when the balance cannot
// cover the amount no row is touched and ErrInsufficientCredits is
// returned.
func (r *ProfileRepo) DebitCredits(ctx context.Context, userID uint64, amount int64) error {
	if amount <= 0 {
		return nil
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET credits = credits - ?, updated_at = NOW() WHERE user_id = ? AND credits >= ?",
		amount, userID, amount)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the profile is missing or the balance is short;
		// distinguish so handlers can answer 404 vs 402.
		if _, err := r.GetByUserID(ctx, userID); err != nil {
			return err
		}
		return ErrInsufficientCredits
	}
	return nil
}

// RefundCredits adds amount back to the balance. Used only as the
// compensation when a sentiment dispatch fails after its debit.
func (r *ProfileRepo) RefundCredits(ctx context.Context, userID uint64, amount int64) error {
	if amount <= 0 {
		return nil
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET credits = credits + ?, updated_at = NOW() WHERE user_id = ?",
		amount, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}
