package model

import "time"

// Profile holds the per-user credit balance backing every paid
// operation. Rows are provisioned once at registration and are
// mutated only by conditional debit/refund statements; handlers
// must never write a client-computed balance back.
//
// Fields:
//  UserID    – primary key, references users.id.
//  Email     – denormalized copy of the account email.
//  Credits   – remaining balance; the schema enforces credits >= 0.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last balance change.
type Profile struct {
	UserID    uint64    // profiles.user_id
	Email     string    // profiles.email
	Credits   int64     // profiles.credits
	CreatedAt time.Time // profiles.created_at
	UpdatedAt time.Time // profiles.updated_at
}
