// Package job implements the ticket store for sentiment passes. A
// ticket is created when a pass is dispatched and is polled by
// clients instead of waiting out a fixed delay; the workflow engine's
// result callback closes it. Tickets live in Redis with a TTL, so an
// engine that never calls back leaves an expired ticket rather than a
// dangling row.
package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ErrTicketNotFound is returned when a ticket id is unknown or its
// TTL has elapsed.
var ErrTicketNotFound = errors.New("job: ticket not found")

// Ticket tracks one dispatched sentiment pass.
type Ticket struct {
	ID         string    `json:"id"`
	AnalysisID string    `json:"analysis_id"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store persists tickets as Redis hashes under prefix:<id>.
type Store struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore builds a ticket store. TTL <= 0 defaults to 24 hours.
func NewStore(rdb *redis.Client, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "job"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *Store) key(id string) string { return s.prefix + ":" + id }

// Create inserts a queued ticket for the analysis and returns it.
func (s *Store) Create(ctx context.Context, analysisID string) (Ticket, error) {
	now := time.Now().UTC()
	t := Ticket{
		ID:         uuid.NewString(),
		AnalysisID: analysisID,
		Status:     StatusQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	fields := map[string]any{
		"analysis_id": t.AnalysisID,
		"status":      string(t.Status),
		"created_at":  t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  t.UpdatedAt.Format(time.RFC3339Nano),
	}
	if err := s.rdb.HSet(ctx, s.key(t.ID), fields).Err(); err != nil {
		return Ticket{}, fmt.Errorf("job: create ticket: %w", err)
	}
	if err := s.rdb.Expire(ctx, s.key(t.ID), s.ttl).Err(); err != nil {
		return Ticket{}, fmt.Errorf("job: set ticket ttl: %w", err)
	}
	return t, nil
}

// Get loads a ticket by id.
func (s *Store) Get(ctx context.Context, id string) (Ticket, error) {
	vals, err := s.rdb.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return Ticket{}, fmt.Errorf("job: load ticket: %w", err)
	}
	if len(vals) == 0 {
		return Ticket{}, ErrTicketNotFound
	}
	t := Ticket{
		ID:         id,
		AnalysisID: vals["analysis_id"],
		Status:     Status(vals["status"]),
	}
	if ts, err := time.Parse(time.RFC3339Nano, vals["created_at"]); err == nil {
		t.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, vals["updated_at"]); err == nil {
		t.UpdatedAt = ts
	}
	return t, nil
}

// SetStatus transitions a ticket. Unknown ids return ErrTicketNotFound
// so callbacks for expired tickets can be ignored by the caller.
func (s *Store) SetStatus(ctx context.Context, id string, st Status) error {
	n, err := s.rdb.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("job: check ticket: %w", err)
	}
	if n == 0 {
		return ErrTicketNotFound
	}
	fields := map[string]any{
		"status":     string(st),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.rdb.HSet(ctx, s.key(id), fields).Err(); err != nil {
		return fmt.Errorf("job: update ticket: %w", err)
	}
	return nil
}
