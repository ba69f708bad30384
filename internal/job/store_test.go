package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, "test:job", time.Hour), mr
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "abc")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != StatusQueued || created.AnalysisID != "abc" || created.ID == "" {
		t.Fatalf("unexpected ticket: %+v", created)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusQueued || got.AnalysisID != "abc" {
		t.Fatalf("unexpected loaded ticket: %+v", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tk, err := s.Create(ctx, "abc")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, st := range []Status{StatusRunning, StatusCompleted} {
		if err := s.SetStatus(ctx, tk.ID, st); err != nil {
			t.Fatalf("set status %s: %v", st, err)
		}
		got, err := s.Get(ctx, tk.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != st {
			t.Fatalf("status = %s, want %s", got.Status, st)
		}
	}
}

func TestUnknownTicket(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("Get: expected ErrTicketNotFound, got %v", err)
	}
	if err := s.SetStatus(ctx, "nope", StatusCompleted); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("SetStatus: expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketExpires(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	tk, err := s.Create(ctx, "abc")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(2 * time.Hour)
	if _, err := s.Get(ctx, tk.ID); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected expired ticket to be gone, got %v", err)
	}
}
