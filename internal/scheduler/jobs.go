package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/videolens/video-insight/internal/repository"
)

// tokenPurgeJob deletes refresh tokens whose expiry passed more than a
// day ago. The grace window lets a clock-skewed client still be told
// its token expired rather than "not found".
type tokenPurgeJob struct {
	tokens *repository.TokenRepo
}

func (j *tokenPurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := j.tokens.PurgeExpired(ctx, 24*time.Hour); err != nil {
		log.Printf("scheduler: token purge failed: %v", err)
	}
}

// staleRequestJob fails relay rows stuck in "processing" for over an
// hour; the engine's callback window is minutes, not hours.
type staleRequestJob struct {
	requests *repository.RequestRepo
}

func (j *staleRequestJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := j.requests.FailStale(ctx, time.Hour)
	if err != nil {
		log.Printf("scheduler: stale request sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("scheduler: marked %d stale requests as failed", n)
	}
}
