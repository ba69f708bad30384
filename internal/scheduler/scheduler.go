// Package scheduler runs the periodic maintenance jobs: purging expired
// refresh tokens and failing relay requests the workflow engine never
// answered.
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/videolens/video-insight/internal/repository"
)

type Scheduler struct {
	cron *cron.Cron
}

// New registers the maintenance jobs. Empty specs skip the job, so a
// deployment can disable either sweep through its cron expression.
func New(tokens *repository.TokenRepo, requests *repository.RequestRepo, purgeSpec, sweepSpec string) *Scheduler {
	c := cron.New()

	if purgeSpec != "" {
		if _, err := c.AddJob(purgeSpec, &tokenPurgeJob{tokens: tokens}); err != nil {
			log.Fatalf("scheduler: register token purge (spec %q): %v", purgeSpec, err)
		}
	}
	if sweepSpec != "" {
		if _, err := c.AddJob(sweepSpec, &staleRequestJob{requests: requests}); err != nil {
			log.Fatalf("scheduler: register stale request sweep (spec %q): %v", sweepSpec, err)
		}
	}

	return &Scheduler{cron: c}
}

// Start launches the schedule without blocking.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish, up to a bounded grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		log.Println("scheduler: stop timed out with jobs still running")
	}
}
