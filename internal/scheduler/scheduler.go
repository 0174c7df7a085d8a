package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yukikurage/daybook-api/internal/services"
)

// Sweeper runs one reminder pass.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (services.SweepReport, error)
}

// Scheduler runs the reminder sweep on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
}

// New registers the sweep on expr, a standard five-field cron expression
// evaluated in UTC.
func New(expr string, sweeper Sweeper) (*Scheduler, error) {
	logger := cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s := &Scheduler{
		cron:    c,
		sweeper: sweeper,
		timeout: 5 * time.Minute,
	}

	if _, err := c.AddFunc(expr, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", expr, err)
	}
	return s, nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		log.Printf("Reminder sweep scheduled, next run at %s", e.Next.Format(time.RFC3339))
	}
}

// Stop halts the schedule and waits for a running sweep to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Println("Reminder sweep still running at shutdown")
	}
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	report, err := s.sweeper.Sweep(ctx, start.UTC())
	if err != nil {
		log.Printf("Reminder sweep failed: %v", err)
		return
	}
	log.Printf("Reminder sweep done in %s: scanned=%d notified=%d delivered=%d failed=%d",
		time.Since(start).Round(time.Millisecond), report.Scanned, report.Notified, report.Delivered, report.Failed)
}
