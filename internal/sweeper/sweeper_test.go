package sweeper

import (
	"testing"
	"time"

	"studio-bridge/internal/jobqueue"
)

func TestDisabledWithZeroInterval(t *testing.T) {
	q := jobqueue.New()
	s := New(q, time.Minute)
	if err := s.Start(0); err != nil {
		t.Fatalf("Start(0) should be a no-op, got error: %v", err)
	}
}

func TestSweepReapsOrphanedResults(t *testing.T) {
	q := jobqueue.New()
	q.StoreResult("job_orphan", jobqueue.Result{JobID: "job_orphan", OK: true})
	time.Sleep(30 * time.Millisecond)

	s := New(q, 10*time.Millisecond)
	// robfig/cron's minimum granularity is one minute for ordinary specs,
	// but "@every" accepts durations down to one second (shorter ones are
	// rounded up to a second), so a one-second interval is fine here.
	if err := s.Start(time.Second); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer s.Stop()

	time.Sleep(1200 * time.Millisecond)

	if _, ok := q.WaitForResult("job_orphan", 10*time.Millisecond); ok {
		t.Fatal("expected sweeper to have reaped the orphaned result by now")
	}
}
