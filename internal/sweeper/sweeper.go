// Package sweeper periodically reaps orphaned result slots: results the
// plugin posted for a job the dispatcher had already given up on and
// canceled. Left alone these would sit in the queue's result table forever.
package sweeper

import (
	"time"

	"github.com/robfig/cron/v3"

	"studio-bridge/internal/jobqueue"
	"studio-bridge/internal/log"
)

// Sweeper runs SweepExpired on a fixed interval using cron's standard
// 5-field parser, mirroring how scheduled maintenance jobs are expressed
// elsewhere in this codebase rather than hand-rolling a ticker.
type Sweeper struct {
	cron   *cron.Cron
	queue  *jobqueue.Queue
	maxAge time.Duration
}

// New builds a Sweeper that reaps results older than maxAge once started.
func New(q *jobqueue.Queue, maxAge time.Duration) *Sweeper {
	return &Sweeper{
		cron:   cron.New(),
		queue:  q,
		maxAge: maxAge,
	}
}

// Start schedules the sweep and begins running it in the background. It
// returns an error only if the interval could not be expressed as a cron
// spec (it always can be, for the fixed set this bridge uses).
func (s *Sweeper) Start(interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	spec := specForInterval(interval)
	_, err := s.cron.AddFunc(spec, func() {
		n := s.queue.SweepExpired(s.maxAge)
		if n > 0 {
			log.WithComponent("sweeper").Info("reaped orphaned results", "count", n)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for any in-flight sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// specForInterval renders interval as a "@every" cron spec. robfig/cron
// supports this directly; it's the simplest way to express a fixed period
// without computing minute/hour fields by hand.
func specForInterval(interval time.Duration) string {
	return "@every " + interval.String()
}
