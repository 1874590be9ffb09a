// Package jobqueue implements the bridge's in-memory job/result broker: the
// single synchronized object that the stdio transport and the HTTP transport
// use to hand work to, and collect results from, a long-polling plugin.
//
// There is no persistence: a process restart drops every pending job and
// every client's liveness history. That is an explicit non-goal, not an
// oversight — see spec.md §1.
package jobqueue

import (
	"encoding/json"
	"sync"
	"time"
)

// Job is an immutable unit of work destined for exactly one client's mailbox.
type Job struct {
	JobID     string         `json:"job_id"`
	Type      string         `json:"type"`
	Args      map[string]any `json:"args"`
	CreatedAt float64        `json:"created_at"`
}

// Result is the plugin's opaque reply to exactly one Job, keyed by JobID.
type Result struct {
	JobID  string          `json:"job_id"`
	OK     bool            `json:"ok"`
	Error  string          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Recorder receives optional observability callbacks. A nil Recorder (the
// zero value of *Queue without WithRecorder) performs no recording.
type Recorder interface {
	JobEnqueued(clientID string)
	JobDelivered(clientID string)
	ClientSeen(clientID string)
	ResultStored()
}

// Queue is the thread-safe mailbox: per-client pending jobs, a global result
// table keyed by job id, and per-client liveness timestamps. One mutex plus
// one condition variable guards all three; every wait rechecks its predicate
// in a loop after waking (the condvar is broadcast on every mutation, never
// signaled to a single waiter, since many goroutines may be waiting on
// unrelated keys at once).
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pending  map[string][]Job
	results  map[string]Result
	storedAt map[string]time.Time
	lastSeen map[string]time.Time
	recorder Recorder
}

// Option configures a Queue at construction time.
type Option func(*Queue)

// WithRecorder attaches a metrics recorder. Safe to pass nil.
func WithRecorder(r Recorder) Option {
	return func(q *Queue) {
		if r != nil {
			q.recorder = r
		}
	}
}

// New constructs an empty Queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		pending:  make(map[string][]Job),
		results:  make(map[string]Result),
		storedAt: make(map[string]time.Time),
		lastSeen: make(map[string]time.Time),
	}
	q.cond = sync.NewCond(&q.mu)
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

// MarkSeen records that client_id is alive right now and wakes anything
// waiting on liveness (status queries, long-poll waits retrying).
func (q *Queue) MarkSeen(clientID string) {
	q.mu.Lock()
	q.lastSeen[clientID] = time.Now()
	q.mu.Unlock()
	q.cond.Broadcast()

	if q.recorder != nil {
		q.recorder.ClientSeen(clientID)
	}
}

// IsConnected reports whether clientID was seen within maxAge. A client
// never seen is never connected.
func (q *Queue) IsConnected(clientID string, maxAge time.Duration) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	last, ok := q.lastSeen[clientID]
	if !ok {
		return false
	}
	return time.Since(last) < maxAge
}

// GetLastSeen returns the last MarkSeen time for clientID, or the zero value
// and false if the client has never been seen.
func (q *Queue) GetLastSeen(clientID string) (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.lastSeen[clientID]
	return t, ok
}

// Enqueue appends job to clientID's mailbox. Jobs within one mailbox are
// never reordered: Enqueue is the only mutator of a mailbox's tail.
func (q *Queue) Enqueue(clientID string, job Job) {
	q.mu.Lock()
	q.pending[clientID] = append(q.pending[clientID], job)
	q.mu.Unlock()
	q.cond.Broadcast()

	if q.recorder != nil {
		q.recorder.JobEnqueued(clientID)
	}
}

// WaitForJob blocks until clientID's mailbox has a job or timeout elapses,
// then pops and returns the head of the mailbox (FIFO). Returns (Job{},
// false) on timeout with nothing delivered.
func (q *Queue) WaitForJob(clientID string, timeout time.Duration) (Job, bool) {
	deadline := time.Now().Add(timeout)

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if mailbox := q.pending[clientID]; len(mailbox) > 0 {
			job := mailbox[0]
			q.pending[clientID] = mailbox[1:]
			if q.recorder != nil {
				q.recorder.JobDelivered(clientID)
			}
			return job, true
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return Job{}, false
		}
		waitWithTimeout(q.cond, remaining)
	}
}

// StoreResult fills job_id's result slot, overwriting any earlier value
// (the dispatcher is expected to have already given up on a job before a
// late duplicate result could arrive, per the ORPHANED state in spec.md
// §4.E — last writer wins in that narrow, accepted case).
func (q *Queue) StoreResult(jobID string, result Result) {
	q.mu.Lock()
	q.results[jobID] = result
	q.storedAt[jobID] = time.Now()
	q.mu.Unlock()
	q.cond.Broadcast()

	if q.recorder != nil {
		q.recorder.ResultStored()
	}
}

// WaitForResult blocks until job_id's slot is filled or timeout elapses,
// then consumes (removes) and returns it. A second call for the same job id
// after a successful consume returns (Result{}, false): the slot is gone.
func (q *Queue) WaitForResult(jobID string, timeout time.Duration) (Result, bool) {
	deadline := time.Now().Add(timeout)

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if r, ok := q.results[jobID]; ok {
			delete(q.results, jobID)
			delete(q.storedAt, jobID)
			return r, true
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return Result{}, false
		}
		waitWithTimeout(q.cond, remaining)
	}
}

// CancelJob removes the first pending job with this id from whichever
// mailbox holds it. Best-effort: if the job was already popped by a poller
// (IN_FLIGHT), cancellation cannot recall it — it returns false.
func (q *Queue) CancelJob(jobID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for clientID, mailbox := range q.pending {
		for i, job := range mailbox {
			if job.JobID == jobID {
				q.pending[clientID] = append(mailbox[:i], mailbox[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Depth returns the total number of jobs pending across all mailboxes.
// Operational visibility only; not part of the dispatcher's contract.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, mailbox := range q.pending {
		n += len(mailbox)
	}
	return n
}

// ConnectedClients returns the set of client ids seen within maxAge, for
// operational reporting.
func (q *Queue) ConnectedClients(maxAge time.Duration) []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := time.Now()
	var ids []string
	for id, last := range q.lastSeen {
		if now.Sub(last) < maxAge {
			ids = append(ids, id)
		}
	}
	return ids
}

// SweepExpired removes result slots that were stored more than maxAge ago
// and never consumed by a waiter. These arise when the dispatcher times out
// and cancels a job, but the plugin later posts the result anyway (the
// orphaned-result case, accepted in spec.md §4.E / §9). It returns the
// number of slots reaped.
func (q *Queue) SweepExpired(maxAge time.Duration) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := time.Now()
	n := 0
	for id, at := range q.storedAt {
		if now.Sub(at) >= maxAge {
			delete(q.results, id)
			delete(q.storedAt, id)
			n++
		}
	}
	return n
}

// waitWithTimeout waits on cond for at most d, or until the next Broadcast.
// sync.Cond has no native timeout, so this spins up a timer goroutine that
// wakes the condvar when d elapses; the caller re-checks its predicate
// regardless of which event woke it (guarded-wait pattern).
func waitWithTimeout(cond *sync.Cond, d time.Duration) {
	timer := time.AfterFunc(d, func() {
		// Taking the lock means this broadcast cannot run before the caller
		// (which holds the lock until Wait parks it) is registered as a waiter.
		cond.L.Lock()
		cond.Broadcast()
		cond.L.Unlock()
	})
	defer timer.Stop()
	cond.Wait()
}
