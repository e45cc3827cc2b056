package session

import (
	"sync"
	"time"
)

// Scheduler runs fn every interval until the returned cancel func is called.
// cancel must be idempotent and must not wait for an in-flight fn.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler fires fn from a goroutine driven by a time.Ticker.
type TickerScheduler struct{}

// Every implements Scheduler.
func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	t := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}

// ManualScheduler records jobs and runs them only on Fire. Tests and
// step-through front ends use it in place of a real clock.
type ManualScheduler struct {
	mu   sync.Mutex
	jobs []*manualJob
}

type manualJob struct {
	interval  time.Duration
	fn        func()
	cancelled bool
}

// NewManualScheduler returns an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every implements Scheduler.
func (m *ManualScheduler) Every(interval time.Duration, fn func()) func() {
	job := &manualJob{interval: interval, fn: fn}
	m.mu.Lock()
	m.jobs = append(m.jobs, job)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		job.cancelled = true
		m.mu.Unlock()
	}
}

// Fire runs every active job once and returns how many ran.
// Jobs are called without holding the scheduler lock.
func (m *ManualScheduler) Fire() int {
	m.mu.Lock()
	active := make([]*manualJob, 0, len(m.jobs))
	for _, j := range m.jobs {
		if !j.cancelled {
			active = append(active, j)
		}
	}
	m.mu.Unlock()

	for _, j := range active {
		j.fn()
	}
	return len(active)
}

// FireN calls Fire n times and returns the total number of job runs.
func (m *ManualScheduler) FireN(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += m.Fire()
	}
	return total
}

// Active returns the number of jobs not yet cancelled.
func (m *ManualScheduler) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, j := range m.jobs {
		if !j.cancelled {
			n++
		}
	}
	return n
}

// Intervals returns the interval of every job ever scheduled, in order.
func (m *ManualScheduler) Intervals() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.jobs))
	for i, j := range m.jobs {
		out[i] = j.interval
	}
	return out
}
