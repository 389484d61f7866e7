// Package scheduler runs the platform's periodic background jobs on cron specs.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Job is one unit of background work
type Job func(ctx context.Context) error

// JobObserver receives the outcome of every run
type JobObserver interface {
	ObserveJob(job string, duration time.Duration, success bool)
}

type entry struct {
	id   cron.EntryID
	spec string
	job  Job
}

// Scheduler wraps a cron runner with named jobs
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	entries  map[string]*entry
	ctx      context.Context
	cancel   context.CancelFunc
	running  bool
	observer JobObserver
	logger   logger.Logger
}

// NewScheduler creates a Scheduler evaluating specs in loc. observer may be nil.
func NewScheduler(loc *time.Location, observer JobObserver, logger logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	adapter := &cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		entries:  make(map[string]*entry),
		ctx:      ctx,
		cancel:   cancel,
		observer: observer,
		logger:   logger,
	}
}

// Register adds a named job. Specs use the standard five field format or
// descriptors like "@every 15m".
func (s *Scheduler) Register(name, spec string, job Job) error {
	if name == "" {
		return fmt.Errorf("job name is required")
	}
	if job == nil {
		return fmt.Errorf("job %s has no function", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("job %s is already registered", name)
	}

	id, err := s.cron.AddFunc(spec, func() {
		_ = s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s with spec %q: %w", name, spec, err)
	}
	s.entries[name] = &entry{id: id, spec: spec, job: job}
	s.logger.Info("Registered job ", name, " with schedule ", spec)
	return nil
}

// Jobs returns the registered job names in order
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextRun returns when the named job fires next; zero before Start
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.Lock()
	e, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(e.id).Next, true
}

// RunNow executes the named job synchronously
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	e, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %s is not registered", name)
	}
	return s.run(name, e.job)
}

func (s *Scheduler) run(name string, job Job) error {
	start := time.Now()
	err := job(s.ctx)
	elapsed := time.Since(start)

	if s.observer != nil {
		s.observer.ObserveJob(name, elapsed, err == nil)
	}
	if err != nil {
		s.logger.Error("Job ", name, " failed after ", elapsed, ": ", err)
		return fmt.Errorf("job %s failed: %w", name, err)
	}
	s.logger.Info("Job ", name, " completed in ", elapsed)
	return nil
}

// Start begins firing jobs in the background
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	s.logger.Info("Scheduler started with ", len(s.entries), " jobs")
}

// Stop prevents new runs and waits for running jobs or ctx, whichever ends first
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.cancel()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		s.cancel()
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		s.cancel()
		return fmt.Errorf("scheduler stop interrupted: %w", ctx.Err())
	}
}

// cronLogger forwards cron's own messages to the application logger
type cronLogger struct {
	logger logger.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.With(keysAndValues...).Debug("cron: ", msg)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.With(keysAndValues...).Error("cron: ", msg, ": ", err)
}
