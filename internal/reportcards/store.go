package reportcards

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RunStore keeps generated runs in memory until they expire. Nothing is
// persisted between process restarts; the store only bridges the gap
// between generating files and the browser downloading them.
type RunStore struct {
	ttl    time.Duration
	logger *zap.Logger
	cron   *cron.Cron

	mu   sync.RWMutex
	runs map[uuid.UUID]*Run
}

// NewRunStore creates a store purging runs older than ttl on the given
// cron schedule.
func NewRunStore(ttl time.Duration, schedule string, logger *zap.Logger) (*RunStore, error) {
	s := &RunStore{
		ttl:    ttl,
		logger: logger,
		cron:   cron.New(),
		runs:   make(map[uuid.UUID]*Run),
	}
	if _, err := s.cron.AddFunc(schedule, s.purge); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the cleanup schedule.
func (s *RunStore) Start() {
	s.cron.Start()
}

// Stop halts the cleanup schedule.
func (s *RunStore) Stop() {
	s.cron.Stop()
}

// Put stores a run.
func (s *RunStore) Put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

// Get retrieves a run by id.
func (s *RunStore) Get(id uuid.UUID) (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

func (s *RunStore) purge() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, run := range s.runs {
		if run.CreatedAt.Before(cutoff) {
			delete(s.runs, id)
			s.logger.Info("purged expired run", zap.String("run_id", id.String()))
		}
	}
}
