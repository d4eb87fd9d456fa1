package scheduler

import (
	"sync"
	"time"

	"enviro-dashboard/internal/observability"
	"enviro-dashboard/internal/store"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically clears stale readings so stations that stopped
// reporting fall back to the "no reading yet" state.
type Sweeper struct {
	store    *store.StationStore
	metrics  *observability.Metrics
	logger   *zap.Logger
	cron     *cron.Cron
	schedule string
	maxAge   time.Duration

	mu      sync.Mutex
	running bool
	lastRun time.Time
	entryID cron.EntryID
}

func NewSweeper(st *store.StationStore, metrics *observability.Metrics, schedule string, maxAge time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		store:    st,
		metrics:  metrics,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
		maxAge:   maxAge,
	}
}

func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if s.maxAge <= 0 {
		s.logger.Info("Reading max age disabled, sweeper not started")
		return nil
	}

	id, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		return err
	}
	s.entryID = id

	s.cron.Start()
	s.running = true

	s.logger.Info("Sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("max_age", s.maxAge))

	return nil
}

func (s *Sweeper) runSweep() {
	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()

	swept := s.store.SweepStale(s.maxAge)
	s.metrics.ReadingsSwept.Add(float64(swept))

	s.logger.Debug("Sweep completed", zap.Int("swept", swept))
}

func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.logger.Info("Stopping sweeper")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
}

func (s *Sweeper) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":  s.running,
		"schedule": s.schedule,
		"max_age":  s.maxAge.String(),
		"last_run": s.lastRun,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	return status
}
