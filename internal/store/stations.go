package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"enviro-dashboard/internal/models"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("station not found")

// StationStore is a concurrency-safe in-memory station registry. Stations
// are seeded once at startup; readings are replaced as they arrive and
// cleared again when they go stale.
type StationStore struct {
	mu       sync.RWMutex
	stations map[string]*models.Station
	order    []string // insertion order, so List output is stable
	logger   *zap.Logger

	readingsIngested int
	readingsSwept    int
}

func NewStationStore(logger *zap.Logger) *StationStore {
	return &StationStore{
		stations: make(map[string]*models.Station),
		logger:   logger,
	}
}

// Seed registers stations, dropping any previous latest readings. Duplicate
// IDs overwrite in place and keep their original position.
func (s *StationStore) Seed(stations []models.Station) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range stations {
		st := stations[i]
		st.LatestReading = nil
		if _, exists := s.stations[st.ID]; !exists {
			s.order = append(s.order, st.ID)
		}
		s.stations[st.ID] = &st
	}

	s.logger.Info("Station store seeded", zap.Int("stations", len(s.order)))
}

// SeedFromFile loads a JSON array of stations from path and seeds the store.
func (s *StationStore) SeedFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var stations []models.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}

	if len(stations) == 0 {
		return fmt.Errorf("seed file %s contains no stations", path)
	}

	s.Seed(stations)
	return nil
}

// List returns a snapshot of all stations in seed order. Readings are
// copied, so callers cannot mutate store state through the result.
func (s *StationStore) List() []models.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Station, 0, len(s.order))
	for _, id := range s.order {
		st := *s.stations[id]
		if st.LatestReading != nil {
			reading := *st.LatestReading
			st.LatestReading = &reading
		}
		out = append(out, st)
	}
	return out
}

func (s *StationStore) Get(id string) (models.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stations[id]
	if !ok {
		return models.Station{}, ErrNotFound
	}

	out := *st
	if out.LatestReading != nil {
		reading := *out.LatestReading
		out.LatestReading = &reading
	}
	return out, nil
}

// SetReading replaces the latest reading for a station.
func (s *StationStore) SetReading(id string, reading models.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stations[id]
	if !ok {
		return ErrNotFound
	}

	st.LatestReading = &reading
	s.readingsIngested++

	s.logger.Debug("Reading stored",
		zap.String("station", id),
		zap.Time("timestamp", reading.Timestamp))

	return nil
}

// SweepStale clears readings older than maxAge and returns how many were
// cleared. A maxAge <= 0 disables sweeping.
func (s *StationStore) SweepStale(maxAge time.Duration) int {
	if maxAge <= 0 {
		return 0
	}

	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	swept := 0
	for _, id := range s.order {
		st := s.stations[id]
		if st.LatestReading != nil && st.LatestReading.Timestamp.Before(cutoff) {
			st.LatestReading = nil
			swept++
		}
	}

	s.readingsSwept += swept
	if swept > 0 {
		s.logger.Info("Swept stale readings",
			zap.Int("count", swept),
			zap.Duration("max_age", maxAge))
	}

	return swept
}

func (s *StationStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *StationStore) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	withReading := 0
	for _, st := range s.stations {
		if st.LatestReading != nil {
			withReading++
		}
	}

	return map[string]interface{}{
		"stations":          len(s.order),
		"with_reading":      withReading,
		"readings_ingested": s.readingsIngested,
		"readings_swept":    s.readingsSwept,
	}
}
