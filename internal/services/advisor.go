package services

import (
	"context"
	"sync"
	"time"

	"enviro-dashboard/internal/models"
	"enviro-dashboard/internal/observability"
	"go.uber.org/zap"
)

// SuggestionFetcher is the single "fetch suggestions" seam to the remote
// analysis endpoint.
type SuggestionFetcher interface {
	FetchSuggestions(ctx context.Context, stations []models.Station) ([]models.Suggestion, error)
}

// Advisor produces mitigation suggestions for a station list. The remote
// analysis endpoint is tried first; any failure, unusable payload, or empty
// result silently reduces to the local threshold evaluation, so a caller
// always gets a (possibly empty) result and never an error.
type Advisor struct {
	fetcher SuggestionFetcher
	metrics *observability.Metrics
	logger  *zap.Logger

	mu           sync.RWMutex
	lastRun      time.Time
	remoteHits   int
	fallbackHits int
}

func NewAdvisor(fetcher SuggestionFetcher, metrics *observability.Metrics, logger *zap.Logger) *Advisor {
	return &Advisor{
		fetcher: fetcher,
		metrics: metrics,
		logger:  logger,
	}
}

// Analyze runs one analysis over the given stations and reports the result
// along with its source ("remote" or "fallback").
func (a *Advisor) Analyze(ctx context.Context, stations []models.Station) models.AnalysisResult {
	start := time.Now()

	a.mu.Lock()
	a.lastRun = start
	a.mu.Unlock()

	suggestions, source := a.resolveSuggestions(ctx, stations)

	a.metrics.AnalyzeRequests.WithLabelValues(source).Inc()
	a.metrics.AnalyzeDuration.Observe(time.Since(start).Seconds())

	a.mu.Lock()
	if source == "remote" {
		a.remoteHits++
	} else {
		a.fallbackHits++
	}
	a.mu.Unlock()

	a.logger.Info("Analysis completed",
		zap.String("source", source),
		zap.Int("stations", len(stations)),
		zap.Int("suggestions", len(suggestions)),
		zap.Duration("duration", time.Since(start)))

	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	return models.AnalysisResult{
		Source:      source,
		Suggestions: suggestions,
		Groups:      GroupByStation(suggestions),
		GeneratedAt: start,
	}
}

func (a *Advisor) resolveSuggestions(ctx context.Context, stations []models.Station) ([]models.Suggestion, string) {
	if a.fetcher == nil {
		a.metrics.FallbackReasons.WithLabelValues("no_endpoint").Inc()
		return EvaluateThresholds(stations), "fallback"
	}

	remote, err := a.fetcher.FetchSuggestions(ctx, stations)
	switch {
	case err != nil:
		a.logger.Warn("Remote analysis failed, using local fallback", zap.Error(err))
		a.metrics.FallbackReasons.WithLabelValues("request_failed").Inc()
	case len(remote) == 0:
		// An empty remote array is treated as "no usable result", not as
		// "no issues found"; the fallback still runs.
		a.logger.Warn("Remote analysis returned no records, using local fallback")
		a.metrics.FallbackReasons.WithLabelValues("empty_result").Inc()
	default:
		return remote, "remote"
	}

	return EvaluateThresholds(stations), "fallback"
}

// GetStats returns a snapshot of advisor activity for the stats endpoint.
func (a *Advisor) GetStats() map[string]interface{} {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]interface{}{
		"last_run":      a.lastRun,
		"remote_hits":   a.remoteHits,
		"fallback_hits": a.fallbackHits,
	}
}
