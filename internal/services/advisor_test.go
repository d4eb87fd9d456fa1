package services

import (
	"context"
	"errors"
	"testing"

	"enviro-dashboard/internal/models"
	"enviro-dashboard/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher struct {
	suggestions []models.Suggestion
	err         error
	calls       int
}

func (f *stubFetcher) FetchSuggestions(_ context.Context, _ []models.Station) ([]models.Suggestion, error) {
	f.calls++
	return f.suggestions, f.err
}

func newTestAdvisor(fetcher SuggestionFetcher) *Advisor {
	return NewAdvisor(fetcher, observability.NewMetricsForTesting(), zap.NewNop())
}

func TestAdvisorAnalyze(t *testing.T) {
	breaching := []models.Station{station("A", "East", reading(35, 10, 20))}

	t.Run("remote suggestions win when usable", func(t *testing.T) {
		remote := []models.Suggestion{{
			StationName: "A",
			Area:        "East",
			Parameter:   models.ParamTemperature,
			Value:       35,
			Threshold:   30,
			Suggestion:  "remote advice",
		}}
		advisor := newTestAdvisor(&stubFetcher{suggestions: remote})

		result := advisor.Analyze(context.Background(), breaching)

		assert.Equal(t, "remote", result.Source)
		assert.Equal(t, remote, result.Suggestions)
		require.Len(t, result.Groups, 1)
		assert.Equal(t, "A", result.Groups[0].StationName)
	})

	t.Run("request failure falls back to local evaluation", func(t *testing.T) {
		advisor := newTestAdvisor(&stubFetcher{err: errors.New("boom")})

		result := advisor.Analyze(context.Background(), breaching)

		assert.Equal(t, "fallback", result.Source)
		require.Len(t, result.Suggestions, 1)
		assert.Equal(t, models.ParamTemperature, result.Suggestions[0].Parameter)
		assert.Equal(t, 35.0, result.Suggestions[0].Value)
		assert.Equal(t, "Deploy cooling systems or improve ventilation.", result.Suggestions[0].Suggestion)
	})

	t.Run("empty remote result still falls back", func(t *testing.T) {
		advisor := newTestAdvisor(&stubFetcher{suggestions: []models.Suggestion{}})

		result := advisor.Analyze(context.Background(), breaching)

		assert.Equal(t, "fallback", result.Source)
		require.Len(t, result.Suggestions, 1)
	})

	t.Run("no fetcher configured goes straight to fallback", func(t *testing.T) {
		advisor := newTestAdvisor(nil)

		result := advisor.Analyze(context.Background(), breaching)

		assert.Equal(t, "fallback", result.Source)
	})

	t.Run("fallback with nothing breached yields empty, not nil", func(t *testing.T) {
		advisor := newTestAdvisor(&stubFetcher{err: errors.New("down")})
		calm := []models.Station{
			station("B", "West", reading(20, 40, 50)),
			station("C", "North", nil),
		}

		result := advisor.Analyze(context.Background(), calm)

		assert.Equal(t, "fallback", result.Source)
		assert.NotNil(t, result.Suggestions)
		assert.Empty(t, result.Suggestions)
		assert.Empty(t, result.Groups)
	})

	t.Run("stats track remote and fallback runs", func(t *testing.T) {
		fetcher := &stubFetcher{suggestions: []models.Suggestion{{StationName: "A"}}}
		advisor := newTestAdvisor(fetcher)

		advisor.Analyze(context.Background(), breaching)
		fetcher.err = errors.New("down")
		advisor.Analyze(context.Background(), breaching)

		stats := advisor.GetStats()
		assert.Equal(t, 1, stats["remote_hits"])
		assert.Equal(t, 1, stats["fallback_hits"])
		assert.Equal(t, 2, fetcher.calls)
	})
}
