package scheduler

import (
	"testing"
	"time"

	"enviro-dashboard/internal/models"
	"enviro-dashboard/internal/observability"
	"enviro-dashboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSweeperRunSweep(t *testing.T) {
	st := store.NewStationStore(zap.NewNop())
	st.Seed([]models.Station{
		{ID: "fresh", Name: "Fresh"},
		{ID: "stale", Name: "Stale"},
	})
	require.NoError(t, st.SetReading("fresh", models.Reading{Timestamp: time.Now()}))
	require.NoError(t, st.SetReading("stale", models.Reading{Timestamp: time.Now().Add(-3 * time.Hour)}))

	sweeper := NewSweeper(st, observability.NewMetricsForTesting(), "*/5 * * * *", time.Hour, zap.NewNop())
	sweeper.runSweep()

	stale, err := st.Get("stale")
	require.NoError(t, err)
	assert.Nil(t, stale.LatestReading)

	fresh, err := st.Get("fresh")
	require.NoError(t, err)
	assert.NotNil(t, fresh.LatestReading)

	status := sweeper.GetStatus()
	assert.False(t, status["running"].(bool))
	assert.NotZero(t, status["last_run"])
}

func TestSweeperStartStop(t *testing.T) {
	st := store.NewStationStore(zap.NewNop())
	metrics := observability.NewMetricsForTesting()

	t.Run("starts and stops cleanly", func(t *testing.T) {
		sweeper := NewSweeper(st, metrics, "*/5 * * * *", time.Hour, zap.NewNop())

		require.NoError(t, sweeper.Start())
		assert.True(t, sweeper.GetStatus()["running"].(bool))

		// Second Start is a no-op.
		require.NoError(t, sweeper.Start())

		sweeper.Stop()
		assert.False(t, sweeper.GetStatus()["running"].(bool))
	})

	t.Run("invalid schedule is rejected", func(t *testing.T) {
		sweeper := NewSweeper(st, metrics, "not a cron expr", time.Hour, zap.NewNop())
		assert.Error(t, sweeper.Start())
	})

	t.Run("disabled max age does not start", func(t *testing.T) {
		sweeper := NewSweeper(st, metrics, "*/5 * * * *", 0, zap.NewNop())
		require.NoError(t, sweeper.Start())
		assert.False(t, sweeper.GetStatus()["running"].(bool))
	})
}
