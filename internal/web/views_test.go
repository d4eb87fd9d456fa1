package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDashboard(t *testing.T) {
	require.NoError(t, LoadTemplates())

	var buf bytes.Buffer
	err := RenderDashboard(&buf, &DashboardData{
		Title:     "Environmental Station Dashboard",
		CenterLat: 28.6139,
		CenterLon: 77.2090,
		Zoom:      11,
	})

	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "Environmental Station Dashboard")
	assert.Contains(t, html, "tile.openstreetmap.org")
	assert.Contains(t, html, "OpenStreetMap")
	assert.Contains(t, html, "28.6139")
	assert.Contains(t, html, "assistant-panel")
	assert.Contains(t, html, "No reading available")
}

func TestRenderDashboardWithoutTemplates(t *testing.T) {
	saved := dashboardTmpl
	dashboardTmpl = nil
	defer func() { dashboardTmpl = saved }()

	var buf bytes.Buffer
	err := RenderDashboard(&buf, &DashboardData{})
	assert.Error(t, err)
}
