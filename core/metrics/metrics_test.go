package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()
	r.Passes.WithLabelValues("scheduled", "ok").Inc()
	r.Passes.WithLabelValues("scheduled", "ok").Inc()
	r.Failures.WithLabelValues("photo").Add(3)

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if m.GetCounter() != nil {
				values[f.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["gallery_sync_passes_total"])
	assert.Equal(t, 3.0, values["gallery_sync_item_failures_total"])
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.Processed.Add(5)

	app := fiber.New()
	r.Register(app, "/metrics")

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "gallery_sync_items_processed_total 5")
}
