package handlers

import (
	"bytes"
	"net/http"

	"github.com/water-iq/monitor/internal/filter"
	"github.com/water-iq/monitor/internal/render"
)

const usageChartTitle = "Water Usage"

// Usage returns the daily history together with its aggregation.
func (a *API) Usage(w http.ResponseWriter, _ *http.Request) {
	records := a.store.UsageHistory()
	writeJSON(w, http.StatusOK, map[string]any{
		"items":   records,
		"summary": filter.Usage(records),
	})
}

// UsageChart returns the weekly trend series.
func (a *API) UsageChart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.store.UsageChart())
}

// UsageChartImage renders the weekly trend as PNG.
func (a *API) UsageChartImage(w http.ResponseWriter, r *http.Request) {
	size, ok := requestSize(r, a.opts.ChartSize)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_size", "width and height must be positive integers")
		return
	}
	var buf bytes.Buffer
	if err := render.Chart(&buf, a.store.UsageChart(), usageChartTitle, size); err != nil {
		a.logger.Error("render chart failed", "err", err)
		writeError(w, http.StatusInternalServerError, "render_failed", "Failed to render chart")
		return
	}
	writePNG(w, buf.Bytes())
}
