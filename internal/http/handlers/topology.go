package handlers

import (
	"bytes"
	"net/http"

	"github.com/water-iq/monitor/internal/filter"
	"github.com/water-iq/monitor/internal/render"
)

// Topology returns resolved nodes and the sidebar counts.
func (a *API) Topology(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"nodes":  a.store.ResolvedNodes(),
		"counts": filter.CountStatuses(a.store.Sensors(), a.store.Devices(), a.store.TopologyNodes()),
	})
}

// TopologyMap renders the system map as PNG.
func (a *API) TopologyMap(w http.ResponseWriter, r *http.Request) {
	size, ok := requestSize(r, a.opts.MapSize)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_size", "width and height must be positive integers")
		return
	}
	var buf bytes.Buffer
	if err := render.Map(&buf, a.store.ResolvedNodes(), size); err != nil {
		a.logger.Error("render map failed", "err", err)
		writeError(w, http.StatusInternalServerError, "render_failed", "Failed to render map")
		return
	}
	writePNG(w, buf.Bytes())
}

func requestSize(r *http.Request, fallback render.Size) (render.Size, bool) {
	width, okW := queryInt(r, "width")
	height, okH := queryInt(r, "height")
	if !okW || !okH {
		return render.Size{}, false
	}
	return render.Size{Width: width, Height: height}.Normalize(fallback), true
}

func writePNG(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
