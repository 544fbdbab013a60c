package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/water-iq/monitor/internal/filter"
	"github.com/water-iq/monitor/internal/store"
)

const (
	dashboardRecentAlerts  = 3
	dashboardOnlineSensors = 4
)

// Summary returns the dashboard headline figures.
func (a *API) Summary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Summary())
}

// Dashboard returns everything the landing page renders in one payload.
func (a *API) Dashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":        a.store.Summary(),
		"recent_alerts":  filter.RecentAlerts(a.store.Alerts(), dashboardRecentAlerts),
		"online_sensors": filter.OnlineSensors(a.store.Sensors(), dashboardOnlineSensors),
		"usage_chart":    a.store.UsageChart(),
	})
}

// ListSensors filters sensors by query, type and status.
func (a *API) ListSensors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := filter.Sensors(a.store.Sensors(), filter.SensorCriteria{
		Search: q.Get("query"),
		Type:   q.Get("type"),
		Status: q.Get("status"),
	})
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// SensorReadings returns a fresh reading series; unknown sensors get an
// empty list.
func (a *API) SensorReadings(w http.ResponseWriter, _ *http.Request, sensorID string) {
	writeJSON(w, http.StatusOK, map[string]any{"items": a.store.ReadingsFor(sensorID)})
}

// ListDevices filters devices by query, type and status.
func (a *API) ListDevices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := filter.Devices(a.store.Devices(), filter.DeviceCriteria{
		Search: q.Get("query"),
		Type:   q.Get("type"),
		Status: q.Get("status"),
	})
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// ToggleDevicePower flips on/off. Unknown or faulted devices are left as is.
func (a *API) ToggleDevicePower(w http.ResponseWriter, r *http.Request, deviceID string) {
	if !a.store.ToggleDevicePower(r.Context(), deviceID) {
		a.logger.Debug("device power unchanged", "device", deviceID, "actor", store.ActorFrom(r.Context()))
	}
	writeAccepted(w)
}

// ToggleDeviceAutomatic flips automatic mode.
func (a *API) ToggleDeviceAutomatic(w http.ResponseWriter, r *http.Request, deviceID string) {
	if !a.store.ToggleDeviceAutomatic(r.Context(), deviceID) {
		a.logger.Debug("device automatic unchanged", "device", deviceID, "actor", store.ActorFrom(r.Context()))
	}
	writeAccepted(w)
}

// ListAlerts filters alerts. acknowledged=true includes acknowledged alerts.
func (a *API) ListAlerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := filter.AlertCriteria{
		Search:   q.Get("query"),
		Type:     q.Get("type"),
		Severity: q.Get("severity"),
	}
	if raw := strings.TrimSpace(q.Get("acknowledged")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_acknowledged_filter", "acknowledged must be true or false")
			return
		}
		criteria.ShowAcknowledged = value
	}
	alerts := a.store.Alerts()
	writeJSON(w, http.StatusOK, map[string]any{
		"items": filter.Alerts(alerts, criteria),
		"types": filter.AlertTypes(alerts),
	})
}

// AcknowledgeAlert marks an alert acknowledged; repeating it is harmless.
func (a *API) AcknowledgeAlert(w http.ResponseWriter, r *http.Request, alertID string) {
	if !a.store.AcknowledgeAlert(r.Context(), alertID) {
		a.logger.Debug("alert acknowledge unchanged", "alert", alertID, "actor", store.ActorFrom(r.Context()))
	}
	writeAccepted(w)
}
