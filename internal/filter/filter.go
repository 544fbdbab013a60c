// Package filter holds the pure view transforms behind the dashboard pages.
// Nothing here mutates its input.
package filter

import (
	"sort"
	"strings"

	"github.com/water-iq/monitor/internal/model"
)

// All is the wildcard value for category and status criteria.
const All = "all"

type AlertCriteria struct {
	Search           string
	Type             string
	Severity         string
	ShowAcknowledged bool
}

type DeviceCriteria struct {
	Search string
	Type   string
	Status string
}

type SensorCriteria struct {
	Search string
	Type   string
	Status string
}

// Alerts returns the alerts matching criteria, unacknowledged first and
// newest first within each group.
func Alerts(items []model.Alert, criteria AlertCriteria) []model.Alert {
	query := normalizeQuery(criteria.Search)
	result := make([]model.Alert, 0, len(items))
	for _, item := range items {
		if query != "" && !strings.Contains(strings.ToLower(item.Message), query) {
			continue
		}
		if !matchesChoice(criteria.Type, string(item.Type)) {
			continue
		}
		if !matchesChoice(criteria.Severity, string(item.Severity)) {
			continue
		}
		if !criteria.ShowAcknowledged && item.Acknowledged {
			continue
		}
		result = append(result, item)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Acknowledged != result[j].Acknowledged {
			return !result[i].Acknowledged
		}
		return result[i].Timestamp > result[j].Timestamp
	})
	return result
}

// Devices returns the devices matching criteria in input order.
func Devices(items []model.Device, criteria DeviceCriteria) []model.Device {
	query := normalizeQuery(criteria.Search)
	result := make([]model.Device, 0, len(items))
	for _, item := range items {
		if query != "" && !matchesNameOrLocation(item.Name, item.Location, query) {
			continue
		}
		if !matchesChoice(criteria.Type, string(item.Type)) {
			continue
		}
		if !matchesChoice(criteria.Status, string(item.Status)) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Sensors returns the sensors matching criteria in input order.
func Sensors(items []model.Sensor, criteria SensorCriteria) []model.Sensor {
	query := normalizeQuery(criteria.Search)
	result := make([]model.Sensor, 0, len(items))
	for _, item := range items {
		if query != "" && !matchesNameOrLocation(item.Name, item.Location, query) {
			continue
		}
		if !matchesChoice(criteria.Type, string(item.Type)) {
			continue
		}
		if !matchesChoice(criteria.Status, string(item.Status)) {
			continue
		}
		result = append(result, item.Clone())
	}
	return result
}

// RecentAlerts returns up to limit unacknowledged alerts, newest first.
func RecentAlerts(items []model.Alert, limit int) []model.Alert {
	result := Alerts(items, AlertCriteria{})
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// OnlineSensors returns up to limit online sensors in input order.
func OnlineSensors(items []model.Sensor, limit int) []model.Sensor {
	result := Sensors(items, SensorCriteria{Status: string(model.SensorOnline)})
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// AlertTypes returns the distinct alert types present, in first-seen order.
func AlertTypes(items []model.Alert) []model.AlertType {
	seen := map[model.AlertType]struct{}{}
	out := make([]model.AlertType, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Type]; ok {
			continue
		}
		seen[item.Type] = struct{}{}
		out = append(out, item.Type)
	}
	return out
}

func normalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func matchesChoice(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, All) {
		return true
	}
	return want == got
}

func matchesNameOrLocation(name, location, query string) bool {
	if strings.Contains(strings.ToLower(name), query) {
		return true
	}
	return strings.Contains(strings.ToLower(location), query)
}
