package store

import (
	"context"

	"github.com/water-iq/monitor/internal/model"
)

// ToggleDevicePower flips a device between on and off. Devices in error
// status and unknown ids are left untouched. Reports whether anything changed.
func (s *Store) ToggleDevicePower(ctx context.Context, deviceID string) bool {
	s.mu.Lock()
	i := s.deviceIndex(deviceID)
	if i < 0 || s.devices[i].Status == model.DeviceError {
		s.mu.Unlock()
		return false
	}
	if s.devices[i].Status == model.DeviceOn {
		s.devices[i].Status = model.DeviceOff
	} else {
		s.devices[i].Status = model.DeviceOn
	}
	status := s.devices[i].Status
	s.mu.Unlock()

	s.logger.Debug("device power toggled", "device", deviceID, "status", status)
	s.publish(ctx, ChangeDevicePower, deviceID)
	return true
}

// ToggleDeviceAutomatic flips the automatic-mode flag of a known device.
func (s *Store) ToggleDeviceAutomatic(ctx context.Context, deviceID string) bool {
	s.mu.Lock()
	i := s.deviceIndex(deviceID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.devices[i].Automatic = !s.devices[i].Automatic
	automatic := s.devices[i].Automatic
	s.mu.Unlock()

	s.logger.Debug("device automatic toggled", "device", deviceID, "automatic", automatic)
	s.publish(ctx, ChangeDeviceAutomatic, deviceID)
	return true
}

// AcknowledgeAlert marks an unacknowledged alert as acknowledged. Already
// acknowledged and unknown alerts are left untouched.
func (s *Store) AcknowledgeAlert(ctx context.Context, alertID string) bool {
	s.mu.Lock()
	i := s.alertIndex(alertID)
	if i < 0 || s.alerts[i].Acknowledged {
		s.mu.Unlock()
		return false
	}
	s.alerts[i].Acknowledged = true
	s.mu.Unlock()

	s.logger.Debug("alert acknowledged", "alert", alertID)
	s.publish(ctx, ChangeAlertAcknowledged, alertID)
	return true
}

// RecordReading stores reading as the sensor's most recent one.
func (s *Store) RecordReading(ctx context.Context, sensorID string, reading model.Reading) bool {
	s.mu.Lock()
	i := s.sensorIndex(sensorID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	reading.SensorID = sensorID
	s.sensors[i].LastReading = &reading
	s.mu.Unlock()

	s.publish(ctx, ChangeSensorReading, sensorID)
	return true
}
