package model

type DeviceType string

const (
	DevicePump      DeviceType = "pump"
	DeviceValve     DeviceType = "valve"
	DeviceIrrigator DeviceType = "irrigator"
	DeviceFilter    DeviceType = "filter"
)

type DeviceStatus string

const (
	DeviceOn    DeviceStatus = "on"
	DeviceOff   DeviceStatus = "off"
	DeviceError DeviceStatus = "error"
)

type Device struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      DeviceType   `json:"type"`
	Status    DeviceStatus `json:"status"`
	Automatic bool         `json:"automatic"`
	Location  string       `json:"location"`
}
