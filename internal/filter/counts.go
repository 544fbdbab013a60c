package filter

import "github.com/water-iq/monitor/internal/model"

// Counts backs the map page sidebar.
type Counts struct {
	Sensors          map[model.SensorStatus]int `json:"sensors"`
	Devices          map[model.DeviceStatus]int `json:"devices"`
	AutomaticDevices int                        `json:"automatic_devices"`
	Junctions        int                        `json:"junctions"`
	Tanks            int                        `json:"tanks"`
}

func CountStatuses(sensors []model.Sensor, devices []model.Device, nodes []model.TopologyNode) Counts {
	counts := Counts{
		Sensors: map[model.SensorStatus]int{
			model.SensorOnline:  0,
			model.SensorOffline: 0,
			model.SensorWarning: 0,
			model.SensorError:   0,
		},
		Devices: map[model.DeviceStatus]int{
			model.DeviceOn:    0,
			model.DeviceOff:   0,
			model.DeviceError: 0,
		},
	}
	for _, sensor := range sensors {
		counts.Sensors[sensor.Status]++
	}
	for _, device := range devices {
		counts.Devices[device.Status]++
		if device.Automatic {
			counts.AutomaticDevices++
		}
	}
	for _, node := range nodes {
		switch node.Type {
		case model.NodeJunction:
			counts.Junctions++
		case model.NodeTank:
			counts.Tanks++
		}
	}
	return counts
}
