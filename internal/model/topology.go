package model

import (
	"encoding/json"
	"fmt"
)

type NodeType string

const (
	NodeSensor   NodeType = "sensor"
	NodeDevice   NodeType = "device"
	NodeJunction NodeType = "junction"
	NodeTank     NodeType = "tank"
)

type NodeStatus string

const (
	NodeNormal  NodeStatus = "normal"
	NodeWarning NodeStatus = "warning"
	NodeError   NodeStatus = "error"
)

// RefKind discriminates NodeRef.
type RefKind int

const (
	RefNone RefKind = iota
	RefSensor
	RefDevice
)

// NodeRef points a topology node at the sensor or device it represents.
// Only the identifier is kept; the entity is looked up when the map is read.
type NodeRef struct {
	Kind RefKind
	ID   string
}

func NoRef() NodeRef { return NodeRef{Kind: RefNone} }
func SensorRef(id string) NodeRef { return NodeRef{Kind: RefSensor, ID: id} }
func DeviceRef(id string) NodeRef { return NodeRef{Kind: RefDevice, ID: id} }

func (r NodeRef) String() string {
	switch r.Kind {
	case RefSensor:
		return "sensor:" + r.ID
	case RefDevice:
		return "device:" + r.ID
	default:
		return "none"
	}
}

type TopologyNode struct {
	ID       string      `json:"id"`
	Type     NodeType    `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Status   *NodeStatus `json:"status,omitempty"`
	LinkedTo []string    `json:"linked_to"`
	Ref      NodeRef     `json:"-"`
}

// Validate checks that Ref agrees with the node type.
func (n TopologyNode) Validate() error {
	switch n.Ref.Kind {
	case RefSensor:
		if n.Type != NodeSensor {
			return fmt.Errorf("node %s: sensor reference on %s node", n.ID, n.Type)
		}
	case RefDevice:
		if n.Type != NodeDevice {
			return fmt.Errorf("node %s: device reference on %s node", n.ID, n.Type)
		}
	}
	return nil
}

// Clone returns a copy with its own LinkedTo slice.
func (n TopologyNode) Clone() TopologyNode {
	n.LinkedTo = append([]string(nil), n.LinkedTo...)
	if n.Status != nil {
		status := *n.Status
		n.Status = &status
	}
	return n
}

// ResolvedNode is a topology node joined with the current state of the
// entity it references. Exactly one of Sensor and Device is set when the
// reference resolves.
type ResolvedNode struct {
	TopologyNode
	Sensor *Sensor
	Device *Device
}

// Label is the text drawn under the node on the map.
func (n ResolvedNode) Label() string {
	switch {
	case n.Sensor != nil:
		return n.Sensor.Name
	case n.Device != nil:
		return n.Device.Name
	default:
		return ""
	}
}

func (n ResolvedNode) MarshalJSON() ([]byte, error) {
	type node struct {
		ID       string      `json:"id"`
		Type     NodeType    `json:"type"`
		X        float64     `json:"x"`
		Y        float64     `json:"y"`
		Status   *NodeStatus `json:"status,omitempty"`
		LinkedTo []string    `json:"linked_to"`
		Sensor   *Sensor     `json:"sensor,omitempty"`
		Device   *Device     `json:"device,omitempty"`
	}
	linked := n.LinkedTo
	if linked == nil {
		linked = []string{}
	}
	return json.Marshal(node{
		ID:       n.ID,
		Type:     n.Type,
		X:        n.X,
		Y:        n.Y,
		Status:   n.Status,
		LinkedTo: linked,
		Sensor:   n.Sensor,
		Device:   n.Device,
	})
}
