package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTopologyNodeValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    TopologyNode
		wantErr bool
	}{
		{name: "junction without ref", node: TopologyNode{ID: "n1", Type: NodeJunction, Ref: NoRef()}},
		{name: "sensor ref on sensor", node: TopologyNode{ID: "n2", Type: NodeSensor, Ref: SensorRef("s1")}},
		{name: "device ref on device", node: TopologyNode{ID: "n3", Type: NodeDevice, Ref: DeviceRef("d1")}},
		{name: "device ref on tank", node: TopologyNode{ID: "n6", Type: NodeTank, Ref: DeviceRef("d1")}, wantErr: true},
		{name: "sensor ref on device", node: TopologyNode{ID: "n3", Type: NodeDevice, Ref: SensorRef("s1")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTopologyNodeCloneDetachesLinks(t *testing.T) {
	node := TopologyNode{ID: "n1", LinkedTo: []string{"n2"}}
	clone := node.Clone()
	clone.LinkedTo[0] = "n9"
	if node.LinkedTo[0] != "n2" {
		t.Fatalf("clone shares LinkedTo with original")
	}
}

func TestResolvedNodeJSON(t *testing.T) {
	node := ResolvedNode{
		TopologyNode: TopologyNode{ID: "n3", Type: NodeDevice, Ref: DeviceRef("d1")},
		Device:       &Device{ID: "d1", Name: "Main Pump", Status: DeviceOff},
	}
	body, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(body)
	if !strings.Contains(got, `"linked_to":[]`) {
		t.Fatalf("expected empty linked_to array, got %s", got)
	}
	if !strings.Contains(got, `"device":{"id":"d1"`) {
		t.Fatalf("expected embedded device, got %s", got)
	}
	if strings.Contains(got, `"sensor"`) {
		t.Fatalf("unexpected sensor field in %s", got)
	}
	if node.Label() != "Main Pump" {
		t.Fatalf("Label() = %q, want %q", node.Label(), "Main Pump")
	}
}
