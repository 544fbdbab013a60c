package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/water-iq/monitor/internal/model"
)

func node(id string, typ model.NodeType, x, y float64, links ...string) model.ResolvedNode {
	return model.ResolvedNode{TopologyNode: model.TopologyNode{ID: id, Type: typ, X: x, Y: y, LinkedTo: links}}
}

func TestEdgesSkipDanglingLinks(t *testing.T) {
	warning := model.NodeWarning
	tank := node("n6", model.NodeTank, 420, 100)
	tank.Status = &warning
	nodes := []model.ResolvedNode{
		node("n1", model.NodeJunction, 120, 100, "n2", "ghost"),
		node("n2", model.NodeSensor, 220, 100, "n6"),
		tank,
	}

	got := edges(nodes)
	if len(got) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(got))
	}
	if got[0].from.ID != "n1" || got[0].to.ID != "n2" || got[0].width != 2 {
		t.Fatalf("unexpected first edge %+v", got[0])
	}
	if got[1].to.ID != "n6" || got[1].color != edgeWarning || got[1].width != 3 {
		t.Fatalf("expected warning edge into tank, got %+v", got[1])
	}
}

func TestMapEncodesPNGWithDanglingLink(t *testing.T) {
	nodes := []model.ResolvedNode{
		node("n1", model.NodeJunction, 120, 100, "missing"),
		node("n2", model.NodeDevice, 5000, -20, "n1"),
	}
	nodes[1].Device = &model.Device{ID: "d1", Name: "Main Pump"}

	var buf bytes.Buffer
	if err := Map(&buf, nodes, Size{}); err != nil {
		t.Fatalf("Map() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultMapSize.Width || b.Dy() != DefaultMapSize.Height {
		t.Fatalf("size = %v, want %+v", b, DefaultMapSize)
	}
}

func TestChartHandlesEmptyAndZeroSeries(t *testing.T) {
	tests := []struct {
		name string
		data model.ChartData
	}{
		{name: "no labels", data: model.ChartData{}},
		{name: "all zero", data: model.ChartData{Labels: []string{"Mon", "Tue"}, Datasets: []model.Series{{Label: "x", Data: []float64{0, 0}}}}},
		{name: "short series", data: model.ChartData{Labels: []string{"Mon", "Tue", "Wed"}, Datasets: []model.Series{{Label: "x", Data: []float64{5}, BorderColor: "bad"}}}},
		{name: "long series", data: model.ChartData{Labels: []string{"Mon"}, Datasets: []model.Series{{Label: "x", Data: []float64{5, 9, 12}, BorderColor: "#0891B2"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Chart(&buf, tt.data, "Water Usage", Size{Width: 320, Height: 200}); err != nil {
				t.Fatalf("Chart() error: %v", err)
			}
			if _, err := png.Decode(&buf); err != nil {
				t.Fatalf("decode png: %v", err)
			}
		})
	}
}

func TestSizeNormalize(t *testing.T) {
	got := Size{Width: -1, Height: 1 << 20}.Normalize(DefaultChartSize)
	if got.Width != DefaultChartSize.Width || got.Height != maxDimension {
		t.Fatalf("Normalize() = %+v", got)
	}
}

func TestParseHex(t *testing.T) {
	if got := parseHex("#0891B2"); got.R != 0x08 || got.G != 0x91 || got.B != 0xB2 {
		t.Fatalf("parseHex() = %+v", got)
	}
	if got := parseHex("rgba(1,2,3,0.1)"); got != defaultBlue {
		t.Fatalf("expected fallback, got %+v", got)
	}
}
