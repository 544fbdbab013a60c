package render

import (
	"image/color"
	"image/png"
	"io"

	"github.com/water-iq/monitor/internal/model"
)

// DefaultMapSize matches the dashboard's map widget.
var DefaultMapSize = Size{Width: 600, Height: 400}

var (
	edgeNormal  = color.RGBA{0x94, 0xA3, 0xB8, 0xFF}
	edgeWarning = color.RGBA{0xFC, 0xD3, 0x4D, 0xFF}
	edgeError   = color.RGBA{0xEF, 0x44, 0x44, 0xFF}
	labelColor  = color.RGBA{0x37, 0x41, 0x51, 0xFF}
)

type edge struct {
	from, to model.ResolvedNode
	width    float64
	color    color.RGBA
}

// Map draws every resolvable edge, then every node, and encodes a PNG.
func Map(w io.Writer, nodes []model.ResolvedNode, size Size) error {
	size = size.Normalize(DefaultMapSize)
	c := newCanvas(size)

	for _, e := range edges(nodes) {
		c.line(e.from.X, e.from.Y, e.to.X, e.to.Y, e.width, e.color)
	}
	for _, node := range nodes {
		drawNode(c, node)
	}
	return png.Encode(w, c.img)
}

// edges resolves linkedTo ids against nodes. Ids without a node are skipped.
func edges(nodes []model.ResolvedNode) []edge {
	byID := make(map[string]model.ResolvedNode, len(nodes))
	for _, node := range nodes {
		byID[node.ID] = node
	}
	out := make([]edge, 0, len(nodes))
	for _, node := range nodes {
		for _, targetID := range node.LinkedTo {
			target, ok := byID[targetID]
			if !ok {
				continue
			}
			e := edge{from: node, to: target, width: 2, color: edgeNormal}
			switch {
			case hasStatus(node, model.NodeWarning) || hasStatus(target, model.NodeWarning):
				e.width, e.color = 3, edgeWarning
			case hasStatus(node, model.NodeError) || hasStatus(target, model.NodeError):
				e.width, e.color = 3, edgeError
			}
			out = append(out, e)
		}
	}
	return out
}

func drawNode(c *canvas, node model.ResolvedNode) {
	radius := 12.0
	if node.Type == model.NodeTank {
		radius = 16
	}
	c.fillCircle(node.X, node.Y, radius, nodeColor(node))
	c.strokeCircle(node.X, node.Y, radius, 2, white)
	c.text(nodeGlyph(node.Type), node.X, node.Y+4, alignCenter, white)
	if label := node.Label(); label != "" {
		c.text(label, node.X, node.Y+radius+12, alignCenter, labelColor)
	}
}

func nodeColor(node model.ResolvedNode) color.RGBA {
	switch {
	case hasStatus(node, model.NodeWarning):
		return color.RGBA{0xFB, 0xBF, 0x24, 0xFF}
	case hasStatus(node, model.NodeError):
		return color.RGBA{0xEF, 0x44, 0x44, 0xFF}
	}
	switch node.Type {
	case model.NodeSensor:
		return color.RGBA{0x08, 0x91, 0xB2, 0xFF}
	case model.NodeDevice:
		return color.RGBA{0x8B, 0x5C, 0xF6, 0xFF}
	case model.NodeJunction:
		return color.RGBA{0x94, 0xA3, 0xB8, 0xFF}
	case model.NodeTank:
		return color.RGBA{0x0D, 0x94, 0x88, 0xFF}
	default:
		return defaultBlue
	}
}

func nodeGlyph(t model.NodeType) string {
	switch t {
	case model.NodeSensor:
		return "S"
	case model.NodeDevice:
		return "D"
	case model.NodeJunction:
		return "J"
	case model.NodeTank:
		return "T"
	default:
		return ""
	}
}

func hasStatus(node model.ResolvedNode, status model.NodeStatus) bool {
	return node.Status != nil && *node.Status == status
}
