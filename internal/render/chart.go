package render

import (
	"image/color"
	"image/png"
	"io"
	"strconv"

	"github.com/water-iq/monitor/internal/model"
)

// DefaultChartSize matches the dashboard's usage chart widget.
var DefaultChartSize = Size{Width: 500, Height: 300}

const (
	chartPadding = 40
	yAxisSteps   = 5
	legendStep   = 80
)

var (
	axisColor  = color.RGBA{0xE5, 0xE7, 0xEB, 0xFF}
	gridColor  = color.RGBA{0xF3, 0xF4, 0xF6, 0xFF}
	tickColor  = color.RGBA{0x6B, 0x72, 0x80, 0xFF}
	titleColor = color.RGBA{0x1F, 0x29, 0x37, 0xFF}
)

// Chart draws one polyline per series over a shared label axis with 10%
// headroom above the largest value, and encodes a PNG. Series with no
// positive values produce axes only.
func Chart(w io.Writer, data model.ChartData, title string, size Size) error {
	size = size.Normalize(DefaultChartSize)
	c := newCanvas(size)

	width, height := float64(size.Width), float64(size.Height)
	chartWidth := width - 2*chartPadding
	chartHeight := height - 2*chartPadding
	bottom := height - chartPadding

	if title != "" {
		c.text(title, width/2, chartPadding/2, alignCenter, titleColor)
	}
	c.line(chartPadding, chartPadding, chartPadding, bottom, 1, axisColor)
	c.line(chartPadding, bottom, width-chartPadding, bottom, 1, axisColor)

	maxValue := seriesMax(data) * 1.1
	for i := 0; i <= yAxisSteps; i++ {
		y := bottom - float64(i)*(chartHeight/yAxisSteps)
		grid := gridColor
		if i == 0 {
			grid = axisColor
		}
		c.line(chartPadding, y, width-chartPadding, y, 1, grid)
		step := maxValue / yAxisSteps * float64(i)
		c.text(strconv.Itoa(int(step+0.5)), chartPadding-5, y+3, alignRight, tickColor)
	}

	if len(data.Labels) == 0 {
		return png.Encode(w, c.img)
	}
	slot := chartWidth / float64(len(data.Labels))
	xAt := func(i int) float64 { return chartPadding + float64(i)*slot + slot/2 }
	for i, label := range data.Labels {
		c.text(label, xAt(i), bottom+15, alignCenter, tickColor)
	}

	if maxValue > 0 {
		for _, series := range data.Datasets {
			stroke := parseHex(series.BorderColor)
			points := len(series.Data)
			if points > len(data.Labels) {
				points = len(data.Labels)
			}
			yAt := func(v float64) float64 { return bottom - v/maxValue*chartHeight }
			for i := 1; i < points; i++ {
				c.line(xAt(i-1), yAt(series.Data[i-1]), xAt(i), yAt(series.Data[i]), 2, stroke)
			}
			for i := 0; i < points; i++ {
				c.fillCircle(xAt(i), yAt(series.Data[i]), 4, stroke)
				c.strokeCircle(xAt(i), yAt(series.Data[i]), 4, 2, white)
			}
		}
	}

	for i, series := range data.Datasets {
		x := chartPadding + i*legendStep
		c.fillRect(x, chartPadding-15, 10, 10, parseHex(series.BorderColor))
		c.text(series.Label, float64(x+15), chartPadding-7, alignLeft, labelColor)
	}
	return png.Encode(w, c.img)
}

func seriesMax(data model.ChartData) float64 {
	var out float64
	for _, series := range data.Datasets {
		for _, v := range series.Data {
			if v > out {
				out = v
			}
		}
	}
	return out
}
