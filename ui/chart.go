package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Series is one labelled line in a PopulationChart.
type Series struct {
	Label  string
	Values []float64
	Color  rl.Color
}

// PopulationChart draws population counts over time as line plots.
type PopulationChart struct {
	renderer      *Renderer
	x, y          int32
	width, height int32
}

// NewPopulationChart creates a chart occupying the given rectangle.
func NewPopulationChart(x, y, width, height int32) *PopulationChart {
	return &PopulationChart{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// SetPosition updates the chart position.
func (p *PopulationChart) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the most recent samples of every series that fit the width.
func (p *PopulationChart) Draw(series []Series) {
	r := p.renderer
	r.DrawPanel(p.x, p.y, p.width, p.height)

	pad := r.Theme.Padding
	plotX := p.x + pad
	plotY := p.y + pad + r.Theme.LineHeight
	plotW := p.width - 2*pad
	plotH := p.height - 2*pad - r.Theme.LineHeight
	if plotW < 2 || plotH < 2 {
		return
	}

	peak := 1.0
	for _, s := range series {
		for _, v := range tail(s.Values, int(plotW)) {
			peak = max(peak, v)
		}
	}

	legendX := plotX
	for _, s := range series {
		last := 0.0
		if n := len(s.Values); n > 0 {
			last = s.Values[n-1]
		}
		text := fmt.Sprintf("%s %.0f", s.Label, last)
		rl.DrawText(text, legendX, p.y+pad, r.Theme.FontSize, s.Color)
		legendX += rl.MeasureText(text, r.Theme.FontSize) + 12
	}
	rl.DrawText(fmt.Sprintf("%.0f", peak), plotX+plotW-rl.MeasureText(fmt.Sprintf("%.0f", peak), 10), plotY, 10, rl.Gray)

	for _, s := range series {
		values := tail(s.Values, int(plotW))
		for i := 1; i < len(values); i++ {
			x0 := plotX + int32(i-1)
			x1 := plotX + int32(i)
			y0 := plotY + plotH - int32(values[i-1]/peak*float64(plotH))
			y1 := plotY + plotH - int32(values[i]/peak*float64(plotH))
			rl.DrawLine(x0, y0, x1, y1, s.Color)
		}
	}
}

func tail(values []float64, n int) []float64 {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}
