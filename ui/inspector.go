package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Inspector lists the contents of the hovered cell using a section descriptor.
type Inspector struct {
	renderer *Renderer
	width    int32
}

// NewInspector creates an inspector panel of the given width.
func NewInspector(width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		width:    width,
	}
}

// Draw renders one section per item below a title, clamped to the screen.
func (in *Inspector) Draw(x, y int32, title string, items []any, section func(item any) SectionDescriptor) {
	r := in.renderer
	pad := r.Theme.Padding

	height := pad*2 + r.Theme.LineHeight
	for _, item := range items {
		height += r.SectionHeight(section(item), item)
	}

	if sw := int32(rl.GetScreenWidth()); x+in.width > sw {
		x = sw - in.width
	}
	if sh := int32(rl.GetScreenHeight()); y+height > sh {
		y = sh - height
	}

	r.DrawPanel(x, y, in.width, height)
	cy := r.DrawSectionHeader(x+pad, y+pad, title)
	for _, item := range items {
		cy = r.DrawSection(x+pad, cy, section(item), item, in.width-2*pad)
	}
}
