// Package renderer draws the wolf-sheep grid with raylib primitives.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Palette colors for each layer.
var (
	BackgroundColor = rl.RayWhite
	GridLineColor   = rl.Color{R: 225, G: 225, B: 225, A: 255}
	GrassGrownColor = rl.Color{R: 60, G: 160, B: 60, A: 255}
	GrassBareColor  = rl.White
	SheepColor      = rl.Color{R: 128, G: 128, B: 128, A: 255}
	WolfColor       = rl.Color{R: 220, G: 30, B: 30, A: 255}
)

// Sizes relative to one cell.
const (
	grassFill   = 0.9
	sheepRadius = 0.5
	wolfRadius  = 0.3
)

// GridRenderer maps grid cells to screen pixels and draws agents.
// Layers are grass, then sheep, then wolves; callers draw in that order.
type GridRenderer struct {
	originX, originY int32
	cellSize         int32
	width, height    int
}

// NewGridRenderer creates a renderer for a width x height grid whose top-left
// corner sits at (originX, originY) on screen.
func NewGridRenderer(width, height, cellSize int, originX, originY int32) *GridRenderer {
	if cellSize < 1 {
		cellSize = 1
	}
	return &GridRenderer{
		originX:  originX,
		originY:  originY,
		cellSize: int32(cellSize),
		width:    width,
		height:   height,
	}
}

// Size returns the grid's extent in pixels.
func (r *GridRenderer) Size() (w, h int32) {
	return int32(r.width) * r.cellSize, int32(r.height) * r.cellSize
}

// CellSize returns the edge length of one cell in pixels.
func (r *GridRenderer) CellSize() int32 {
	return r.cellSize
}

// CellAt returns the cell under a screen point.
func (r *GridRenderer) CellAt(p rl.Vector2) (x, y int, ok bool) {
	px := int32(p.X) - r.originX
	py := int32(p.Y) - r.originY
	if px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y = int(px/r.cellSize), int(py/r.cellSize)
	if x >= r.width || y >= r.height {
		return 0, 0, false
	}
	return x, y, true
}

// DrawBackground clears the grid area and draws cell borders.
func (r *GridRenderer) DrawBackground() {
	w, h := r.Size()
	rl.DrawRectangle(r.originX, r.originY, w, h, BackgroundColor)
	if r.cellSize < 4 {
		return
	}
	for x := int32(0); x <= int32(r.width); x++ {
		sx := r.originX + x*r.cellSize
		rl.DrawLine(sx, r.originY, sx, r.originY+h, GridLineColor)
	}
	for y := int32(0); y <= int32(r.height); y++ {
		sy := r.originY + y*r.cellSize
		rl.DrawLine(r.originX, sy, r.originX+w, sy, GridLineColor)
	}
}

// DrawGrass fills most of a cell, green when the patch can be eaten.
func (r *GridRenderer) DrawGrass(x, y int, grown bool) {
	c := GrassBareColor
	if grown {
		c = GrassGrownColor
	}
	size := int32(float32(r.cellSize) * grassFill)
	inset := (r.cellSize - size) / 2
	sx, sy := r.cellOrigin(x, y)
	rl.DrawRectangle(sx+inset, sy+inset, size, size, c)
}

// DrawSheep draws a sheep as a large grey disc.
func (r *GridRenderer) DrawSheep(x, y int) {
	r.drawDisc(x, y, sheepRadius, SheepColor)
}

// DrawWolf draws a wolf as a smaller red disc above any sheep.
func (r *GridRenderer) DrawWolf(x, y int) {
	r.drawDisc(x, y, wolfRadius, WolfColor)
}

// DrawHighlight outlines the cell at (x, y).
func (r *GridRenderer) DrawHighlight(x, y int, c rl.Color) {
	sx, sy := r.cellOrigin(x, y)
	rl.DrawRectangleLines(sx, sy, r.cellSize, r.cellSize, c)
}

func (r *GridRenderer) drawDisc(x, y int, radius float32, c rl.Color) {
	sx, sy := r.cellOrigin(x, y)
	half := r.cellSize / 2
	rl.DrawCircle(sx+half, sy+half, radius*float32(r.cellSize), c)
}

func (r *GridRenderer) cellOrigin(x, y int) (int32, int32) {
	return r.originX + int32(x)*r.cellSize, r.originY + int32(y)*r.cellSize
}
