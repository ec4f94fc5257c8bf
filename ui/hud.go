package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Sheep        int
	Wolves       int
	GrassGrown   int
	GrassPatches int
	GrassEnabled bool
	Tick         int
	Speed        int
	FPS          int32
	Paused       bool
	Seed         int64
	Extinct      []string
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD at (x, y) and returns the Y below it.
func (h *HUD) Draw(x, y, width int32, data HUDData) int32 {
	r := h.renderer

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 26

	y = r.DrawLabelValue(x, y, "Sheep", fmt.Sprintf("%d", data.Sheep))
	y = r.DrawLabelValue(x, y, "Wolves", fmt.Sprintf("%d", data.Wolves))
	if data.GrassEnabled && data.GrassPatches > 0 {
		y = r.DrawBar(x, y, "Grass", float32(data.GrassGrown)/float32(data.GrassPatches), width)
	} else {
		y = r.DrawLabelValue(x, y, "Grass", "off")
	}
	y += 4

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		x, y, r.Theme.FontSize, rl.LightGray,
	)
	y += r.Theme.LineHeight
	rl.DrawText(fmt.Sprintf("Seed: %d", data.Seed), x, y, r.Theme.FontSize, rl.Gray)
	y += r.Theme.LineHeight

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, x, y, 16, rl.Yellow)
	y += 20

	for _, name := range data.Extinct {
		rl.DrawText(name+" extinct", x, y, r.Theme.FontSize, r.Theme.BarFillLow)
		y += r.Theme.LineHeight
	}

	return y
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(x, screenHeight int32, controls string) {
	rl.DrawText(controls, x, screenHeight-22, 12, rl.Gray)
}
