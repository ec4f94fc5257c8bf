package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wolfsheep/config"
)

// ControlActions reports what the user asked for this frame.
type ControlActions struct {
	TogglePause bool
	Step        bool
	Reset       bool
	Speed       int
}

// ControlsPanel renders run controls and the parameter sliders applied on reset.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel, editing params in place, and returns the
// requested actions and the Y below the panel.
func (c *ControlsPanel) Draw(params *config.Config, paused bool, speed int) (ControlActions, int32) {
	act := ControlActions{Speed: speed}
	x := float32(c.x)
	y := float32(c.y)
	w := float32(c.width)
	btnW := (w - 20) / 3

	pauseText := "Pause"
	if paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: btnW, Height: 26}, pauseText) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + btnW + 10, Y: y, Width: btnW, Height: 26}, "Step") {
		act.Step = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(btnW+10), Y: y, Width: btnW, Height: 26}, "Reset") {
		act.Reset = true
	}
	y += 36

	act.Speed = int(c.slider(&y, "Speed", fmt.Sprintf("%dx", speed), float32(speed), 1, 20))
	y += 6

	rl.DrawText("Parameters (apply on reset)", int32(x), int32(y), c.renderer.Theme.HeaderFontSize, c.renderer.Theme.SectionHeader)
	y += 20

	params.Grass.Enabled = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "Grass enabled", params.Grass.Enabled)
	y += 22

	params.Grass.RegrowthTime = c.intSlider(&y, "Grass regrowth time", params.Grass.RegrowthTime, 1, 50)
	params.Population.InitialSheep = c.intSlider(&y, "Initial sheep", params.Population.InitialSheep, 0, 300)
	params.Sheep.Reproduce = c.probSlider(&y, "Sheep reproduction rate", params.Sheep.Reproduce)
	params.Sheep.GainFromFood = c.intSlider(&y, "Sheep gain from food", params.Sheep.GainFromFood, 1, 10)
	params.Population.InitialWolves = c.intSlider(&y, "Initial wolves", params.Population.InitialWolves, 0, 300)
	params.Wolf.Reproduce = c.probSlider(&y, "Wolf reproduction rate", params.Wolf.Reproduce)
	params.Wolf.GainFromFood = c.intSlider(&y, "Wolf gain from food", params.Wolf.GainFromFood, 1, 50)

	return act, int32(y)
}

func (c *ControlsPanel) slider(y *float32, label, value string, v, lo, hi float32) float32 {
	theme := c.renderer.Theme
	rl.DrawText(label, c.x, int32(*y), theme.FontSize, theme.LabelColor)
	*y += 14
	out := gui.SliderBar(
		rl.Rectangle{X: float32(c.x), Y: *y, Width: float32(c.width - 60), Height: 16},
		"", "",
		v, lo, hi,
	)
	rl.DrawText(value, c.x+c.width-52, int32(*y+2), theme.FontSize, theme.ValueColor)
	*y += 24
	return out
}

func (c *ControlsPanel) intSlider(y *float32, label string, v, lo, hi int) int {
	out := int(c.slider(y, label, fmt.Sprintf("%d", v), float32(v), float32(lo), float32(hi)) + 0.5)
	return max(lo, min(hi, out))
}

func (c *ControlsPanel) probSlider(y *float32, label string, v float64) float64 {
	out := c.slider(y, label, fmt.Sprintf("%.2f", v), float32(v), 0.01, 1)
	// Keep the config value exact until the slider is actually moved.
	if out == float32(v) {
		return v
	}
	return float64(int(out*100+0.5)) / 100
}
