// Package viewer shows a running model in a raylib window with a raygui
// control panel.
package viewer

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wolfsheep/components"
	"github.com/pthm-cable/wolfsheep/config"
	"github.com/pthm-cable/wolfsheep/game"
	"github.com/pthm-cable/wolfsheep/renderer"
	"github.com/pthm-cable/wolfsheep/telemetry"
	"github.com/pthm-cable/wolfsheep/ui"
)

const (
	panelWidth  = 280
	chartHeight = 150
	minHeight   = 640
)

// Viewer runs a model inside a raylib window. It must be created after
// rl.InitWindow.
type Viewer struct {
	model   *game.Model
	cfg     *config.Config // config of the model on screen
	opts    game.Options
	params  *config.Config // edited by the controls, applied on reset
	history *telemetry.MetricLog

	grid      *renderer.GridRenderer
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	chart     *ui.PopulationChart
	inspector *ui.Inspector

	paused bool
	speed  int
}

// ScreenSize returns the window size needed to show cfg's grid and panel.
func ScreenSize(cfg *config.Config) (w, h int32) {
	gw := int32(cfg.World.Width * cfg.Screen.CellSize)
	gh := int32(cfg.World.Height * cfg.Screen.CellSize)
	return gw + panelWidth, max(gh, minHeight)
}

// New builds a model from cfg and the widgets that display it.
func New(cfg *config.Config, opts game.Options) (*Viewer, error) {
	v := &Viewer{
		opts:   opts,
		params: cfg.Clone(),
		speed:  1,
	}
	if err := v.reset(); err != nil {
		return nil, err
	}
	return v, nil
}

// Model returns the model currently on screen.
func (v *Viewer) Model() *game.Model {
	return v.model
}

// Tick returns the current model's step count.
func (v *Viewer) Tick() int {
	return v.model.Tick()
}

func (v *Viewer) reset() error {
	history := telemetry.NewMetricLog()
	opts := v.opts
	opts.Recorder = telemetry.Tee(history, v.opts.Recorder)
	if v.model != nil {
		// A fresh run gets a fresh seed so resets are not replays.
		opts.Seed = v.model.Seed() + 1
		v.opts.Seed = opts.Seed
	}

	m, err := game.NewModel(v.params, opts)
	if err != nil {
		return err
	}
	v.model = m
	v.cfg = m.Config()
	v.history = history

	cfg := v.cfg
	v.grid = renderer.NewGridRenderer(cfg.World.Width, cfg.World.Height, cfg.Screen.CellSize, 0, 0)
	gw, _ := v.grid.Size()
	px := gw + 10
	v.hud = ui.NewHUD()
	v.controls = ui.NewControlsPanel(px, 0, panelWidth-20)
	v.chart = ui.NewPopulationChart(px, 0, panelWidth-20, chartHeight)
	v.inspector = ui.NewInspector(180)
	return nil
}

// Update handles keyboard input and advances the model.
func (v *Viewer) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyRight) && v.paused {
		v.model.Step()
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		v.speed = min(v.speed+1, 20)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		v.speed = max(v.speed-1, 1)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.resetOrLog()
	}

	if v.paused {
		return
	}
	for i := 0; i < v.speed; i++ {
		v.model.Step()
	}
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Color{R: 15, G: 18, B: 22, A: 255})

	v.drawGrid()

	gw, _ := v.grid.Size()
	px := gw + 10
	m := v.model
	cfg := v.cfg

	var extinct []string
	for _, b := range []components.Breed{components.BreedSheep, components.BreedWolf} {
		if m.Extinct(b) {
			extinct = append(extinct, b.String())
		}
	}
	y := v.hud.Draw(px, 10, panelWidth-20, ui.HUDData{
		Title:        "Wolf Sheep Predation",
		Sheep:        m.Count(components.BreedSheep),
		Wolves:       m.Count(components.BreedWolf),
		GrassGrown:   m.GrownGrass(),
		GrassPatches: m.Count(components.BreedGrass),
		GrassEnabled: cfg.Grass.Enabled,
		Tick:         m.Tick(),
		Speed:        v.speed,
		FPS:          rl.GetFPS(),
		Paused:       v.paused,
		Seed:         m.Seed(),
		Extinct:      extinct,
	})

	v.chart.SetPosition(px, y+4)
	series := []ui.Series{
		{Label: components.BreedWolf.String(), Values: v.history.Series(components.BreedWolf.String()), Color: renderer.WolfColor},
		{Label: components.BreedSheep.String(), Values: v.history.Series(components.BreedSheep.String()), Color: renderer.SheepColor},
	}
	if cfg.Grass.Enabled {
		series = append(series, ui.Series{Label: components.BreedGrass.String(), Values: v.history.Series(components.BreedGrass.String()), Color: renderer.GrassGrownColor})
	}
	v.chart.Draw(series)

	v.controls.SetPosition(px, y+chartHeight+14)
	act, _ := v.controls.Draw(v.params, v.paused, v.speed)
	v.apply(act)

	v.drawHover()

	_, sh := ScreenSize(cfg)
	v.hud.DrawControls(px, sh, "[Space] pause  [Right] step  [Up/Down] speed  [R] reset")
}

func (v *Viewer) apply(act ui.ControlActions) {
	v.speed = max(1, act.Speed)
	if act.TogglePause {
		v.paused = !v.paused
	}
	if act.Step {
		v.paused = true
		v.model.Step()
	}
	if act.Reset {
		v.resetOrLog()
	}
}

func (v *Viewer) resetOrLog() {
	if err := v.reset(); err != nil {
		slog.Error("failed to reset model", "error", err)
	}
}

func (v *Viewer) drawGrid() {
	v.grid.DrawBackground()
	v.model.EachEntity(func(e game.EntityView) {
		switch e.Breed {
		case components.BreedGrass:
			if v.cfg.Grass.Enabled {
				v.grid.DrawGrass(e.X, e.Y, e.FullyGrown)
			}
		case components.BreedSheep:
			v.grid.DrawSheep(e.X, e.Y)
		case components.BreedWolf:
			v.grid.DrawWolf(e.X, e.Y)
		}
	})
}

func (v *Viewer) drawHover() {
	mouse := rl.GetMousePosition()
	x, y, ok := v.grid.CellAt(mouse)
	if !ok {
		return
	}
	v.grid.DrawHighlight(x, y, rl.Yellow)

	contents := v.model.ContentsAt(x, y)
	items := make([]any, 0, len(contents))
	for _, e := range contents {
		if e.Breed == components.BreedGrass && !v.cfg.Grass.Enabled {
			continue
		}
		items = append(items, e)
	}
	if len(items) == 0 {
		return
	}
	v.inspector.Draw(int32(mouse.X)+16, int32(mouse.Y)+16, fmt.Sprintf("Cell (%d, %d)", x, y), items, v.entitySection)
}

// entitySection describes how one agent appears in the inspector.
func (v *Viewer) entitySection(item any) ui.SectionDescriptor {
	e := item.(game.EntityView)
	gain := v.cfg.Sheep.GainFromFood
	if e.Breed == components.BreedWolf {
		gain = v.cfg.Wolf.GainFromFood
	}
	isAnimal := func(any) bool { return e.Breed.Animal() }
	return ui.SectionDescriptor{
		ID:    fmt.Sprintf("agent-%d", e.ID),
		Title: fmt.Sprintf("%s #%d", e.Breed, e.ID),
		Fields: []ui.FieldDescriptor{
			{
				ID:      "energy",
				Label:   "Energy",
				Widget:  ui.WidgetEnergyBar,
				Range:   ui.FieldRange{Max: float32(4 * gain)},
				Visible: isAnimal,
				Getter:  func(d any) float32 { return float32(d.(game.EntityView).Energy) },
			},
			{
				ID:      "grown",
				Label:   "Grown",
				Widget:  ui.WidgetText,
				Visible: func(any) bool { return !e.Breed.Animal() },
				TextGetter: func(d any) string {
					if d.(game.EntityView).FullyGrown {
						return "yes"
					}
					return "no"
				},
			},
		},
	}
}
