// Command desktop opens the town scene in a window.
//
// The scene runs locally on the headless physics substrate; this program
// only turns held keys into input and draws the map, the actor and the
// interaction prompts each frame.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/engine"
	"github.com/lmaccart/hack-rice15/game/motion"
	"github.com/lmaccart/hack-rice15/game/proximity"
	"github.com/lmaccart/hack-rice15/game/world"
)

const (
	screenWidth  = 800
	screenHeight = 600
	hudHeight    = 40
)

var (
	configDir  = flag.String("config-dir", "configs", "Directory containing scene configurations")
	configName = flag.String("config", "", "Scene configuration to open (default: the manager's default)")
)

// Colors for each map layer
var (
	grassColor    = color.RGBA{96, 160, 72, 255}
	pathColor     = color.RGBA{196, 170, 120, 255}
	borderColor   = color.RGBA{60, 60, 60, 255}
	actorColor    = color.RGBA{230, 70, 70, 255}
	hudColor      = color.RGBA{20, 20, 30, 220}
	overlayColor  = color.RGBA{250, 246, 232, 245}
	textColor     = color.White
	darkTextColor = color.RGBA{30, 30, 30, 255}
)

var buildingColors = []color.RGBA{
	{170, 80, 60, 255},
	{70, 110, 170, 255},
	{200, 160, 40, 255},
	{120, 80, 150, 255},
	{60, 140, 130, 255},
	{150, 150, 160, 255},
}

var decorationColors = map[string]color.RGBA{
	"tree":    {30, 100, 40, 255},
	"pine":    {20, 80, 50, 255},
	"bush":    {60, 130, 50, 255},
	"rock":    {130, 130, 120, 255},
	"flowers": {230, 120, 180, 255},
}

// Game is the ebiten game driving one scene
type Game struct {
	cfg       *config.SceneConfig
	scene     *engine.SceneEngine
	substrate *engine.HeadlessSubstrate
	colors    map[string]color.RGBA

	face     *text.GoTextFace
	boldFace *text.GoTextFace
}

// NewGame builds the scene for cfg and loads the UI fonts
func NewGame(cfg *config.SceneConfig) (*Game, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}

	g := &Game{
		cfg:      cfg,
		face:     &text.GoTextFace{Source: regular, Size: 14},
		boldFace: &text.GoTextFace{Source: bold, Size: 20},
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// reset rebuilds the scene, keeping the map seed
func (g *Game) reset() error {
	opts := g.cfg.Options()
	if g.scene != nil {
		opts.Layout.Seed = g.scene.GetMap().Seed
	}

	substrate := engine.NewHeadlessSubstrate(opts.Layout.Cols, opts.Layout.Rows, opts.Layout.TileSize)
	scene, err := engine.NewSceneEngine(opts, substrate)
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}

	g.scene = scene
	g.substrate = substrate
	g.colors = make(map[string]color.RGBA)
	for i, name := range scene.GetMap().Hotspots.Names() {
		g.colors[name] = buildingColors[i%len(buildingColors)]
	}
	return nil
}

// heldInput reads the directional controls
func heldInput() motion.Input {
	return motion.Input{
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}
}

// Update advances the scene by one fixed tick
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyE) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.scene.Inspect()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.scene.CloseOverlay()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			return err
		}
	}

	g.scene.Tick(heldInput(), engine.TickDuration)
	return nil
}

// Draw renders the visible part of the map, the actor and the HUD
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(borderColor)

	m := g.scene.GetMap()
	tile := float64(m.TileSize)
	viewHeight := float64(screenHeight - hudHeight)
	cam := g.substrate.Camera(screenWidth, viewHeight)

	minCol := int(math.Floor(cam.X / tile))
	minRow := int(math.Floor(cam.Y / tile))
	maxCol := int(math.Ceil((cam.X + screenWidth) / tile))
	maxRow := int(math.Ceil((cam.Y + viewHeight) / tile))

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			c := world.Cell{Col: col, Row: row}
			x := float32(float64(col)*tile - cam.X)
			y := float32(float64(row)*tile - cam.Y)
			vector.DrawFilledRect(screen, x, y, float32(tile), float32(tile), g.cellColor(m, c), false)

			if kind, ok := m.DecorationAt(c); ok {
				g.drawDecoration(screen, kind, x, y, float32(tile))
			}
		}
	}

	g.drawLabels(screen, m, cam)
	g.drawActor(screen, cam)
	g.drawHUD(screen)

	state := g.scene.GetInteraction()
	if state.Phase == proximity.OverlayOpen {
		g.drawOverlay(screen, state)
	}
}

// cellColor picks the ground color of a cell
func (g *Game) cellColor(m *world.Map, c world.Cell) color.Color {
	if c.Col <= 0 || c.Row <= 0 || c.Col >= m.Cols-1 || c.Row >= m.Rows-1 {
		return borderColor
	}
	if name, ok := m.HotspotAt(c); ok {
		return g.colors[name]
	}
	if m.IsPath(c) {
		return pathColor
	}
	return grassColor
}

func (g *Game) drawDecoration(screen *ebiten.Image, kind string, x, y, size float32) {
	clr, ok := decorationColors[kind]
	if !ok {
		clr = decorationColors["bush"]
	}
	switch kind {
	case "rock":
		vector.DrawFilledRect(screen, x+size*0.3, y+size*0.4, size*0.4, size*0.3, clr, true)
	case "flowers":
		for i := 0; i < 3; i++ {
			vector.DrawFilledCircle(screen, x+size*(0.3+0.2*float32(i)), y+size*0.6, size*0.08, clr, true)
		}
	default:
		vector.DrawFilledCircle(screen, x+size/2, y+size/2, size*0.35, clr, true)
	}
}

// drawLabels writes each building's label above its footprint
func (g *Game) drawLabels(screen *ebiten.Image, m *world.Map, cam world.Point) {
	for _, h := range m.Hotspots.All() {
		op := &text.DrawOptions{}
		op.GeoM.Translate(h.CenterX-cam.X, h.CenterY-h.Height/2-cam.Y-4)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignEnd
		op.ColorScale.ScaleWithColor(textColor)
		text.Draw(screen, h.Label, g.face, op)
	}
}

// drawActor draws the actor body with a marker on its facing side
func (g *Game) drawActor(screen *ebiten.Image, cam world.Point) {
	pos := g.scene.GetActorPosition()
	x := float32(pos.X - cam.X)
	y := float32(pos.Y - cam.Y)
	half := float32(engine.ActorSize / 2)

	// Bob while walking
	if _, frame := g.substrate.Animation(); g.scene.GetState().Actor.Motion.Walking && frame%2 == 1 {
		y -= 2
	}
	vector.DrawFilledRect(screen, x-half, y-half, half*2, half*2, actorColor, true)

	dx, dy := facingOffset(g.scene.GetState().Actor.Motion.Facing)
	vector.DrawFilledCircle(screen, x+dx*half*0.6, y+dy*half*0.6, 4, textColor, true)
}

// facingOffset returns the unit offset of a facing direction
func facingOffset(d motion.Direction) (float32, float32) {
	in := motion.InputFor(d)
	var dx, dy float32
	if in.Left {
		dx = -1
	} else if in.Right {
		dx = 1
	}
	if in.Up {
		dy = -1
	} else if in.Down {
		dy = 1
	}
	return dx, dy
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	top := float32(screenHeight - hudHeight)
	vector.DrawFilledRect(screen, 0, top, screenWidth, hudHeight, hudColor, false)

	msg := "Arrows/WASD: Walk | R: Reset"
	if state := g.scene.GetInteraction(); state.Affordance != "" {
		msg = state.Affordance + " (E)"
	} else if state.Phase == proximity.OverlayOpen {
		msg = "Esc: Close"
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(12, float64(top)+12)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, msg, g.face, op)

	pos := g.scene.GetActorPosition()
	coords := fmt.Sprintf("(%.0f, %.0f)  seed %s", pos.X, pos.Y, g.scene.GetMap().Seed)
	op = &text.DrawOptions{}
	op.GeoM.Translate(screenWidth-12, float64(top)+12)
	op.PrimaryAlign = text.AlignEnd
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, coords, g.face, op)
}

// drawOverlay draws the panel of the open building
func (g *Game) drawOverlay(screen *ebiten.Image, state proximity.InteractionState) {
	const margin = 80
	w := float32(screenWidth - 2*margin)
	h := float32(screenHeight - hudHeight - 2*margin)
	vector.DrawFilledRect(screen, margin, margin, w, h, overlayColor, false)
	vector.StrokeRect(screen, margin, margin, w, h, 3, g.colors[state.ActiveOverlay], false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(margin+24, margin+24)
	op.ColorScale.ScaleWithColor(darkTextColor)
	text.Draw(screen, state.CurrentLabel, g.boldFace, op)

	op = &text.DrawOptions{}
	op.GeoM.Translate(margin+24, margin+64)
	op.LineSpacing = 20
	op.ColorScale.ScaleWithColor(darkTextColor)
	text.Draw(screen, fmt.Sprintf("Overlay: %s\n\nPress Esc to close.", state.OverlayID), g.face, op)
}

// Layout returns the game screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// loadConfig opens the named config, the manager's default, or the built-in default
func loadConfig(dir, name string) *config.SceneConfig {
	manager, err := config.NewManager(dir)
	if err != nil {
		log.Printf("Using built-in scene: %v", err)
		return config.DefaultConfig()
	}
	if name == "" {
		return manager.GetDefault()
	}
	cfg, err := manager.LoadConfig(name)
	if err != nil {
		log.Printf("Failed to load config %s, using default: %v", name, err)
		return manager.GetDefault()
	}
	return cfg
}

func main() {
	flag.Parse()

	game, err := NewGame(loadConfig(*configDir, *configName))
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Hack Rice Town - " + game.cfg.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(engine.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
