// Command tui walks the town scene in a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/engine"
	"github.com/lmaccart/hack-rice15/game/motion"
	"github.com/lmaccart/hack-rice15/game/proximity"
	"github.com/lmaccart/hack-rice15/game/world"
	"github.com/lmaccart/hack-rice15/render/ascii"
)

// holdTicks is how long one key press keeps a direction held. Terminals
// report presses, not releases.
const holdTicks = 10

var (
	configDir  = flag.String("config-dir", "configs", "Directory containing scene configurations")
	configName = flag.String("config", "", "Scene configuration to open")
)

// TUI holds the scene and the currently held direction
type TUI struct {
	screen tcell.Screen
	scene  *engine.SceneEngine
	held   motion.Input
	hold   int
	status string
}

// NewTUI builds a scene for cfg drawn on screen
func NewTUI(screen tcell.Screen, cfg *config.SceneConfig) (*TUI, error) {
	scene, err := engine.NewSceneEngine(cfg.Options(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	return &TUI{screen: screen, scene: scene}, nil
}

var keyDirections = map[tcell.Key]motion.Direction{
	tcell.KeyUp:    motion.North,
	tcell.KeyDown:  motion.South,
	tcell.KeyLeft:  motion.West,
	tcell.KeyRight: motion.East,
}

var runeDirections = map[rune]motion.Direction{
	'w': motion.North,
	's': motion.South,
	'a': motion.West,
	'd': motion.East,
	'q': motion.NorthWest,
	'e': motion.NorthEast,
	'z': motion.SouthWest,
	'c': motion.SouthEast,
}

// HandleKey applies a key press and reports whether the program should exit
func (t *TUI) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		if t.scene.CloseOverlay() {
			t.status = "Overlay closed"
		}
		return false
	case tcell.KeyEnter:
		t.inspect()
		return false
	}

	if dir, ok := keyDirections[ev.Key()]; ok {
		t.hold, t.held = holdTicks, motion.InputFor(dir)
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch r := ev.Rune(); r {
	case 'x':
		return true
	case 'i', ' ':
		t.inspect()
	default:
		if dir, ok := runeDirections[r]; ok {
			t.hold, t.held = holdTicks, motion.InputFor(dir)
		}
	}
	return false
}

func (t *TUI) inspect() {
	if t.scene.Inspect() {
		t.status = "Opened " + t.scene.GetInteraction().CurrentLabel
	}
}

// Advance runs one fixed tick with the held input
func (t *TUI) Advance() {
	in := motion.Input{}
	if t.hold > 0 {
		in = t.held
		t.hold--
	}
	t.scene.Tick(in, engine.TickDuration)
}

// Draw renders the part of the map around the actor and a status line
func (t *TUI) Draw() {
	t.screen.Clear()
	width, height := t.screen.Size()
	viewRows := height - 2
	if viewRows < 1 || width < 1 {
		t.screen.Show()
		return
	}

	m := t.scene.GetMap()
	actor := t.scene.GetActorPosition()
	center := world.CellAt(actor, m.TileSize)
	left := center.Col - width/2
	top := center.Row - viewRows/2

	for y := 0; y < viewRows; y++ {
		for x := 0; x < width; x++ {
			c := world.Cell{Col: left + x, Row: top + y}
			if c.Col < 0 || c.Row < 0 || c.Col >= m.Cols || c.Row >= m.Rows {
				continue
			}
			glyph := ascii.CellGlyph(m, c)
			if c == center {
				glyph = ascii.Actor
			}
			t.screen.SetContent(x, y, glyph, nil, glyphStyle(glyph))
		}
	}

	state := t.scene.GetInteraction()
	drawText(t.screen, 0, height-2, tcell.StyleDefault.Bold(true), statusLine(state, t.status))
	drawText(t.screen, 0, height-1, tcell.StyleDefault.Dim(true),
		"arrows/wasd: walk  qezc: diagonals  enter/i: inspect  esc: close  x: quit")
	t.screen.Show()
}

// statusLine describes the interaction state
func statusLine(state proximity.InteractionState, last string) string {
	switch state.Phase {
	case proximity.OverlayOpen:
		return fmt.Sprintf("[%s] %s (esc to close)", state.OverlayID, state.CurrentLabel)
	case proximity.NearHotspot:
		return state.Affordance + " (enter)"
	}
	return last
}

func glyphStyle(glyph rune) tcell.Style {
	style := tcell.StyleDefault
	switch glyph {
	case ascii.Actor:
		return style.Foreground(tcell.ColorRed).Bold(true)
	case ascii.Border:
		return style.Foreground(tcell.ColorGray)
	case ascii.Grass:
		return style.Foreground(tcell.ColorGreen)
	case ascii.Path:
		return style.Foreground(tcell.ColorYellow)
	}
	for _, g := range ascii.DecorationGlyphs {
		if g == glyph {
			return style.Foreground(tcell.ColorDarkGreen)
		}
	}
	return style.Foreground(tcell.ColorBlue).Bold(true)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run polls events and ticks the scene until the user quits
func (t *TUI) Run() {
	ticker := time.NewTicker(time.Second / engine.TickRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if t.HandleKey(ev) {
					return
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-ticker.C:
			t.Advance()
			t.Draw()
		}
	}
}

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
	cfg := loadConfig(*configDir, *configName)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	tui, err := NewTUI(screen, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tui.Run()
	screen.Fini()
}
