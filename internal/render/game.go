// Package render is the desktop front end: an ebiten.Game that steps the
// engine once per ebiten update and draws the latest snapshot with vector
// shapes.
package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/amalg/cupid-panda/internal/game"
	"github.com/amalg/cupid-panda/internal/tilemap"
)

// EventSink receives the events of every tick, e.g. a sound player.
type EventSink interface {
	Play(events []game.Event)
}

// Game adapts the engine to ebiten's Update/Draw/Layout loop.
type Game struct {
	engine  *game.Engine
	terrain *tilemap.Map
	sink    EventSink
	dt      time.Duration

	snap game.Snapshot
}

// NewGame wires the engine to ebiten. sink may be nil.
func NewGame(engine *game.Engine, terrain *tilemap.Map, sink EventSink) *Game {
	g := &Game{
		engine:  engine,
		terrain: terrain,
		sink:    sink,
		dt:      time.Second / time.Duration(ebiten.TPS()),
		snap:    engine.Snapshot(),
	}
	engine.OnTick(g.observe)
	return g
}

// observe runs synchronously inside engine.Step.
func (g *Game) observe(s game.Snapshot) {
	g.snap = s
	if g.sink != nil && len(s.Events) > 0 {
		g.sink.Play(s.Events)
	}
}

// Update advances the session by one fixed step.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.snap.Status == game.StatusOver && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.engine.Reset()
	}
	g.engine.Step(g.dt, keyboard{})
	return nil
}

// Draw paints the terrain, the actors and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)

	g.drawTerrain(screen)
	for _, p := range g.snap.Pandas {
		drawPanda(screen, p)
	}
	drawPlayer(screen, g.snap.Player)
	for _, s := range g.snap.Storks {
		drawStork(screen, s)
	}

	ebitenutil.DebugPrint(screen, hudText(g.snap))

	if g.snap.Status == game.StatusOver {
		w, h := g.Layout(0, 0)
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{0, 0, 0, 0xa0}, false)
		ebitenutil.DebugPrintAt(screen, overText(g.snap.Reason), w/2-90, h/2-20)
	}
}

// Layout keeps the logical screen at the configured size; ebiten scales it
// to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.engine.Config.ScreenWidth), int(g.engine.Config.ScreenHeight)
}

func (g *Game) drawTerrain(screen *ebiten.Image) {
	m := g.terrain
	if m == nil {
		return
	}
	ts := float32(m.TileSize)
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			tile := m.Palette[m.At(col, row)]
			x, y := float32(col)*ts, float32(row)*ts
			vector.DrawFilledRect(screen, x, y, ts, ts, tileColor(tile.Texture), false)
			if textureName(tile.Texture) == "flowers" {
				vector.DrawFilledCircle(screen, x+ts/3, y+ts/3, 3, ColFlower, true)
				vector.DrawFilledCircle(screen, x+2*ts/3, y+2*ts/3, 3, ColFlower, true)
			}
		}
	}
}

func hudText(s game.Snapshot) string {
	secs := int(s.Time)
	return fmt.Sprintf("SCORE %d   TIME %02d:%02d   BAMBOO %.0f   PANDAS %d hungry / %d alive",
		s.Score, secs/60, secs%60, s.Bamboo, s.Hungry, s.Alive)
}

func overText(r game.OverReason) string {
	msg := "GAME OVER"
	switch r {
	case game.ReasonStarved:
		msg = "GAME OVER: the bamboo ran out"
	case game.ReasonCollapsed:
		msg = "GAME OVER: no pandas left to pair"
	}
	return msg + "\n\nEnter: play again   Esc: quit"
}
