package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amalg/cupid-panda/internal/game"
	"github.com/amalg/cupid-panda/internal/physics"
	"github.com/amalg/cupid-panda/internal/tilemap"
	"github.com/amalg/cupid-panda/internal/vmath"
)

// grassMap is a 4x3 tile map without walls, 8x6 board cells.
const grassMap = `#Tiles#
grass.png, 0, false
#Map#
0,0,0,0
0,0,0,0
0,0,0,0
`

func newGrass(t *testing.T) *tilemap.Map {
	t.Helper()
	m, err := tilemap.Parse(strings.NewReader(grassMap))
	require.NoError(t, err)
	return m
}

func newEngine(t *testing.T) *game.Engine {
	t.Helper()
	m, err := tilemap.Builtin(tilemap.DefaultMapName)
	require.NoError(t, err)
	cfg := game.DefaultConfig()
	return game.NewEngine(cfg,
		func() physics.World { return physics.NewTileWorld(m.Cols, m.Rows, m.TileSize, m.Solid) },
		game.NewRandSpawner(nil, cfg.SpawnPoints))
}

func TestKeyLatchHoldWindow(t *testing.T) {
	now := time.Unix(0, 0)
	k := NewKeyLatch(100 * time.Millisecond)
	k.now = func() time.Time { return now }

	assert.False(t, k.DirectionHeld(game.DirLeft))

	k.Press(game.DirLeft)
	now = now.Add(100 * time.Millisecond)
	assert.True(t, k.DirectionHeld(game.DirLeft))

	now = now.Add(time.Millisecond)
	assert.False(t, k.DirectionHeld(game.DirLeft), "hold window expired")
}

func TestKeyLatchOppositeReleases(t *testing.T) {
	k := NewKeyLatch(time.Hour)
	k.Press(game.DirUp)
	k.Press(game.DirRight)
	k.Press(game.DirDown)

	assert.False(t, k.DirectionHeld(game.DirUp))
	assert.True(t, k.DirectionHeld(game.DirDown))
	assert.True(t, k.DirectionHeld(game.DirRight))

	k.Release()
	assert.False(t, k.DirectionHeld(game.DirDown))
	assert.False(t, k.DirectionHeld(game.DirRight))
}

func TestKeyLatchActionIsConsumed(t *testing.T) {
	k := NewKeyLatch(DefaultHoldWindow)
	assert.False(t, k.ActionPressed())
	k.PressAction()
	assert.True(t, k.ActionPressed())
	assert.False(t, k.ActionPressed())
}

func TestOfferKeepsLatest(t *testing.T) {
	ch := make(chan game.Snapshot, 1)
	Offer(ch, game.Snapshot{Tick: 1})
	Offer(ch, game.Snapshot{Tick: 2})

	got := <-ch
	assert.Equal(t, uint64(2), got.Tick)
	assert.Len(t, ch, 0)
}

func TestRenderBoardWaiting(t *testing.T) {
	assert.Equal(t, "Waiting for the meadow...", RenderBoard(nil, newGrass(t)))
}

func TestRenderBoardPlacesPlayer(t *testing.T) {
	snap := &game.Snapshot{
		Player: game.PlayerView{Pos: vmath.V(40, 24), Size: 16},
	}
	lines := strings.Split(RenderBoard(snap, newGrass(t)), "\n")
	require.Len(t, lines, 6)

	// Player center (48,32) lands in cell (3,2).
	for i, line := range lines {
		assert.Equal(t, i == 2, strings.Contains(line, "██"), "row %d", i)
	}
}

func TestRenderBoardSkipsDeadAndOffscreen(t *testing.T) {
	snap := &game.Snapshot{
		Player: game.PlayerView{Pos: vmath.V(0, 0), Size: 16},
		Pandas: []game.PandaView{
			{Pos: vmath.V(60, 60), Size: 16, State: game.PandaDead},
			{Pos: vmath.V(100, 60), Size: 16, State: game.PandaFoundLove},
		},
		Storks: []game.StorkView{{Pos: vmath.V(-20, 10), State: game.StorkLoaded}},
	}
	board := RenderBoard(snap, newGrass(t))
	assert.Contains(t, board, "<3")
	assert.NotContains(t, board, "ôô")
	assert.NotContains(t, board, "vo")
}

func TestRenderHUD(t *testing.T) {
	snap := &game.Snapshot{Score: 300, Time: 75, Bamboo: 50, Hungry: 3, Alive: 4}
	hud := RenderHUD(snap, 100)
	assert.Contains(t, hud, "300")
	assert.Contains(t, hud, "01:15")
	assert.Contains(t, hud, "3 hungry / 4 alive")
	assert.NotContains(t, hud, "GAME OVER")

	snap.Status = game.StatusOver
	snap.Reason = game.ReasonStarved
	assert.Contains(t, RenderHUD(snap, 100), "GAME OVER: the bamboo ran out")
}

func TestBambooBar(t *testing.T) {
	assert.Equal(t, "██████░░░░░░", bambooBar(50, 100, 12))
	assert.Equal(t, "████████████", bambooBar(250, 100, 12))
	assert.Equal(t, "░░░░░░░░░░░░", bambooBar(0, 100, 12))
	assert.Equal(t, "░░░░", bambooBar(10, 0, 4))
}

func TestModelKeys(t *testing.T) {
	keys := NewKeyLatch(time.Hour)
	m := NewModel(newEngine(t), keys, newGrass(t), make(chan game.Snapshot, 1))

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.True(t, keys.DirectionHeld(game.DirUp))
	assert.True(t, keys.ActionPressed())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(Model).quitting)
}

func TestModelReceivesSnapshot(t *testing.T) {
	ch := make(chan game.Snapshot, 1)
	m := NewModel(newEngine(t), NewKeyLatch(DefaultHoldWindow), newGrass(t), ch)

	ch <- game.Snapshot{Tick: 7}
	msg := m.Init()()
	next, cmd := m.Update(msg)

	require.NotNil(t, next.(Model).snap)
	assert.Equal(t, uint64(7), next.(Model).snap.Tick)
	assert.NotNil(t, cmd, "model keeps listening")
}

func TestModelEnterRestartsOnlyWhenOver(t *testing.T) {
	engine := newEngine(t)
	engine.Step(time.Second/60, game.NoInput)
	m := NewModel(engine, NewKeyLatch(DefaultHoldWindow), newGrass(t), make(chan game.Snapshot, 1))

	running := engine.Snapshot()
	next, _ := m.Update(snapshotMsg(running))
	next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, uint64(1), engine.Snapshot().Tick, "enter ignored while running")

	over := running
	over.Status = game.StatusOver
	next, _ = m.Update(snapshotMsg(over))
	next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, uint64(0), engine.Snapshot().Tick, "enter starts a new session")
}
