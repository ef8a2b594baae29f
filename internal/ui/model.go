package ui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/cupid-panda/internal/game"
	"github.com/amalg/cupid-panda/internal/tilemap"
)

// snapshotMsg carries a new snapshot from the engine.
type snapshotMsg game.Snapshot

// errMsg carries an error.
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// Model is the Bubbletea model for the terminal game.
type Model struct {
	engine    *game.Engine
	keys      *KeyLatch
	terrain   *tilemap.Map
	snaps     <-chan game.Snapshot
	maxBamboo float64

	snap     *game.Snapshot
	err      error
	quitting bool
}

// NewModel creates a TUI model. snaps is fed from the engine's OnTick
// callback, usually through Offer.
func NewModel(engine *game.Engine, keys *KeyLatch, terrain *tilemap.Map, snaps <-chan game.Snapshot) Model {
	return Model{
		engine:    engine,
		keys:      keys,
		terrain:   terrain,
		snaps:     snaps,
		maxBamboo: engine.Config.InitialBamboo,
	}
}

// Offer hands s to the model without blocking the engine. If the model has
// not picked up the previous snapshot yet, that one is replaced.
func Offer(ch chan game.Snapshot, s game.Snapshot) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

// Init starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.snaps)
}

// Update handles incoming messages (key presses, snapshots).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotMsg:
		snap := game.Snapshot(msg)
		m.snap = &snap
		return m, waitForSnapshot(m.snaps)

	case errMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the current snapshot.
func (m Model) View() string {
	if m.quitting {
		return "Bye! The pandas will miss you.\n"
	}

	if m.err != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Render("Error: "+m.err.Error()) + "\n"
	}

	board := RenderBoard(m.snap, m.terrain)
	hud := RenderHUD(m.snap, m.maxBamboo)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		board,
		"  ",
		hud,
	) + "\n"
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "w":
		m.keys.Press(game.DirUp)
	case "down", "s":
		m.keys.Press(game.DirDown)
	case "left", "a":
		m.keys.Press(game.DirLeft)
	case "right", "d":
		m.keys.Press(game.DirRight)
	case " ":
		m.keys.PressAction()
	case "x":
		m.keys.Release()
	case "enter":
		if m.snap != nil && m.snap.Status == game.StatusOver {
			m.keys.Release()
			m.engine.Reset()
			log.Printf("[UI] Restarting after %s game over (score %d)", m.snap.Reason, m.snap.Score)
		}
	}

	return m, nil
}

// waitForSnapshot returns a Cmd that waits for the next engine snapshot.
func waitForSnapshot(snaps <-chan game.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-snaps
		if !ok {
			return errMsg{err: fmt.Errorf("engine stopped")}
		}
		return snapshotMsg(s)
	}
}
