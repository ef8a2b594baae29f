package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/cupid-panda/internal/game"
	"github.com/amalg/cupid-panda/internal/tilemap"
	"github.com/amalg/cupid-panda/internal/vmath"
)

// CellPixels is the world area covered by one board cell. Each cell is two
// characters wide for a square-ish appearance.
const CellPixels = 16

const meadowBg = lipgloss.Color("#2d5a27")

// Color palette
var (
	// Tile styles, keyed by texture name without extension
	tileStyles = map[string]tileLook{
		"grass": {"  ", lipgloss.NewStyle().Background(meadowBg)},
		"wall": {"██", lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555"))},
		"water": {"≈≈", lipgloss.NewStyle().
			Background(lipgloss.Color("#1f4e8c")).
			Foreground(lipgloss.Color("#6fa8ff"))},
		"flowers": {"**", lipgloss.NewStyle().
			Background(meadowBg).
			Foreground(lipgloss.Color("#ff99cc"))},
	}

	playerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#00ff88")).
			Foreground(lipgloss.Color("#00ff88"))

	grabbingStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#ff44ff")).
			Foreground(lipgloss.Color("#ff44ff"))

	pandaStyle = lipgloss.NewStyle().
			Background(meadowBg).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)

	heldPandaStyle = pandaStyle.
			Foreground(lipgloss.Color("#ffff44"))

	thrownPandaStyle = pandaStyle.
				Foreground(lipgloss.Color("#ffcc00"))

	lovePandaStyle = pandaStyle.
			Foreground(lipgloss.Color("#ff4477"))

	storkStyle = lipgloss.NewStyle().
			Background(meadowBg).
			Foreground(lipgloss.Color("#dddddd")).
			Bold(true)

	// HUD styles
	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	bambooStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#66cc33"))

	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)
)

type tileLook struct {
	glyph string
	style lipgloss.Style
}

// RenderBoard converts the snapshot into a styled terminal string.
func RenderBoard(snap *game.Snapshot, terrain *tilemap.Map) string {
	if snap == nil || terrain == nil {
		return "Waiting for the meadow..."
	}

	cols := terrain.Cols * terrain.TileSize / CellPixels
	rows := terrain.Rows * terrain.TileSize / CellPixels

	// Later layers win: pandas, then storks, then the player.
	sprites := make(map[int]string)
	put := func(pos vmath.Vec2, s string) {
		cx, cy := int(math.Floor(pos.X/CellPixels)), int(math.Floor(pos.Y/CellPixels))
		if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
			return
		}
		sprites[cy*cols+cx] = s
	}

	for _, p := range snap.Pandas {
		if g := pandaGlyph(p); g != "" {
			put(center(p.Pos, p.Size), g)
		}
	}
	for _, s := range snap.Storks {
		put(s.Pos, storkGlyph(s))
	}
	put(center(snap.Player.Pos, snap.Player.Size), playerGlyph(snap.Player))

	var lines []string
	for cy := 0; cy < rows; cy++ {
		var cells []string
		for cx := 0; cx < cols; cx++ {
			if s, ok := sprites[cy*cols+cx]; ok {
				cells = append(cells, s)
				continue
			}
			cells = append(cells, renderTile(terrain, cx, cy))
		}
		lines = append(lines, strings.Join(cells, ""))
	}

	return strings.Join(lines, "\n")
}

func center(pos vmath.Vec2, size int) vmath.Vec2 {
	h := float64(size) / 2
	return pos.Add(vmath.V(h, h))
}

func renderTile(terrain *tilemap.Map, cx, cy int) string {
	col := cx * CellPixels / terrain.TileSize
	row := cy * CellPixels / terrain.TileSize
	tile := terrain.Palette[terrain.At(col, row)]
	look, ok := tileStyles[strings.TrimSuffix(tile.Texture, ".png")]
	if !ok {
		look = tileStyles["grass"]
	}
	return look.style.Render(look.glyph)
}

func playerGlyph(p game.PlayerView) string {
	if p.State == game.PlayerGrabbing {
		return grabbingStyle.Render("██")
	}
	return playerStyle.Render("██")
}

func pandaGlyph(p game.PandaView) string {
	switch p.State {
	case game.PandaNormal:
		if p.WalkFrame%2 == 0 {
			return pandaStyle.Render("ôô")
		}
		return pandaStyle.Render("oo")
	case game.PandaGrabbed:
		return heldPandaStyle.Render("ôô")
	case game.PandaThrown:
		if p.ThrownFrame%2 == 0 {
			return thrownPandaStyle.Render("~ô")
		}
		return thrownPandaStyle.Render("ô~")
	case game.PandaFoundLove:
		if p.LoveFrame%2 == 0 {
			return lovePandaStyle.Render("<3")
		}
		return lovePandaStyle.Render("♥ ")
	}
	return ""
}

func storkGlyph(s game.StorkView) string {
	wing := "v"
	if s.Frame%2 == 1 {
		wing = "^"
	}
	if s.State == game.StorkLoaded {
		return storkStyle.Render(wing + "o")
	}
	return storkStyle.Render(wing + " ")
}

// RenderHUD renders the score, the bamboo stock and the game status.
func RenderHUD(snap *game.Snapshot, maxBamboo float64) string {
	if snap == nil {
		return ""
	}

	var parts []string

	parts = append(parts, titleStyle.Render("🐼 CUPID PANDA"))
	parts = append(parts, "")

	parts = append(parts, fmt.Sprintf("%s %d", labelStyle.Render("Score: "), snap.Score))
	parts = append(parts, fmt.Sprintf("%s %s", labelStyle.Render("Time:  "), formatClock(snap.Time)))
	parts = append(parts, fmt.Sprintf("%s %s %.0f",
		labelStyle.Render("Bamboo:"), bambooStyle.Render(bambooBar(snap.Bamboo, maxBamboo, 12)), snap.Bamboo))
	parts = append(parts, fmt.Sprintf("%s %d hungry / %d alive", labelStyle.Render("Pandas:"), snap.Hungry, snap.Alive))
	parts = append(parts, fmt.Sprintf("%s %d", labelStyle.Render("Storks:"), loadedStorks(snap)))
	parts = append(parts, "")

	if snap.Status == game.StatusOver {
		switch snap.Reason {
		case game.ReasonStarved:
			parts = append(parts, overStyle.Render("GAME OVER: the bamboo ran out"))
		case game.ReasonCollapsed:
			parts = append(parts, overStyle.Render("GAME OVER: no pandas left to pair"))
		default:
			parts = append(parts, overStyle.Render("GAME OVER"))
		}
		parts = append(parts, "   Press [Enter] to play again")
		parts = append(parts, "")
	}

	parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).
		Render("WASD/Arrows: Move | Space: Grab/Throw\nX: Stop | Q: Quit"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

func formatClock(secs float64) string {
	s := int(secs)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// bambooBar draws stock as a bar of width cells. Stock above max fills it.
func bambooBar(stock, max float64, width int) string {
	filled := 0
	if max > 0 {
		filled = int(math.Round(stock / max * float64(width)))
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func loadedStorks(snap *game.Snapshot) int {
	n := 0
	for _, s := range snap.Storks {
		if s.State == game.StorkLoaded {
			n++
		}
	}
	return n
}
