package render

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/amalg/cupid-panda/internal/game"
)

// --- Colors ---
var (
	ColBg         = color.RGBA{0x2d, 0x2d, 0x2d, 0xff}
	ColGrass      = color.RGBA{0x4a, 0x8c, 0x3f, 0xff}
	ColWall       = color.RGBA{0x5a, 0x5a, 0x5a, 0xff}
	ColWater      = color.RGBA{0x2f, 0x6e, 0xc4, 0xff}
	ColFlower     = color.RGBA{0xff, 0x99, 0xcc, 0xff}
	ColPandaWhite = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColPandaBlack = color.RGBA{0x10, 0x10, 0x10, 0xff}
	ColCupid      = color.RGBA{0xff, 0xb3, 0xd1, 0xff}
	ColHeart      = color.RGBA{0xff, 0x44, 0x77, 0xff}
	ColHeld       = color.RGBA{0xff, 0xff, 0x88, 0xff}
	ColBeak       = color.RGBA{0xff, 0x99, 0x33, 0xff}
	ColBundle     = color.RGBA{0x99, 0xcc, 0xff, 0xff}
)

func textureName(texture string) string {
	return strings.TrimSuffix(texture, ".png")
}

// tileColor returns the base color of a tile texture. Unknown textures draw
// as grass.
func tileColor(texture string) color.RGBA {
	switch textureName(texture) {
	case "wall":
		return ColWall
	case "water":
		return ColWater
	}
	return ColGrass
}

// pandaFace returns the face color of a panda in the given state, or false
// when the panda is not drawn at all.
func pandaFace(s game.PandaState) (color.RGBA, bool) {
	switch s {
	case game.PandaNormal, game.PandaThrown:
		return ColPandaWhite, true
	case game.PandaGrabbed:
		return ColHeld, true
	case game.PandaFoundLove:
		return ColCupid, true
	}
	return color.RGBA{}, false
}

// drawPanda draws a small panda head filling the panda's box.
func drawPanda(screen *ebiten.Image, p game.PandaView) {
	face, ok := pandaFace(p.State)
	if !ok {
		return
	}
	r := float32(p.Size) / 2
	cx, cy := float32(p.Pos.X)+r, float32(p.Pos.Y)+r

	// Walking pandas bob, thrown pandas wobble sideways.
	switch p.State {
	case game.PandaNormal:
		cy -= float32(p.WalkFrame % 2)
	case game.PandaThrown:
		cx += float32(p.ThrownFrame%2)*2 - 1
	}

	vector.DrawFilledCircle(screen, cx-r*0.6, cy-r*0.7, r*0.4, ColPandaBlack, true)
	vector.DrawFilledCircle(screen, cx+r*0.6, cy-r*0.7, r*0.4, ColPandaBlack, true)
	vector.DrawFilledCircle(screen, cx, cy, r, face, true)
	vector.DrawFilledCircle(screen, cx-r*0.4, cy-r*0.1, r*0.3, ColPandaBlack, true)
	vector.DrawFilledCircle(screen, cx+r*0.4, cy-r*0.1, r*0.3, ColPandaBlack, true)
	vector.DrawFilledCircle(screen, cx, cy+r*0.35, r*0.15, ColPandaBlack, true)

	if p.State == game.PandaFoundLove {
		lift := float32(p.LoveFrame%3) * 2
		drawHeart(screen, cx, cy-r-4-lift, 3)
	}
	if p.State == game.PandaNormal && p.HeartFrame%4 == 0 && p.Cooldown <= 0 {
		drawHeart(screen, cx+r, cy-r, 1.5)
	}
}

// drawPlayer draws the Cupid Panda with an arrow showing where it faces.
func drawPlayer(screen *ebiten.Image, p game.PlayerView) {
	r := float32(p.Size) / 2
	cx, cy := float32(p.Pos.X)+r, float32(p.Pos.Y)+r
	if p.Moving {
		cy -= float32(p.WalkFrame % 2)
	}

	vector.DrawFilledCircle(screen, cx-r*0.6, cy-r*0.7, r*0.4, ColHeart, true)
	vector.DrawFilledCircle(screen, cx+r*0.6, cy-r*0.7, r*0.4, ColHeart, true)
	vector.DrawFilledCircle(screen, cx, cy, r, ColCupid, true)
	vector.DrawFilledCircle(screen, cx-r*0.4, cy-r*0.1, r*0.25, ColPandaBlack, true)
	vector.DrawFilledCircle(screen, cx+r*0.4, cy-r*0.1, r*0.25, ColPandaBlack, true)

	tip := float32(r + 5)
	vector.StrokeLine(screen, cx, cy,
		cx+float32(p.Facing.X)*tip, cy+float32(p.Facing.Y)*tip, 2, ColHeart, true)
}

// drawStork draws a stork flapping between its frames. A loaded stork
// carries a bundle.
func drawStork(screen *ebiten.Image, s game.StorkView) {
	x, y := float32(s.Pos.X), float32(s.Pos.Y)
	wing := float32(-6)
	if s.Frame%2 == 1 {
		wing = 4
	}

	vector.StrokeLine(screen, x-10, y+wing, x, y, 2, ColPandaWhite, true)
	vector.StrokeLine(screen, x+10, y+wing, x, y, 2, ColPandaWhite, true)
	vector.DrawFilledCircle(screen, x, y, 5, ColPandaWhite, true)
	vector.DrawFilledRect(screen, x+4, y-1, 6, 2, ColBeak, true)
	if s.State == game.StorkLoaded {
		vector.StrokeLine(screen, x, y+5, x, y+10, 1, ColPandaWhite, true)
		vector.DrawFilledCircle(screen, x, y+13, 4, ColBundle, true)
	}
}

func drawHeart(screen *ebiten.Image, x, y, s float32) {
	vector.DrawFilledCircle(screen, x-s, y, s*1.1, ColHeart, true)
	vector.DrawFilledCircle(screen, x+s, y, s*1.1, ColHeart, true)
	vector.DrawFilledRect(screen, x-s*0.8, y, s*1.6, s*1.6, ColHeart, true)
}
