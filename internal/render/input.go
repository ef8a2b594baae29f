package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/amalg/cupid-panda/internal/game"
)

// keyBindings lists the keys that steer the player, arrows and WASD.
var keyBindings = map[game.Direction][]ebiten.Key{
	game.DirUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	game.DirDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	game.DirLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	game.DirRight: {ebiten.KeyArrowRight, ebiten.KeyD},
}

// keyboard reads ebiten's key state. It is only valid inside Update.
type keyboard struct{}

func (keyboard) DirectionHeld(d game.Direction) bool {
	for _, k := range keyBindings[d] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (keyboard) ActionPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace)
}
