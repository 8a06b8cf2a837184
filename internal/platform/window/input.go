package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/timerunner/internal/core"
)

// pressBindings are edge-triggered: delivered once on the tick the key goes down.
var pressBindings = map[core.Action][]ebiten.Key{
	core.ActionJump:    {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
	core.ActionStart:   {ebiten.KeyEnter},
	core.ActionReveal:  {ebiten.KeyTab, ebiten.KeyE},
	core.ActionRestart: {ebiten.KeyR},
	core.ActionPause:   {ebiten.KeyP, ebiten.KeyEscape},
	core.ActionQuit:    {ebiten.KeyQ},
}

// holdBindings are level-triggered: present for every tick the key is down.
var holdBindings = map[core.Action][]ebiten.Key{
	core.ActionLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ActionRight: {ebiten.KeyArrowRight, ebiten.KeyD},
}

// readInput samples the keyboard once for the current tick.
func readInput(frame *core.InputFrame) {
	frame.Clear()
	for action, keys := range pressBindings {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				frame.Set(action)
				break
			}
		}
	}
	for action, keys := range holdBindings {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				frame.Hold(action)
				break
			}
		}
	}
}
