package runner

import (
	"github.com/vovakirdan/timerunner/internal/assets"
	"github.com/vovakirdan/timerunner/internal/core"
)

// Kind tags a drawable.
type Kind int

const (
	KindWall Kind = iota
	KindPlatform
	KindFire
	KindHeal
	KindPlayer
)

// Drawable is one entity handed to a frontend. Rect is in screen pixels.
type Drawable struct {
	Kind   Kind
	Sprite assets.SpriteID
	Rect   core.Rect
	Frame  int
	Flip   bool // mirror horizontally (player facing left)
	Hidden bool // invisible fire shown only because reveal is active
}

// HUD is the heads-up data of a scene.
type HUD struct {
	HP, MaxHP       int
	Score           int
	Revealed        bool
	RevealSeconds   int  // seconds of reveal left, rounded up
	CoolingDown     bool // reveal used and not ready yet
	CooldownSeconds int  // whole seconds of cooldown left, rounded down
}

// Scene is a value snapshot of everything a frontend draws for one frame.
type Scene struct {
	Width, Height int
	GroundTop     int
	WorldX        int
	Phase         Phase
	Paused        bool
	Desaturate    bool // draw everything but Hidden fires in gray
	Drawables     []Drawable
	HUD           HUD
}

// Scene exports the current frame. Entities farther than the cull margin
// outside the screen are left out.
func (g *Game) Scene() Scene {
	cfg := g.cfg
	sc := Scene{
		Width:      cfg.Screen.Width,
		Height:     cfg.Screen.Height,
		GroundTop:  cfg.Screen.GroundTop,
		WorldX:     g.worldX,
		Phase:      g.phase,
		Paused:     g.paused,
		Desaturate: g.revealed,
		HUD:        g.hud(),
	}
	if g.level == nil {
		return sc
	}

	visible := func(r core.Rect) bool {
		return r.Right() >= -cfg.World.CullMargin && r.Left() <= cfg.Screen.Width+cfg.World.CullMargin
	}

	for _, b := range g.level.Blocks {
		r := g.level.BlockRect(b).Translate(-g.worldX, 0)
		if !visible(r) {
			continue
		}
		d := Drawable{Kind: KindPlatform, Sprite: assets.SpritePlatform, Rect: r}
		if b.Wall {
			d.Kind, d.Sprite = KindWall, assets.SpriteWall
		}
		sc.Drawables = append(sc.Drawables, d)
	}

	fireFrame := int(g.fireAnim)
	for i := range g.level.Fires {
		f := &g.level.Fires[i]
		if !f.AlwaysVisible && !g.revealed {
			continue
		}
		r := f.ScreenRect(g.worldX)
		if !visible(r) {
			continue
		}
		d := Drawable{Kind: KindFire, Sprite: assets.SpriteFire, Rect: r, Frame: fireFrame, Hidden: !f.AlwaysVisible}
		if f.Hit {
			d.Sprite = assets.SpriteFireHit
			d.Frame = cfg.Hazards.HitFrames - f.HitTimer
		}
		sc.Drawables = append(sc.Drawables, d)
	}

	for i := range g.level.Heals {
		h := &g.level.Heals[i]
		r := h.ScreenRect(g.worldX)
		if h.Collected || !visible(r) {
			continue
		}
		sc.Drawables = append(sc.Drawables, Drawable{Kind: KindHeal, Sprite: assets.SpriteHeal, Rect: r, Frame: g.ticks / 10})
	}

	if g.player != nil {
		p := g.player
		d := Drawable{Kind: KindPlayer, Sprite: assets.SpritePlayerIdle, Rect: p.Rect, Frame: int(g.playerAnim), Flip: !p.FacingRight}
		switch {
		case p.InAir:
			d.Sprite, d.Frame = assets.SpritePlayerJump, 0
		case p.Running:
			d.Sprite = assets.SpritePlayerRun
		}
		sc.Drawables = append(sc.Drawables, d)
	}
	return sc
}

func (g *Game) hud() HUD {
	fps := max(1, g.cfg.Screen.FPS)
	h := HUD{
		MaxHP:           g.cfg.Player.MaxHP,
		Score:           g.score,
		Revealed:        g.revealed,
		RevealSeconds:   (g.revealTicks + fps - 1) / fps,
		CoolingDown:     g.cooldownTicks > 0,
		CooldownSeconds: g.cooldownTicks / fps,
	}
	if g.player != nil {
		h.HP = g.player.HP
	}
	return h
}
