package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/timerunner/internal/assets"
	"github.com/vovakirdan/timerunner/internal/core"
)

func drawablesOf(sc Scene, kind Kind) []Drawable {
	var out []Drawable
	for _, d := range sc.Drawables {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

func TestSceneHidesInvisibleFires(t *testing.T) {
	g := newTestGame(t, quietConfig())
	startEmpty(t, g)
	g.Level().Fires = []FireHazard{
		{X: 300, Y: 322, Size: 32, AlwaysVisible: true},
		{X: 400, Y: 322, Size: 32},
	}

	fires := drawablesOf(g.Scene(), KindFire)
	require.Len(t, fires, 1)
	assert.Equal(t, 300, fires[0].Rect.X)
	assert.False(t, fires[0].Hidden)
	assert.False(t, g.Scene().Desaturate)

	g.Step(pressed(core.ActionReveal))
	sc := g.Scene()
	fires = drawablesOf(sc, KindFire)
	require.Len(t, fires, 2)
	assert.False(t, fires[0].Hidden)
	assert.True(t, fires[1].Hidden)
	assert.True(t, sc.Desaturate)
	assert.True(t, sc.HUD.Revealed)
	assert.Equal(t, 15, sc.HUD.RevealSeconds)
}

func TestSceneHitFireAnimation(t *testing.T) {
	g := newTestGame(t, quietConfig())
	startEmpty(t, g)
	g.Level().Fires = []FireHazard{{X: 300, Y: 322, Size: 32, AlwaysVisible: true, Hit: true, HitTimer: 10}}

	fires := drawablesOf(g.Scene(), KindFire)
	require.Len(t, fires, 1)
	assert.Equal(t, assets.SpriteFireHit, fires[0].Sprite)
	assert.Equal(t, 20, fires[0].Frame)
}

func TestSceneCullsOffscreenEntities(t *testing.T) {
	g := newTestGame(t, quietConfig())
	startEmpty(t, g)
	g.Level().Heals = []HealItem{{X: 400, Y: 300, Size: 24}, {X: 5000, Y: 300, Size: 24}}

	heals := drawablesOf(g.Scene(), KindHeal)
	require.Len(t, heals, 1)
	assert.Equal(t, 400, heals[0].Rect.X)

	for _, d := range g.Scene().Drawables {
		assert.GreaterOrEqual(t, d.Rect.Right(), -g.Config().World.CullMargin)
		assert.LessOrEqual(t, d.Rect.Left(), 800+g.Config().World.CullMargin)
	}
}

func TestScenePlayerSprite(t *testing.T) {
	g := newTestGame(t, quietConfig())
	startEmpty(t, g)

	player := drawablesOf(g.Scene(), KindPlayer)
	require.Len(t, player, 1)
	assert.Equal(t, assets.SpritePlayerIdle, player[0].Sprite)
	assert.Equal(t, 58, player[0].Rect.X)

	g.Step(held(core.ActionLeft))
	player = drawablesOf(g.Scene(), KindPlayer)
	assert.Equal(t, assets.SpritePlayerRun, player[0].Sprite)
	assert.True(t, player[0].Flip)

	g.Step(pressed(core.ActionJump))
	player = drawablesOf(g.Scene(), KindPlayer)
	assert.Equal(t, assets.SpritePlayerJump, player[0].Sprite)

	// player is always drawn last
	sc := g.Scene()
	assert.Equal(t, KindPlayer, sc.Drawables[len(sc.Drawables)-1].Kind)
}

func TestSceneHUDCooldown(t *testing.T) {
	cfg := quietConfig()
	cfg.Ability.RevealSeconds = 1
	cfg.Ability.CooldownSeconds = 2
	g := newTestGame(t, cfg)
	startEmpty(t, g)

	g.Step(pressed(core.ActionReveal))
	for i := 0; i < 59; i++ {
		g.Step(core.NewInputFrame())
	}
	hud := g.Scene().HUD
	assert.False(t, hud.Revealed)
	assert.True(t, hud.CoolingDown)
	assert.Equal(t, 1, hud.CooldownSeconds, "119 ticks left shows whole seconds")
	assert.Equal(t, 3, hud.HP)
	assert.Equal(t, 3, hud.MaxHP)

	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}
	hud = g.Scene().HUD
	assert.True(t, hud.CoolingDown)
	assert.Equal(t, 0, hud.CooldownSeconds)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.Row(0), "Reveal: 0s cooldown")
	assert.NotContains(t, scr.Row(0), "READY")

	for i := 0; i < 59; i++ {
		g.Step(core.NewInputFrame())
	}
	assert.False(t, g.Scene().HUD.CoolingDown)
}

func TestRenderIntro(t *testing.T) {
	g := newTestGame(t, quietConfig())
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	out := scr.String()
	assert.Contains(t, out, "T I M E   R U N N E R")
	assert.Contains(t, out, "Press SPACE to start")
}

func TestRenderPlayfield(t *testing.T) {
	g := newTestGame(t, quietConfig())
	startEmpty(t, g)
	scr := core.NewScreen(80, 24)

	g.Render(scr)

	assert.Equal(t, '@', scr.Get(5, 19), "player cell")
	assert.Equal(t, '▀', scr.Get(40, 23), "ground cell")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(scr.Row(0)), "♥♥♥"))
	assert.Contains(t, scr.Row(0), "Reveal: READY [Tab]")
	// the wall rises above the playfield but never onto the HUD line
	assert.Equal(t, ' ', scr.Get(0, 0), "HUD row left margin")
	assert.Equal(t, ' ', scr.Get(79, 0), "HUD row right margin")
}

func TestCellViewClipsAboveHUD(t *testing.T) {
	v := cellView{srcW: 800, srcH: 600, dstW: 80, dstH: 23, offY: hudRows}

	partly := v.cells(core.NewRect(0, -174, 48, 300))
	assert.Equal(t, hudRows, partly.Y)
	assert.Equal(t, 6, partly.Bottom(), "bottom edge keeps its cell")

	above := v.cells(core.NewRect(0, -174, 48, 100))
	assert.Zero(t, above.W*above.H, "rect entirely above the playfield draws nothing")

	inside := v.cells(core.NewRect(50, 300, 10, 1))
	assert.Equal(t, core.NewRect(5, 12, 1, 1), inside)
}

func TestRenderRevealTintsWorld(t *testing.T) {
	g := newTestGame(t, quietConfig())
	startEmpty(t, g)
	g.Step(pressed(core.ActionReveal))
	scr := core.NewScreen(80, 24)

	g.Render(scr)

	assert.Equal(t, core.ColorGray, scr.GetCell(5, 19).Color)
	assert.Contains(t, scr.Row(0), "FIRE REVEALED! 15s")
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(t, quietConfig())
	startEmpty(t, g)
	g.Player().HP = 1
	fireOnPlayer(g, true)
	g.Step(core.NewInputFrame())
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	out := scr.String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "Press R to restart")
}
