package runner

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/timerunner/internal/assets"
	"github.com/vovakirdan/timerunner/internal/core"
)

// hudRows are the terminal rows reserved above the playfield.
const hudRows = 1

// Render draws the scene into a character screen, scaling the pixel
// playfield to the cell grid below the HUD line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	sc := g.Scene()

	if sc.Phase == PhaseIntro {
		g.drawIntro(dst)
		return
	}

	view := cellView{
		srcW: sc.Width, srcH: sc.Height,
		dstW: dst.Width(), dstH: dst.Height() - hudRows,
		offY: hudRows,
	}

	tint := func(c core.Color, hidden bool) core.Color {
		if sc.Desaturate && !hidden {
			return core.ColorGray
		}
		return c
	}

	ground := g.sprite(assets.SpriteGround)
	groundRect := view.cells(core.NewRect(0, sc.GroundTop, sc.Width, sc.Height-sc.GroundTop))
	dst.DrawRectColored(groundRect, ground.Glyph(0), tint(ground.TermColor(), false))

	for _, d := range sc.Drawables {
		s := g.sprite(d.Sprite)
		dst.DrawRectColored(view.cells(d.Rect), s.Glyph(d.Frame), tint(s.TermColor(), d.Hidden))
	}

	g.drawHUD(dst, sc.HUD)

	if sc.Paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if sc.Phase == PhaseGameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", sc.HUD.Score))
	}
}

func (g *Game) sprite(id assets.SpriteID) assets.Sprite {
	if s, ok := g.resolved[id]; ok {
		return s
	}
	return assets.PlaceholderFor(id)
}

func (g *Game) drawHUD(dst *core.Screen, h HUD) {
	hearts := strings.Repeat("♥", h.HP) + strings.Repeat("♡", max(0, h.MaxHP-h.HP))
	dst.DrawTextColored(1, 0, hearts, core.ColorBrightRed)
	dst.DrawText(1+h.MaxHP+1, 0, fmt.Sprintf("HP: %d/%d  Score: %d", h.HP, h.MaxHP, h.Score))

	var status string
	color := core.ColorBrightGreen
	switch {
	case h.Revealed:
		status = fmt.Sprintf("FIRE REVEALED! %ds", h.RevealSeconds)
		color = core.ColorOrange
	case h.CoolingDown:
		status = fmt.Sprintf("Reveal: %ds cooldown", h.CooldownSeconds)
		color = core.ColorGray
	default:
		status = "Reveal: READY [Tab]"
	}
	dst.DrawTextColored(dst.Width()-len([]rune(status))-1, 0, status, color)
}

func (g *Game) drawIntro(dst *core.Screen) {
	lines := []string{
		"T I M E   R U N N E R",
		"",
		"Right/D run   Left/A back   Space/Up jump (twice in the air)",
		fmt.Sprintf("Tab/E reveals hidden fires for %ds, then %ds cooldown",
			g.cfg.Ability.RevealSeconds, g.cfg.Ability.CooldownSeconds),
		fmt.Sprintf("Fires burn 1 of %d HP, apples heal", g.cfg.Player.MaxHP),
		"",
		"Press SPACE to start",
	}
	top := (dst.Height() - len(lines)) / 2
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightCyan
		}
		dst.DrawTextCenteredColored(top+i, line, color)
	}
}

// drawCenteredMessage draws a boxed message in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// cellView maps playfield pixels to screen cells.
type cellView struct {
	srcW, srcH int
	dstW, dstH int
	offY       int
}

// cells converts a pixel rectangle to the covering cell rectangle, clipped
// to the playfield rows. Every non-empty rectangle on the playfield covers
// at least one cell; one entirely above it comes back empty.
func (v cellView) cells(r core.Rect) core.Rect {
	x0 := floorDiv(r.Left()*v.dstW, v.srcW)
	y0 := floorDiv(r.Top()*v.dstH, v.srcH)
	x1 := max(x0+1, ceilDiv(r.Right()*v.dstW, v.srcW))
	y1 := max(y0+1, ceilDiv(r.Bottom()*v.dstH, v.srcH))
	if y0 < 0 {
		y0 = 0
	}
	if y1 <= y0 {
		return core.NewRect(x0, v.offY, 0, 0)
	}
	return core.NewRect(x0, y0+v.offY, x1-x0, y1-y0)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
