// Package window is the Ebiten frontend: real key up/down input and pixel
// rendering of the runner scene, with PNG sprites when the asset directory
// has them and flat placeholder shapes otherwise.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/timerunner/internal/assets"
	"github.com/vovakirdan/timerunner/internal/core"
	"github.com/vovakirdan/timerunner/internal/runner"
	"github.com/vovakirdan/timerunner/internal/storage"
)

// Options configures an App.
type Options struct {
	Sprites *assets.Library
	Store   *storage.Store
	Logger  *log.Logger
	Scale   int // window pixels per playfield pixel
}

// App adapts a runner.Game to ebiten.Game.
type App struct {
	game     *runner.Game
	lib      *assets.Library
	store    *storage.Store
	logger   *log.Logger
	scale    int
	sheets   map[assets.SpriteID]*sheet
	sprites  map[assets.SpriteID]assets.Sprite
	frame    core.InputFrame
	runSaved bool
}

// NewApp wraps a game that has already been Reset. PNG sprites are decoded
// up front; any that fail to load fall back to placeholders.
func NewApp(game *runner.Game, opts Options) *App {
	a := &App{
		game:    game,
		lib:     opts.Sprites,
		store:   opts.Store,
		logger:  opts.Logger,
		scale:   max(1, opts.Scale),
		sheets:  make(map[assets.SpriteID]*sheet),
		sprites: make(map[assets.SpriteID]assets.Sprite),
		frame:   core.NewInputFrame(),
	}
	if a.logger == nil {
		a.logger = log.New(io.Discard)
	}
	if a.lib == nil {
		a.lib = assets.NewLibrary(nil, a.logger)
	}

	for id, sp := range a.lib.ResolveAll() {
		a.sprites[id] = sp
		sh, err := loadSheet(a.lib, sp)
		if err != nil {
			if !errors.Is(err, assets.ErrNoAssets) {
				a.logger.Warn("sprite image unavailable, using placeholder", "sprite", id, "error", err)
			}
			continue
		}
		a.sheets[id] = sh
	}
	return a
}

// Update samples input and advances the simulation one tick.
func (a *App) Update() error {
	readInput(&a.frame)
	res := a.game.Step(a.frame)
	if res.Quit {
		return ebiten.Termination
	}

	if !res.State.GameOver {
		a.runSaved = false
	} else if !a.runSaved {
		a.saveRun(res.State)
		a.runSaved = true
	}
	return nil
}

func (a *App) saveRun(st core.GameState) {
	if a.store == nil || st.Score <= 0 {
		return
	}
	_, err := a.store.SaveRun(storage.Run{
		GameID:   a.game.ID(),
		Score:    st.Score,
		Distance: st.Distance,
		Ticks:    st.Ticks,
		Cause:    st.Cause,
	})
	if err != nil {
		a.logger.Warn("could not save run", "error", err)
	}
}

// Draw renders the current scene.
func (a *App) Draw(screen *ebiten.Image) {
	sc := a.game.Scene()

	bg := a.sprite(assets.SpriteBackground).Placeholder.Fill
	screen.Fill(toColor(bg, sc.Desaturate))

	if sc.Phase == runner.PhaseIntro {
		a.drawIntro(screen)
		return
	}

	ground := core.NewRect(0, sc.GroundTop, sc.Width, sc.Height-sc.GroundTop)
	a.drawSprite(screen, assets.SpriteGround, ground, 0, false, sc.Desaturate)

	for _, d := range sc.Drawables {
		a.drawSprite(screen, d.Sprite, d.Rect, d.Frame, d.Flip, sc.Desaturate && !d.Hidden)
	}

	a.drawHUD(screen, sc)
}

// Layout keeps the playfield at its logical size; Ebiten scales the window.
func (a *App) Layout(_, _ int) (int, int) {
	cfg := a.game.Config()
	return cfg.Screen.Width, cfg.Screen.Height
}

func (a *App) sprite(id assets.SpriteID) assets.Sprite {
	if s, ok := a.sprites[id]; ok {
		return s
	}
	return assets.PlaceholderFor(id)
}

func (a *App) drawSprite(dst *ebiten.Image, id assets.SpriteID, r core.Rect, frame int, flip, gray bool) {
	if sh, ok := a.sheets[id]; ok {
		img := sh.frame(frame)
		b := img.Bounds()
		sx := float64(r.W) / float64(b.Dx())
		sy := float64(r.H) / float64(b.Dy())

		op := &colorm.DrawImageOptions{}
		if flip {
			op.GeoM.Scale(-sx, sy)
			op.GeoM.Translate(float64(r.X+r.W), float64(r.Y))
		} else {
			op.GeoM.Scale(sx, sy)
			op.GeoM.Translate(float64(r.X), float64(r.Y))
		}
		var cm colorm.ColorM
		if gray {
			cm.ChangeHSV(0, 0, 1)
		}
		colorm.DrawImage(dst, img, cm, op)
		return
	}

	p := a.sprite(id).Placeholder
	c := toColor(p.Fill, gray)
	switch p.Shape {
	case assets.ShapeCircle:
		cx, cy := r.Center()
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(min(r.W, r.H))/2, c, true)
	default:
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
	}
}

func (a *App) drawHUD(dst *ebiten.Image, sc runner.Scene) {
	h := sc.HUD
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("HP: %d/%d   Score: %d", h.HP, h.MaxHP, h.Score), 10, 10)

	// HP bar
	for i := range h.MaxHP {
		c := color.RGBA{80, 80, 80, 255}
		if i < h.HP {
			c = color.RGBA{220, 30, 30, 255}
		}
		vector.DrawFilledRect(dst, float32(10+i*22), 28, 18, 8, c, false)
	}

	var status string
	switch {
	case h.Revealed:
		status = fmt.Sprintf("FIRE REVEALED! %ds", h.RevealSeconds)
	case h.CoolingDown:
		status = fmt.Sprintf("Reveal: %ds", h.CooldownSeconds)
	default:
		status = "Reveal: READY [Tab]"
	}
	ebitenutil.DebugPrintAt(dst, status, sc.Width-10-len(status)*debugCharW, 10)

	if sc.Paused {
		a.drawBanner(dst, "PAUSED", "Press P to resume")
	}
	if sc.Phase == runner.PhaseGameOver {
		a.drawBanner(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", h.Score))
	}
}

// debugCharW is the glyph width of Ebiten's debug font.
const debugCharW = 6

func (a *App) drawBanner(dst *ebiten.Image, title, subtitle string) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	boxW := (max(len(title), len(subtitle)) + 4) * debugCharW
	boxH := 60
	x, y := (w-boxW)/2, (h-boxH)/2
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(boxW), float32(boxH), color.RGBA{0, 0, 0, 200}, false)
	ebitenutil.DebugPrintAt(dst, title, x+(boxW-len(title)*debugCharW)/2, y+12)
	ebitenutil.DebugPrintAt(dst, subtitle, x+(boxW-len(subtitle)*debugCharW)/2, y+34)
}

func (a *App) drawIntro(dst *ebiten.Image) {
	cfg := a.game.Config()
	lines := []string{
		"T I M E   R U N N E R",
		"",
		"Right/D run   Left/A back   Space/Up jump (twice in the air)",
		fmt.Sprintf("Tab/E reveals hidden fires for %ds, then %ds cooldown",
			cfg.Ability.RevealSeconds, cfg.Ability.CooldownSeconds),
		"",
		"Press SPACE to start",
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	top := (h - len(lines)*16) / 2
	for i, line := range lines {
		ebitenutil.DebugPrintAt(dst, line, (w-len(line)*debugCharW)/2, top+i*16)
	}
}

// toColor converts a placeholder fill, optionally to its gray luminance.
func toColor(c assets.RGB, gray bool) color.RGBA {
	if gray {
		l := uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
		return color.RGBA{l, l, l, 255}
	}
	return color.RGBA{c.R, c.G, c.B, 255}
}

// Run opens the window and blocks until it is closed or the game quits.
func Run(app *App, title string) error {
	cfg := app.game.Config()
	ebiten.SetWindowSize(cfg.Screen.Width*app.scale, cfg.Screen.Height*app.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Screen.FPS)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
