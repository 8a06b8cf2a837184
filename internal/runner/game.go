// Package runner implements the Time Runner simulation: a screen-anchored
// player runs over procedurally generated platform groups while the world
// scrolls, dodging fire hazards and collecting heals.
package runner

import (
	"io"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/timerunner/internal/assets"
	"github.com/vovakirdan/timerunner/internal/config"
	"github.com/vovakirdan/timerunner/internal/core"
	"github.com/vovakirdan/timerunner/internal/registry"
)

// ID is the registry id of the runner.
const ID = "timerunner"

// animSpeed is how many animation frames advance per tick.
const animSpeed = 0.3

// Phase is the top-level game state.
type Phase int

const (
	PhaseIntro Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Causes reported in GameState.Cause.
const (
	CauseFire = "fire"
	CauseFall = "fall"
)

// Package-level settings made by the CLI before games are created.
var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	sharedSprites    *assets.Library
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard").
// Unknown values fall back to normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = p
}

// SetAssetsDir sets the sprite directory shared by games created afterwards.
func SetAssetsDir(dir string, logger *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	sharedSprites = assets.OpenDir(dir, logger)
}

// Option configures a Game.
type Option func(*Game)

// WithConfig fixes the runner config, bypassing file loading.
func WithConfig(cfg config.RunnerConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgFixed = true
	}
}

// WithSource injects the random source instead of seeding from the runtime config.
func WithSource(src Source) Option {
	return func(g *Game) {
		g.src = src
		g.srcFixed = true
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithSprites sets the sprite library used for terminal rendering.
func WithSprites(lib *assets.Library) Option {
	return func(g *Game) {
		g.sprites = lib
	}
}

// Game implements the runner state machine. All state is owned by the
// Game and mutated only inside Step.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.RunnerConfig
	cfgFixed bool
	pending  atomic.Pointer[config.RunnerConfig]
	src      Source
	srcFixed bool
	logger   *log.Logger
	sprites  *assets.Library
	resolved map[assets.SpriteID]assets.Sprite

	worldX int
	player *Player
	level  *Level
	phase  Phase
	score  int
	paused bool
	ticks  int
	cause  string

	revealed      bool
	revealTicks   int
	cooldownTicks int

	playerAnim float64
	fireAnim   float64
	platforms  []core.Rect
}

// New creates a new runner. Reset must be called before Step.
func New(opts ...Option) *Game {
	g := &Game{cfg: config.DefaultRunnerConfig()}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Time Runner"
}

// Reset loads configuration, seeds the random source and rebuilds the
// world in the intro state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	settingsMu.RLock()
	path, preset, lib := configPath, difficultyPreset, sharedSprites
	settingsMu.RUnlock()

	if !g.cfgFixed {
		cfg, err := config.LoadRunner(path)
		if err != nil {
			g.logger.Warn("using default runner config", "error", err)
		}
		if preset != "" {
			config.ApplyRunnerPreset(&cfg, preset)
		}
		g.cfg = cfg
	}

	if g.sprites == nil {
		g.sprites = lib
	}
	if g.sprites == nil {
		g.sprites = assets.NewLibrary(nil, g.logger)
	}
	g.resolved = g.sprites.ResolveAll()

	if !g.srcFixed {
		g.src = NewSource(runtime.Seed)
	}
	g.rebuild()
}

// SetConfig queues a config to take effect on the next rebuild (restart
// or Reset). Safe to call from another goroutine.
func (g *Game) SetConfig(cfg config.RunnerConfig) {
	g.pending.Store(&cfg)
}

// Config returns the active config.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// rebuild reconstructs player and level and returns to the intro.
func (g *Game) rebuild() {
	if next := g.pending.Swap(nil); next != nil {
		g.cfg = *next
		g.logger.Info("applied reloaded runner config")
	}

	g.level = NewLevel(g.cfg, g.src)
	g.player = NewPlayer(g.cfg)
	g.worldX = 0
	g.phase = PhaseIntro
	g.score = 0
	g.paused = false
	g.ticks = 0
	g.cause = ""
	g.revealed = false
	g.revealTicks = 0
	g.cooldownTicks = 0
	g.playerAnim = 0
	g.fireAnim = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		return core.StepResult{State: g.State(), Quit: true}
	}

	switch g.phase {
	case PhaseIntro:
		if in.Has(core.ActionStart) || in.Has(core.ActionJump) {
			g.setPhase(PhasePlaying)
		}
	case PhasePlaying:
		g.stepPlaying(in)
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.rebuild()
			g.logger.Debug("runner restarted")
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) setPhase(p Phase) {
	if g.phase == p {
		return
	}
	g.logger.Debug("phase change", "from", g.phase, "to", p, "score", g.score, "world_x", g.worldX)
	g.phase = p
}

func (g *Game) stepPlaying(in core.InputFrame) {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	if in.Has(core.ActionJump) {
		g.player.Jump()
	}
	if in.Has(core.ActionReveal) {
		g.triggerReveal()
	}

	running := g.scroll(in)

	g.level.Extend(g.worldX)
	g.platforms = g.level.PlatformRects(g.worldX, g.platforms[:0])
	g.player.Update(g.platforms, running)

	g.ticks++
	g.playerAnim += animSpeed
	g.fireAnim += animSpeed

	g.checkFires()
	if g.phase == PhasePlaying {
		g.checkHeals()
	}
	g.tickAbility()

	if g.phase == PhasePlaying && g.player.Rect.Y > g.cfg.Screen.Height {
		g.end(CauseFall)
	}
}

// scroll applies held direction input and reports whether the player runs.
func (g *Game) scroll(in core.InputFrame) bool {
	w := g.cfg.World
	running := false
	if in.IsHeld(core.ActionRight) {
		g.worldX += w.ScrollSpeed
		g.score += w.ScorePerTick
		g.player.FacingRight = true
		running = true
	}
	if in.IsHeld(core.ActionLeft) {
		if g.worldX > 0 {
			g.worldX = max(0, g.worldX-w.ScrollSpeed)
			g.score = max(0, g.score-w.ScorePerTick)
		}
		g.player.FacingRight = false
		running = true
	}
	return running
}

// checkFires damages the player once per fire and drops fires whose hit
// animation has finished.
func (g *Game) checkFires() {
	fires := g.level.Fires
	for i := range fires {
		f := &fires[i]
		if f.Collides(g.player.Rect, g.worldX) {
			f.MarkHit(g.cfg.Hazards.HitFrames)
			g.player.Damage()
			if g.player.HP <= 0 {
				g.end(CauseFire)
			}
			continue
		}
		f.Tick()
	}
	g.level.Fires = slices.DeleteFunc(fires, func(f FireHazard) bool {
		return f.Hit && f.HitTimer <= 0
	})
}

func (g *Game) checkHeals() {
	heals := g.level.Heals
	for i := range heals {
		if heals[i].Collect(g.player.Rect, g.worldX) {
			g.player.Heal(g.cfg.Player.MaxHP)
		}
	}
	g.level.Heals = slices.DeleteFunc(heals, func(h HealItem) bool {
		return h.Collected
	})
}

func (g *Game) triggerReveal() {
	if g.revealed || g.cooldownTicks > 0 {
		return
	}
	g.revealed = true
	g.revealTicks = g.cfg.RevealTicks()
	g.logger.Debug("reveal triggered", "ticks", g.revealTicks)
}

func (g *Game) tickAbility() {
	if g.revealed {
		g.revealTicks--
		if g.revealTicks <= 0 {
			g.revealed = false
			g.revealTicks = 0
			g.cooldownTicks = g.cfg.CooldownTicks()
		}
	}
	if g.cooldownTicks > 0 {
		g.cooldownTicks--
	}
}

func (g *Game) end(cause string) {
	if g.phase == PhaseGameOver {
		return
	}
	g.cause = cause
	g.setPhase(PhaseGameOver)
}

// Phase returns the current state tag.
func (g *Game) Phase() Phase {
	return g.phase
}

// WorldX returns the current scroll offset.
func (g *Game) WorldX() int {
	return g.worldX
}

// Player returns the player. The pointer stays valid until the next rebuild.
func (g *Game) Player() *Player {
	return g.player
}

// Level returns the current level.
func (g *Game) Level() *Level {
	return g.level
}

// Revealed reports whether the reveal ability is active.
func (g *Game) Revealed() bool {
	return g.revealed
}

// RevealTicks returns the remaining reveal duration in ticks.
func (g *Game) RevealTicks() int {
	return g.revealTicks
}

// CooldownTicks returns the remaining cooldown in ticks.
func (g *Game) CooldownTicks() int {
	return g.cooldownTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
		Distance: g.worldX,
		Ticks:    g.ticks,
		Cause:    g.cause,
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
