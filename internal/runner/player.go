package runner

import (
	"github.com/vovakirdan/timerunner/internal/config"
	"github.com/vovakirdan/timerunner/internal/core"
)

// Player is the screen-anchored runner. Its X never changes; the world
// scrolls underneath it.
type Player struct {
	Rect        core.Rect
	VY          int
	JumpCount   int
	OnGround    bool
	InAir       bool
	Running     bool
	FacingRight bool
	HP          int

	gravity   int
	jumpSpeed int
	maxJumps  int
	bumpSpeed int
	groundTop int
}

// NewPlayer places a player with its bottom on the ground line.
func NewPlayer(cfg config.RunnerConfig) *Player {
	size := cfg.Player.Size
	p := &Player{
		Rect:        core.NewRect(cfg.World.TileW+cfg.Player.StartOffset, 0, size, size),
		OnGround:    true,
		FacingRight: true,
		HP:          cfg.Player.MaxHP,
		gravity:     cfg.Physics.Gravity,
		jumpSpeed:   cfg.Physics.JumpSpeed,
		maxJumps:    cfg.Physics.MaxJumps,
		bumpSpeed:   cfg.Physics.BumpSpeed,
		groundTop:   cfg.Screen.GroundTop,
	}
	p.Rect.SetBottom(cfg.Screen.GroundTop)
	return p
}

// Jump starts a jump if any are left. Returns false when the jump was
// rejected because every jump since the last landing is used up.
func (p *Player) Jump() bool {
	if p.JumpCount >= p.maxJumps {
		return false
	}
	p.VY = -p.jumpSpeed
	p.OnGround = false
	p.JumpCount++
	return true
}

// Update records the running flag and integrates one tick of physics
// against platforms given in screen space, in generation order.
func (p *Player) Update(platforms []core.Rect, running bool) {
	p.Running = running
	p.applyGravityAndCollisions(platforms)
}

func (p *Player) applyGravityAndCollisions(platforms []core.Rect) {
	prevBottom := p.Rect.Bottom()
	prevTop := p.Rect.Top()

	p.VY += p.gravity
	p.Rect.Y += p.VY
	p.OnGround = false

	// ground is infinite, so it is checked first every tick
	if p.Rect.Bottom() >= p.groundTop {
		p.land(p.groundTop)
	}

	for _, plat := range platforms {
		if !core.HorizontalOverlap(p.Rect, plat) {
			continue
		}
		if p.VY >= 0 && prevBottom <= plat.Top() && p.Rect.Bottom() >= plat.Top() {
			p.land(plat.Top())
			break
		}
		if p.VY < 0 && prevTop >= plat.Bottom() && p.Rect.Top() <= plat.Bottom() {
			p.Rect.SetTop(plat.Bottom() + 1)
			p.VY = p.bumpSpeed
			p.OnGround = false
			break
		}
	}

	p.InAir = !p.OnGround
}

func (p *Player) land(top int) {
	p.Rect.SetBottom(top)
	p.VY = 0
	p.OnGround = true
	p.JumpCount = 0
}

// Damage removes one hit point, never below zero.
func (p *Player) Damage() {
	if p.HP > 0 {
		p.HP--
	}
}

// Heal restores one hit point up to max.
func (p *Player) Heal(max int) {
	if p.HP < max {
		p.HP++
	}
}
