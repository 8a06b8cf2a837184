package runner

import (
	"fmt"

	"github.com/vovakirdan/timerunner/internal/config"
	"github.com/vovakirdan/timerunner/internal/core"
)

// Reach answers whether one platform group can be reached from another
// by running the real player physics. The player holds right for the
// whole attempt and leaves from the far edge of the source group, so a
// positive answer is always achievable in play.
type Reach struct {
	cfg      config.RunnerConfig
	maxTicks int
}

// NewReach creates a reachability checker for cfg.
func NewReach(cfg config.RunnerConfig) *Reach {
	return &Reach{cfg: cfg, maxTicks: 4 * cfg.Physics.JumpSpeed * cfg.Physics.MaxJumps / max(1, cfg.Physics.Gravity)}
}

func (r *Reach) groupRect(g Group) core.Rect {
	return core.NewRect(g.X, g.Y, r.cfg.Generation.GroupBlocks*r.cfg.World.TileW, r.cfg.World.TileH)
}

// CanReach reports whether a player standing on from can land on to.
// Plans tried: a single jump, then a second jump on every tick of the
// first jump's flight.
func (r *Reach) CanReach(from, to Group) bool {
	src, dst := r.groupRect(from), r.groupRect(to)
	if r.attempt(src, dst, -1) {
		return true
	}
	if r.cfg.Physics.MaxJumps < 2 {
		return false
	}
	for second := 1; second <= r.maxTicks; second++ {
		if r.attempt(src, dst, second) {
			return true
		}
	}
	return false
}

// attempt simulates one jump plan. second < 0 means no second jump.
func (r *Reach) attempt(src, dst core.Rect, second int) bool {
	p := NewPlayer(r.cfg)
	p.Rect.SetBottom(src.Top())

	// one pixel of the player still overlaps the source platform
	worldX := src.Right() - 1 - p.Rect.Left()
	p.Jump()

	plats := make([]core.Rect, 0, 2)
	for t := 1; t <= r.maxTicks*2; t++ {
		if t == second {
			p.Jump()
		}
		worldX += r.cfg.World.ScrollSpeed

		plats = append(plats[:0], src.Translate(-worldX, 0), dst.Translate(-worldX, 0))
		p.Update(plats, true)

		target := plats[1]
		if p.OnGround {
			return p.Rect.Bottom() == target.Top() && core.HorizontalOverlap(p.Rect, target)
		}
		if target.Right() <= p.Rect.Left() {
			return false
		}
	}
	return false
}

// Settle lowers a candidate group until it is reachable from prev, in
// steps of generation.lower_step, and returns the resulting y. The y
// never goes below the lowest base level.
func (r *Reach) Settle(prev, candidate Group) int {
	floor := candidate.Y
	for _, b := range r.cfg.Generation.BaseLevels {
		floor = max(floor, b)
	}
	for candidate.Y < floor && !r.CanReach(prev, candidate) {
		candidate.Y = min(floor, candidate.Y+r.cfg.Generation.LowerStep)
	}
	return candidate.Y
}

// MaxRise returns the highest a player climbs with every jump spent at
// the apex of the previous one.
func (r *Reach) MaxRise() int {
	p := NewPlayer(r.cfg)
	ground := p.Rect.Top()
	best := 0
	p.Jump()
	for t := 0; t < r.maxTicks*2; t++ {
		if p.VY >= 0 && p.JumpCount < r.cfg.Physics.MaxJumps {
			p.Jump()
		}
		p.Update(nil, false)
		best = max(best, ground-p.Rect.Top())
		if p.OnGround {
			break
		}
	}
	return best
}

// Violation describes a generated layout that breaks a level invariant.
type Violation struct {
	Kind  string
	Group int
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at group %d", v.Kind, v.Group)
}

const (
	ViolationUnreachable = "unreachable"
	ViolationEmptyRun    = "three empty groups"
	ViolationBlackout    = "two blacked-out groups"
)

// Audit checks every consecutive pair and triple of groups in l.
func (r *Reach) Audit(l *Level) []Violation {
	var out []Violation
	gs := l.Groups
	for i := 1; i < len(gs); i++ {
		if !r.CanReach(gs[i-1], gs[i]) {
			out = append(out, Violation{Kind: ViolationUnreachable, Group: i})
		}
		if gs[i-1].Hidden && gs[i].Hidden {
			out = append(out, Violation{Kind: ViolationBlackout, Group: i})
		} else if gs[i-1].Blackout && gs[i].Blackout {
			out = append(out, Violation{Kind: ViolationBlackout, Group: i})
		}
		if i >= 2 && gs[i-2].Fires == 0 && gs[i-1].Fires == 0 && gs[i].Fires == 0 {
			out = append(out, Violation{Kind: ViolationEmptyRun, Group: i})
		}
	}
	return out
}
