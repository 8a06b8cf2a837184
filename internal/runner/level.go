package runner

import (
	"github.com/vovakirdan/timerunner/internal/config"
	"github.com/vovakirdan/timerunner/internal/core"
)

// Block is one platform tile in world space.
type Block struct {
	X, Y int
	Wall bool
}

// Group is a run of contiguous blocks sharing one y-level, the unit of
// level generation.
type Group struct {
	X, Y     int
	Fires    int  // fires seeded on the group
	Hidden   bool // group counts as holding an invisible fire for the blackout rule
	Blackout bool // every seeded fire is invisible
	Initial  bool
}

// Level owns every entity of a run. Blocks are never removed; fires and
// heals are removed once hit or collected.
type Level struct {
	cfg config.RunnerConfig
	src Source
	rch *Reach

	Blocks []Block
	Groups []Group
	Fires  []FireHazard
	Heals  []HealItem

	fireCounts         []int
	prevGroupInvisible bool
	maxBlockX          int
}

// NewLevel builds the wall, the fixed starting groups and their fires
// and heals.
func NewLevel(cfg config.RunnerConfig, src Source) *Level {
	l := &Level{
		cfg: cfg,
		src: src,
	}
	if cfg.Generation.EnforceReachable {
		l.rch = NewReach(cfg)
	}

	l.buildWall()
	for _, g := range cfg.Generation.InitialGroups {
		l.addGroup(g.X, g.Y, true)
	}

	// starting fires are all seeded before starting heals, so heals here
	// do not avoid fires
	for i := range l.Groups {
		l.seedFires(i, cfg.Hazards.InitialCountWeights, 0, cfg.Hazards.InitialInvisibleChance)
	}
	for i := range l.Groups {
		l.seedInitialHeal(l.Groups[i])
	}
	return l
}

func (l *Level) buildWall() {
	h := l.cfg.World.WallBlockH
	count := l.cfg.Screen.Height/h + l.cfg.World.WallExtraBlocks
	for i := 0; i < count; i++ {
		l.addBlock(Block{X: 0, Y: l.cfg.Screen.GroundTop - h*(i+1), Wall: true})
	}
}

func (l *Level) addBlock(b Block) {
	if len(l.Blocks) == 0 || b.X > l.maxBlockX {
		l.maxBlockX = b.X
	}
	l.Blocks = append(l.Blocks, b)
}

func (l *Level) addGroup(x, y int, initial bool) {
	l.Groups = append(l.Groups, Group{X: x, Y: y, Initial: initial})
	for i := 0; i < l.cfg.Generation.GroupBlocks; i++ {
		l.addBlock(Block{X: x + i*l.cfg.World.TileW, Y: y})
	}
}

// LastBlockX returns the world x of the rightmost block.
func (l *Level) LastBlockX() int {
	return l.maxBlockX
}

// NeedsGroup reports whether forward generation should run for worldX.
func (l *Level) NeedsGroup(worldX int) bool {
	return l.maxBlockX < worldX+l.cfg.Screen.Width+l.cfg.Generation.LookAhead
}

// Extend appends at most one group ahead of worldX. It reports whether a
// group was added.
func (l *Level) Extend(worldX int) bool {
	if !l.NeedsGroup(worldX) {
		return false
	}
	gen := l.cfg.Generation

	x := l.maxBlockX + gen.GroupGap
	base := gen.BaseLevels[l.src.IntN(len(gen.BaseLevels))]
	y := max(gen.MinY, base-randInt(l.src, gen.RaiseMin, gen.RaiseMax))
	if l.rch != nil && len(l.Groups) > 0 {
		y = l.rch.Settle(l.Groups[len(l.Groups)-1], Group{X: x, Y: y})
	}

	l.addGroup(x, y, false)
	gi := len(l.Groups) - 1
	l.seedFires(gi, l.cfg.Hazards.CountWeights, l.cfg.Hazards.GroundChance, l.cfg.Hazards.InvisibleChance)
	l.seedHeal(l.Groups[gi])
	return true
}

// drawFireCount draws how many fires a group gets, never allowing a third
// empty group in a row.
func (l *Level) drawFireCount(weights []int) int {
	hz := l.cfg.Hazards
	n := weighted(l.src, seq(0, hz.MaxPerGroup), weights)
	k := len(l.fireCounts)
	if n == 0 && k >= 2 && l.fireCounts[k-1] == 0 && l.fireCounts[k-2] == 0 {
		n = weighted(l.src, seq(1, hz.MaxPerGroup), hz.RefillWeights)
	}
	l.fireCounts = append(l.fireCounts, n)
	return n
}

func (l *Level) seedFires(gi int, weights []int, groundChance, invisibleChance float64) {
	hz := l.cfg.Hazards
	tileW := l.cfg.World.TileW
	g := &l.Groups[gi]

	n := l.drawFireCount(weights)
	slots := shuffled(l.src, l.cfg.Generation.GroupBlocks)
	first := len(l.Fires)
	hidden := false

	for i := 0; i < n; i++ {
		f := FireHazard{
			X:    g.X + slots[i]*tileW + (tileW-hz.Size)/2,
			Y:    g.Y - hz.PlatformOffset,
			Size: hz.Size,
		}
		if groundChance > 0 && chance(l.src, groundChance) {
			f.Y = l.cfg.Screen.GroundTop - hz.Size
		}
		f.AlwaysVisible = !chance(l.src, invisibleChance)
		if !f.AlwaysVisible {
			hidden = true
		}
		l.Fires = append(l.Fires, f)
	}

	// no two hidden groups in a row: show the newest invisible fire
	if hidden && l.prevGroupInvisible {
		for i := len(l.Fires) - 1; i >= first; i-- {
			if !l.Fires[i].AlwaysVisible {
				l.Fires[i].AlwaysVisible = true
				hidden = false
				break
			}
		}
	}
	l.prevGroupInvisible = hidden

	blackout := n > 0
	for i := first; i < len(l.Fires); i++ {
		if l.Fires[i].AlwaysVisible {
			blackout = false
		}
	}
	g.Fires = n
	g.Hidden = hidden
	g.Blackout = blackout
}

func (l *Level) healAt(g Group, slot int) HealItem {
	hl := l.cfg.Heals
	tileW := l.cfg.World.TileW
	return HealItem{
		X:    g.X + slot*tileW + (tileW-hl.Size)/2,
		Y:    g.Y - hl.PlatformOffset,
		Size: hl.Size,
	}
}

func (l *Level) seedInitialHeal(g Group) {
	if !chance(l.src, l.cfg.Heals.Chance) {
		return
	}
	l.Heals = append(l.Heals, l.healAt(g, l.src.IntN(l.cfg.Generation.GroupBlocks)))
}

// seedHeal places at most one heal on a new group, rejecting spots that
// crowd an existing fire.
func (l *Level) seedHeal(g Group) {
	hl := l.cfg.Heals
	if !chance(l.src, hl.Chance) {
		return
	}
	for attempt := 0; attempt < hl.Attempts; attempt++ {
		h := l.healAt(g, l.src.IntN(l.cfg.Generation.GroupBlocks))
		if !l.crowded(h) {
			l.Heals = append(l.Heals, h)
			return
		}
	}
}

func (l *Level) crowded(h HealItem) bool {
	c := l.cfg.Heals.Clearance
	for i := range l.Fires {
		f := &l.Fires[i]
		if core.Abs(f.X-h.X) < c && core.Abs(f.Y-h.Y) < c {
			return true
		}
	}
	return false
}

// BlockRect returns the world bounds of a block.
func (l *Level) BlockRect(b Block) core.Rect {
	if b.Wall {
		return core.NewRect(b.X, b.Y, l.cfg.World.TileW, l.cfg.World.WallBlockH)
	}
	return core.NewRect(b.X, b.Y, l.cfg.World.TileW, l.cfg.World.TileH)
}

// GroupRect returns the world bounds of a whole group.
func (l *Level) GroupRect(g Group) core.Rect {
	return core.NewRect(g.X, g.Y, l.cfg.Generation.GroupBlocks*l.cfg.World.TileW, l.cfg.World.TileH)
}

// PlatformRects appends the screen-space rectangles of blocks near the
// visible area to buf, in generation order.
func (l *Level) PlatformRects(worldX int, buf []core.Rect) []core.Rect {
	lo := worldX - l.cfg.World.TileW
	hi := worldX + l.cfg.Screen.Width + l.cfg.World.TileW
	for _, b := range l.Blocks {
		if b.X < lo || b.X > hi {
			continue
		}
		buf = append(buf, l.BlockRect(b).Translate(-worldX, 0))
	}
	return buf
}
