package runner

import "github.com/vovakirdan/timerunner/internal/core"

// FireHazard damages the player on contact. Invisible fires (AlwaysVisible
// false) are only drawn while the reveal ability is active but collide
// all the time.
type FireHazard struct {
	X, Y          int // world position
	Size          int
	AlwaysVisible bool
	Hit           bool
	HitTimer      int // ticks left showing the hit animation
}

// Rect returns the hazard bounds in world space.
func (f *FireHazard) Rect() core.Rect {
	return core.NewRect(f.X, f.Y, f.Size, f.Size)
}

// ScreenRect returns the hazard bounds in screen space.
func (f *FireHazard) ScreenRect(worldX int) core.Rect {
	return f.Rect().Translate(-worldX, 0)
}

// Collides reports contact with the screen-space player rectangle.
// A fire that has already been hit never collides again.
func (f *FireHazard) Collides(player core.Rect, worldX int) bool {
	if f.Hit {
		return false
	}
	return player.Intersects(f.ScreenRect(worldX))
}

// MarkHit switches the fire into its hit state. Returns false if it was
// already hit.
func (f *FireHazard) MarkHit(frames int) bool {
	if f.Hit {
		return false
	}
	f.Hit = true
	f.HitTimer = frames
	return true
}

// Tick counts down the hit animation and reports whether the fire should
// be removed.
func (f *FireHazard) Tick() bool {
	if !f.Hit {
		return false
	}
	f.HitTimer--
	return f.HitTimer <= 0
}

// HealItem restores one hit point when touched.
type HealItem struct {
	X, Y      int // world position
	Size      int
	Collected bool
}

// Rect returns the item bounds in world space.
func (h *HealItem) Rect() core.Rect {
	return core.NewRect(h.X, h.Y, h.Size, h.Size)
}

// ScreenRect returns the item bounds in screen space.
func (h *HealItem) ScreenRect(worldX int) core.Rect {
	return h.Rect().Translate(-worldX, 0)
}

// Collect marks the item collected on first contact and reports whether
// it was collected by this call.
func (h *HealItem) Collect(player core.Rect, worldX int) bool {
	if h.Collected || !player.Intersects(h.ScreenRect(worldX)) {
		return false
	}
	h.Collected = true
	return true
}
