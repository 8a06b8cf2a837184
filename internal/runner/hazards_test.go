package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/timerunner/internal/core"
)

func TestFireCollidesInScreenSpace(t *testing.T) {
	player := core.NewRect(58, 322, 32, 32)
	f := &FireHazard{X: 1060, Y: 322, Size: 32}

	assert.False(t, f.Collides(player, 0))
	assert.True(t, f.Collides(player, 1000), "fire at world 1060 sits at screen 60")
	assert.False(t, f.Collides(player, 1100))
}

func TestInvisibleFireStillCollides(t *testing.T) {
	player := core.NewRect(58, 322, 32, 32)
	f := &FireHazard{X: 60, Y: 322, Size: 32, AlwaysVisible: false}

	assert.True(t, f.Collides(player, 0))
}

func TestFireHitOnlyOnce(t *testing.T) {
	player := core.NewRect(58, 322, 32, 32)
	f := &FireHazard{X: 60, Y: 322, Size: 32}

	assert.True(t, f.MarkHit(30))
	assert.Equal(t, 30, f.HitTimer)
	assert.False(t, f.Collides(player, 0), "a hit fire never collides again")
	assert.False(t, f.MarkHit(30))
	assert.Equal(t, 30, f.HitTimer, "second hit does not restart the timer")
}

func TestFireHitTimerExpires(t *testing.T) {
	f := &FireHazard{X: 0, Y: 0, Size: 32}
	assert.False(t, f.Tick(), "unhit fires never expire")

	f.MarkHit(3)
	assert.False(t, f.Tick())
	assert.False(t, f.Tick())
	assert.True(t, f.Tick())
}

func TestHealCollectIdempotent(t *testing.T) {
	player := core.NewRect(58, 322, 32, 32)
	h := &HealItem{X: 560, Y: 330, Size: 24}

	assert.False(t, h.Collect(player, 0))
	assert.True(t, h.Collect(player, 500))
	assert.True(t, h.Collected)
	assert.False(t, h.Collect(player, 500), "collected items never collide again")
}
