// Package assets resolves sprite ids to loaded sprites or to built-in
// placeholder visuals when the sprite files are unavailable.
package assets

import "github.com/vovakirdan/timerunner/internal/core"

// SpriteID identifies a visual used by the runner scene.
type SpriteID uint32

const (
	SpriteNone SpriteID = iota
	SpritePlayerIdle
	SpritePlayerRun
	SpritePlayerJump
	SpriteFire
	SpriteFireHit
	SpriteHeal
	SpritePlatform
	SpriteWall
	SpriteGround
	SpriteBackground
)

// All lists every drawable sprite id.
var All = []SpriteID{
	SpritePlayerIdle,
	SpritePlayerRun,
	SpritePlayerJump,
	SpriteFire,
	SpriteFireHit,
	SpriteHeal,
	SpritePlatform,
	SpriteWall,
	SpriteGround,
	SpriteBackground,
}

var spriteNames = map[SpriteID]string{
	SpritePlayerIdle: "player_idle",
	SpritePlayerRun:  "player_run",
	SpritePlayerJump: "player_jump",
	SpriteFire:       "fire",
	SpriteFireHit:    "fire_hit",
	SpriteHeal:       "heal",
	SpritePlatform:   "platform",
	SpriteWall:       "wall",
	SpriteGround:     "ground",
	SpriteBackground: "background",
}

// Name returns the file stem used for the sprite definition.
func (id SpriteID) Name() string {
	if n, ok := spriteNames[id]; ok {
		return n
	}
	return "none"
}

func (id SpriteID) String() string {
	return id.Name()
}

// Shape is the primitive a placeholder is drawn with.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Placeholder is the flat-colored fallback for a sprite.
type Placeholder struct {
	Shape Shape
	Fill  RGB
	Glyph rune
	Color core.Color
}

// Sprite is a resolved visual: either loaded from disk or a placeholder.
type Sprite struct {
	ID   SpriteID
	Name string

	// Glyphs are the terminal animation frames, one rune each.
	Glyphs []rune
	Color  core.Color

	// Image is the PNG path inside the asset filesystem. FrameW splits a
	// horizontal strip into frames; zero means a single frame.
	Image  string
	FrameW int

	Placeholder Placeholder

	// Missing is set when the sprite definition could not be loaded.
	Missing bool
}

// Glyph returns the terminal rune for an animation frame.
func (s Sprite) Glyph(frame int) rune {
	if len(s.Glyphs) == 0 {
		return s.Placeholder.Glyph
	}
	if frame < 0 {
		frame = -frame
	}
	return s.Glyphs[frame%len(s.Glyphs)]
}

// TermColor returns the terminal color for the sprite.
func (s Sprite) TermColor() core.Color {
	if s.Missing || s.Color == core.ColorDefault {
		return s.Placeholder.Color
	}
	return s.Color
}

var placeholders = map[SpriteID]Placeholder{
	SpritePlayerIdle: {ShapeRect, RGB{0, 100, 255}, '@', core.ColorBlue},
	SpritePlayerRun:  {ShapeRect, RGB{0, 150, 255}, '@', core.ColorBrightBlue},
	SpritePlayerJump: {ShapeRect, RGB{100, 200, 255}, '@', core.ColorBrightCyan},
	SpriteFire:       {ShapeRect, RGB{255, 100, 0}, '^', core.ColorOrange},
	SpriteFireHit:    {ShapeRect, RGB{255, 0, 0}, '*', core.ColorBrightRed},
	SpriteHeal:       {ShapeCircle, RGB{0, 255, 0}, '+', core.ColorBrightGreen},
	SpritePlatform:   {ShapeRect, RGB{100, 200, 100}, '=', core.ColorGreen},
	SpriteWall:       {ShapeRect, RGB{100, 200, 100}, '#', core.ColorGreen},
	SpriteGround:     {ShapeRect, RGB{100, 200, 100}, '▀', core.ColorGreen},
	SpriteBackground: {ShapeRect, RGB{50, 150, 255}, ' ', core.ColorDefault},
}

// PlaceholderFor returns the deterministic fallback sprite for id.
func PlaceholderFor(id SpriteID) Sprite {
	p, ok := placeholders[id]
	if !ok {
		p = Placeholder{Shape: ShapeRect, Fill: RGB{255, 0, 255}, Glyph: '?', Color: core.ColorMagenta}
	}
	return Sprite{
		ID:          id,
		Name:        id.Name(),
		Placeholder: p,
		Missing:     true,
	}
}
