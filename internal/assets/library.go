package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/timerunner/internal/core"
)

// ErrNoAssets is returned by Load when the library has no filesystem.
var ErrNoAssets = errors.New("assets: no asset directory configured")

// spriteFile is the on-disk sprite definition (sprites/<name>.yaml).
type spriteFile struct {
	Glyphs     string `yaml:"glyphs"`
	Color      string `yaml:"color"`
	Image      string `yaml:"image"`
	FrameWidth int    `yaml:"frame_width"`
}

// Library loads sprite definitions from an asset filesystem and caches the
// resolved result per id. It is safe for concurrent use so one library can
// back several SSH sessions.
type Library struct {
	fsys   fs.FS
	logger *log.Logger

	mu    sync.Mutex
	cache *intmap.Map[SpriteID, Sprite]
}

// NewLibrary creates a library over fsys. A nil fsys yields placeholders
// for every sprite.
func NewLibrary(fsys fs.FS, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Library{
		fsys:   fsys,
		logger: logger,
		cache:  intmap.New[SpriteID, Sprite](len(All)),
	}
}

// OpenDir creates a library rooted at dir. An empty dir or one that does
// not exist gives a placeholder-only library.
func OpenDir(dir string, logger *log.Logger) *Library {
	if dir == "" {
		return NewLibrary(nil, logger)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		if logger != nil {
			logger.Warn("asset directory unavailable, using placeholders", "dir", dir)
		}
		return NewLibrary(nil, logger)
	}
	return NewLibrary(os.DirFS(dir), logger)
}

// FS returns the asset filesystem, or nil for a placeholder-only library.
func (l *Library) FS() fs.FS {
	return l.fsys
}

// Load reads the sprite definition for id.
func (l *Library) Load(id SpriteID) (Sprite, error) {
	if l.fsys == nil {
		return Sprite{}, ErrNoAssets
	}

	name := path.Join("sprites", id.Name()+".yaml")
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Sprite{}, fmt.Errorf("assets: read %s: %w", name, err)
	}

	var def spriteFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Sprite{}, fmt.Errorf("assets: parse %s: %w", name, err)
	}
	if def.Glyphs == "" && def.Image == "" {
		return Sprite{}, fmt.Errorf("assets: %s defines neither glyphs nor image", name)
	}
	if def.FrameWidth < 0 {
		return Sprite{}, fmt.Errorf("assets: %s has negative frame_width", name)
	}

	sprite := PlaceholderFor(id)
	sprite.Missing = false
	sprite.FrameW = def.FrameWidth

	if def.Glyphs != "" {
		if !utf8.ValidString(def.Glyphs) {
			return Sprite{}, fmt.Errorf("assets: %s glyphs are not valid UTF-8", name)
		}
		sprite.Glyphs = []rune(def.Glyphs)
	}
	if def.Color != "" {
		c, ok := core.ParseColor(def.Color)
		if !ok {
			return Sprite{}, fmt.Errorf("assets: %s: unknown color %q", name, def.Color)
		}
		sprite.Color = c
	}
	if def.Image != "" {
		img := path.Clean(def.Image)
		if _, err := fs.Stat(l.fsys, img); err != nil {
			return Sprite{}, fmt.Errorf("assets: %s image: %w", name, err)
		}
		sprite.Image = img
	}
	return sprite, nil
}

// Resolve returns the sprite for id, substituting the placeholder when the
// definition cannot be loaded. Each failure is logged once.
func (l *Library) Resolve(id SpriteID) Sprite {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.cache.Get(id); ok {
		return s
	}

	s, err := l.Load(id)
	if err != nil {
		if !errors.Is(err, ErrNoAssets) {
			l.logger.Warn("sprite unavailable, using placeholder", "sprite", id.Name(), "error", err)
		}
		s = PlaceholderFor(id)
	}
	l.cache.Put(id, s)
	return s
}

// ResolveAll resolves every sprite the scene uses. Frontends call it once
// at construction so the draw path never touches the filesystem.
func (l *Library) ResolveAll() map[SpriteID]Sprite {
	out := make(map[SpriteID]Sprite, len(All))
	for _, id := range All {
		out[id] = l.Resolve(id)
	}
	return out
}

// Missing returns the ids that fell back to placeholders.
func (l *Library) Missing() []SpriteID {
	var missing []SpriteID
	for _, id := range All {
		if l.Resolve(id).Missing {
			missing = append(missing, id)
		}
	}
	return missing
}
