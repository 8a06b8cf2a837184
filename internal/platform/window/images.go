package window

import (
	"fmt"
	"image"
	"image/png"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/timerunner/internal/assets"
)

// sheet is a decoded sprite image split into animation frames.
type sheet struct {
	frames []*ebiten.Image
}

func (s *sheet) frame(i int) *ebiten.Image {
	if i < 0 {
		i = -i
	}
	return s.frames[i%len(s.frames)]
}

// loadSheet decodes the sprite's PNG from the library filesystem.
func loadSheet(lib *assets.Library, sp assets.Sprite) (*sheet, error) {
	fsys := lib.FS()
	if fsys == nil || sp.Missing || sp.Image == "" {
		return nil, assets.ErrNoAssets
	}

	f, err := fsys.Open(sp.Image)
	if err != nil {
		return nil, fmt.Errorf("window: open %s: %w", sp.Image, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("window: decode %s: %w", sp.Image, err)
	}

	full := ebiten.NewImageFromImage(img)
	b := img.Bounds()
	fw := sp.FrameW
	if fw <= 0 || fw > b.Dx() {
		return &sheet{frames: []*ebiten.Image{full}}, nil
	}

	n := b.Dx() / fw
	s := &sheet{frames: make([]*ebiten.Image, 0, n)}
	for i := range n {
		r := image.Rect(i*fw, 0, (i+1)*fw, b.Dy())
		s.frames = append(s.frames, full.SubImage(r).(*ebiten.Image))
	}
	return s, nil
}
