// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"
)

// fontURL is the virtual asset name the embedded Go font is registered under
const fontURL = "gravity-vortex/goregular.ttf"

// Palette holds the colors used for every drawable
type Palette struct {
	Background color.Color
	Ship       color.Color
	Planet     color.Color
	Core       color.Color
	Pod        color.Color
	Text       color.Color
	Warning    color.Color
	Star       color.NRGBA
}

// DefaultPalette returns the standard colors
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{5, 5, 20, 255},
		Ship:       color.RGBA{235, 235, 255, 255},
		Planet:     color.RGBA{70, 110, 180, 255},
		Core:       color.RGBA{255, 220, 40, 255},
		Pod:        color.RGBA{60, 220, 90, 255},
		Text:       color.RGBA{220, 220, 220, 255},
		Warning:    color.RGBA{255, 70, 70, 255},
		Star:       color.NRGBA{200, 200, 255, 255},
	}
}

// AssetManager loads the font and builds the background texture
type AssetManager struct {
	Palette Palette

	fontLoaded bool
	fonts      map[float64]*common.Font
}

// NewAssetManager creates an asset manager with the default palette
func NewAssetManager() *AssetManager {
	return &AssetManager{
		Palette: DefaultPalette(),
		fonts:   make(map[float64]*common.Font),
	}
}

// LoadFont registers the embedded Go font with engo's file loader. It must
// run during a scene's Preload.
func (am *AssetManager) LoadFont() error {
	if am.fontLoaded {
		return nil
	}
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	am.fontLoaded = true
	return nil
}

// Font returns the embedded font at size, creating it on first use.
func (am *AssetManager) Font(size float64) (*common.Font, error) {
	if f, ok := am.fonts[size]; ok {
		return f, nil
	}
	if !am.fontLoaded {
		return nil, fmt.Errorf("font not loaded")
	}

	f := &common.Font{
		URL:  fontURL,
		FG:   am.Palette.Text,
		Size: size,
	}
	if err := f.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to create font of size %v: %w", size, err)
	}
	am.fonts[size] = f
	return f, nil
}

// Background returns a starfield texture covering width x height pixels.
func (am *AssetManager) Background(width, height int, seed uint64) common.Drawable {
	img := Starfield(width, height, 0.0015, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), am.Palette.Background, am.Palette.Star)
	return common.NewTextureSingle(common.NewImageObject(img))
}

// Starfield paints a background of the given color sprinkled with single
// pixel stars. density is the chance of any pixel being a star.
func Starfield(width, height int, density float64, rng *rand.Rand, bg color.Color, star color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	r, g, b, a := bg.RGBA()
	base := color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, base)
		}
	}

	stars := int(float64(width*height) * density)
	for i := 0; i < stars; i++ {
		s := star
		s.A = uint8(96 + rng.IntN(160))
		img.SetNRGBA(rng.IntN(width), rng.IntN(height), s)
	}
	return img
}
