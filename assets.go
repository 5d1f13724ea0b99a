package warpfx

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DecodeImage decodes any registered format (PNG, JPEG, GIF, BMP, WebP).
// When maxEdge > 0 and the longer side exceeds it, the image is resampled
// with Catmull-Rom so its longer side equals maxEdge.
func DecodeImage(r io.Reader, maxEdge int) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("warpfx: decode image: %w", err)
	}
	Logger().Debug("image decoded", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return fitImage(img, maxEdge), nil
}

// fitImage downsamples img so neither side exceeds maxEdge.
func fitImage(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxEdge <= 0 || longest <= maxEdge {
		return img
	}
	k := float64(maxEdge) / float64(longest)
	w := max(int(math.Round(float64(b.Dx())*k)), 1)
	h := max(int(math.Round(float64(b.Dy())*k)), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// LoadTexture reads and decodes an image file into a GPU texture.
func LoadTexture(path string, maxEdge int) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("warpfx: open texture: %w", err)
	}
	defer f.Close()

	img, err := DecodeImage(f, maxEdge)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadTextures loads every path in order. The first failure aborts the load
// and deallocates the textures created so far.
func LoadTextures(paths []string, maxEdge int) ([]*ebiten.Image, error) {
	out := make([]*ebiten.Image, 0, len(paths))
	for _, p := range paths {
		t, err := LoadTexture(p, maxEdge)
		if err != nil {
			for _, done := range out {
				done.Deallocate()
			}
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// GeneratePattern renders a procedural stand-in image: a diagonal gradient
// whose hue depends on index, crossed by a checker of soft stripes.
func GeneratePattern(index, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	hue := math.Mod(float64(index)*0.318, 1)
	for y := range h {
		for x := range w {
			u := float64(x) / float64(max(w-1, 1))
			v := float64(y) / float64(max(h-1, 1))
			stripe := 0.5 + 0.5*math.Sin((u+v)*math.Pi*8)
			r, g, b := hsvToRGB(hue+0.15*u, 0.6+0.3*v, 0.55+0.35*stripe)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(r*255 + 0.5),
				G: uint8(g*255 + 0.5),
				B: uint8(b*255 + 0.5),
				A: 255,
			})
		}
	}
	return img
}

// GenerateTextures builds n procedural textures of the given size.
func GenerateTextures(n, w, h int) []*ebiten.Image {
	out := make([]*ebiten.Image, n)
	for i := range out {
		out[i] = ebiten.NewImageFromImage(GeneratePattern(i, w, h))
	}
	return out
}

// hsvToRGB converts HSV (all [0,1], hue wraps) to RGB.
func hsvToRGB(h, s, v float64) (r, g, b float64) {
	h -= math.Floor(h)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch i % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
