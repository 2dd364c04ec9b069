package shape

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"time"

	"github.com/san-kum/crowdmorph/internal/geom"
)

// DefaultStride is the scan step, in pixels, on both axes.
const DefaultStride = 4

var (
	Background = color.RGBA{0, 0, 0, 255}
	Foreground = color.RGBA{255, 255, 255, 255}
)

// Source paints a form in Foreground onto a bitmap already filled with
// Background.
type Source interface {
	Rasterize(dst *image.RGBA) error
}

// Shape is an unordered point cloud approximating a rasterized form.
type Shape []geom.Point

type Sampler struct {
	Stride int
	Rand   *rand.Rand
}

func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{Stride: DefaultStride, Rand: rng}
}

// Sample returns exactly count points drawn from the foreground of src
// rendered at w×h. Zero or negative dimensions yield an empty Shape. A source
// that fails to rasterize yields count center points along with the error.
func (s *Sampler) Sample(src Source, w, h, count int) (Shape, error) {
	if w <= 0 || h <= 0 {
		return Shape{}, nil
	}
	if count < 0 {
		count = 0
	}

	img, err := Render(src, w, h)
	if err != nil {
		return Pick(nil, count, w, h), fmt.Errorf("rasterize: %w", err)
	}

	candidates := Extract(img, s.stride())
	Shuffle(candidates, s.rng())
	return Pick(candidates, count, w, h), nil
}

func (s *Sampler) stride() int {
	if s.Stride <= 0 {
		return DefaultStride
	}
	return s.Stride
}

func (s *Sampler) rng() *rand.Rand {
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s.Rand
}

// Render paints src onto a fresh w×h Background bitmap.
func Render(src Source, w, h int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	if src == nil {
		return img, nil
	}
	if err := src.Rasterize(img); err != nil {
		return img, err
	}
	return img, nil
}

// Extract collects the grid coordinates, every stride pixels, whose color
// differs from Background.
func Extract(img *image.RGBA, stride int) []geom.Point {
	if stride <= 0 {
		stride = DefaultStride
	}
	b := img.Bounds()
	var pts []geom.Point
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			if img.RGBAAt(x, y) != Background {
				pts = append(pts, geom.Pt(float64(x), float64(y)))
			}
		}
	}
	return pts
}

// Shuffle permutes pts uniformly in place (Fisher–Yates).
func Shuffle(pts []geom.Point, rng *rand.Rand) {
	for i := len(pts) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// Pick reads count points cyclically from candidates. With no candidates every
// point is the center of the w×h canvas.
func Pick(candidates []geom.Point, count, w, h int) Shape {
	if count < 0 {
		count = 0
	}
	out := make(Shape, count)
	if len(candidates) == 0 {
		c := geom.Center(w, h)
		for i := range out {
			out[i] = c
		}
		return out
	}
	for i := range out {
		out[i] = candidates[i%len(candidates)]
	}
	return out
}
