// Package shape turns a vector path or a text string into a sparse point
// cloud that traces the filled form.
//
// Sampling is rasterize-then-scan:
//
//   - [Source.Rasterize] paints the form opaque white on an opaque black bitmap
//   - [Extract] reads every Stride-th pixel on both axes and keeps the
//     non-background ones
//   - the candidates are shuffled with the injected *rand.Rand
//   - [Pick] reads exactly count points cyclically, falling back to the canvas
//     center when nothing was painted
//
// Two sources are provided: [Path] for SVG path data (compiled with oksvg,
// filled with rasterx) and [Text] for strings (drawn with
// x/image/font/opentype, Go Bold as the last fallback face).
//
// # Example
//
//	s := shape.NewSampler(rand.New(rand.NewSource(1)))
//	pts, err := s.Sample(shape.Text{Value: "1650"}, 800, 600, 500)
//
// Sampling is not deterministic unless the Sampler is given a seeded source.
package shape
