// Package geom provides the planar primitives shared by the sampler, the
// particle simulation and the renderers.
//
// All coordinates live in canvas pixel space with the origin at the top-left
// corner and y growing downwards:
//
//   - [Point]: a position or displacement
//   - [Center]: the middle of a w×h canvas, used as the fallback target
//
// # Example
//
//	c := geom.Center(800, 600)
//	d := geom.Pt(10, 10).Sub(c).Len()
package geom
