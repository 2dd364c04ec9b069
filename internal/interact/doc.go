// Package interact owns the pointer, touch and wheel state that steers the
// particle field.
//
// A [Controller] is a small state machine (idle, hover, dragging) fed with
// [Event] values. It mutates two state structs, [Transform] (zoom and
// rotation) and [Pointer] (position, drag bookkeeping), and the current
// [Mode]. Renderers read them once per frame through [Controller.Snapshot].
//
// Events carry their own timestamps so click classification never reads the
// wall clock.
//
// # Thread Safety
//
// Controller is NOT thread-safe; drive it from the goroutine that renders.
package interact
