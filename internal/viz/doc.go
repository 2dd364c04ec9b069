// Package viz renders the crowd in a terminal.
//
// Particles are plotted on a braille [Canvas] (2x4 dots per cell) in their
// entity colors; mouse and wheel input drive the same interaction controller
// as the window backend.
//
// # Key Bindings
//
//	Space - Cycle formation
//	+/-   - Zoom
//	T     - Cycle color themes
//	?     - Show help and convergence plot
//	Q     - Quit
package viz
