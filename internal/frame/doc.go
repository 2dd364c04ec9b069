// Package frame drives the per-frame simulation and drawing.
//
// A Loop owns no timer of its own: it asks a Scheduler for the next frame
// and draws onto whatever Canvas the display backend supplies. Queue is a
// Scheduler that fires only when told to, which lets headless commands and
// tests step frames deterministically.
package frame
