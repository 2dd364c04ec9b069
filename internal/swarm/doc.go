// Package swarm holds the particle set and its per-frame update rule.
//
// A [Swarm] is built once per (entity list, canvas size) pair: every entity
// becomes a [Particle] with one target per formation, assigned positionally
// from the sampled shapes ([Assign]). Each frame, [Particle.Seek] eases a
// particle toward its active target and, when the pointer is close, pushes it
// away first.
//
// The update is position-space easing, not force integration: there is no
// velocity, and Density only scales the push.
package swarm
