package shape

import "errors"

var (
	// ErrPathSyntax indicates malformed SVG path data.
	ErrPathSyntax = errors.New("shape: malformed path data")

	// ErrEmptyPath indicates path data without any drawable extent.
	ErrEmptyPath = errors.New("shape: path has no extent")

	// ErrNoFont indicates no font face could be loaded for text rendering.
	ErrNoFont = errors.New("shape: no usable font")
)
