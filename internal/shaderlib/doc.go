// Package shaderlib holds the pure per-pixel helpers shared by the compositor
// and the lens: hashing and value noise, GLSL-style scalar helpers, color-space
// conversions and depth-buffer linearization.
//
// Every function is stateless; the same input always yields the same output.
package shaderlib
