// Package cvprocessor runs a subset of operations through OpenCV (build
// tag with_cv); other kinds are reported as unavailable, so it is meant to
// be combined with another backend via package fallback.
package cvprocessor
