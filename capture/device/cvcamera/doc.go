// Package cvcamera opens local cameras through OpenCV (build tag
// with_cv). The back camera is device index 0, the front one is index 1.
package cvcamera
