// Package depth models a single depth sensor sample as a 2D grid of
// per-pixel distances in meters.
package depth

// Depth validity range in meters.
// Sensors report 0 for pixels with no return and saturate beyond ~5m,
// so anything outside (0, 5) carries no usable information.
const (
	MinValidMeters = 0.0
	MaxValidMeters = 5.0
)

// Frame is one depth sensor sample. Samples holds Width*Height distances
// in row-major order; Stride is the number of samples per row (>= Width).
// A Frame is ephemeral: it is consumed by one pipeline pass and discarded.
type Frame struct {
	Width   int
	Height  int
	Stride  int
	Samples []float32
}

// At returns the depth sample at (x, y) in meters.
// Callers must ensure 0 <= x < Width and 0 <= y < Height.
func (f Frame) At(x, y int) float32 {
	return f.Samples[y*f.Stride+x]
}

// Empty reports whether the frame carries no usable grid.
func (f Frame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0 || len(f.Samples) == 0
}

// MidRow returns the row index used for general obstacle sensing.
func (f Frame) MidRow() int {
	return f.Height / 2
}

// LowerRow returns the row index used for lower-height obstacle sensing
// (knee-to-waist band below eye-level sensing).
func (f Frame) LowerRow() int {
	return f.Height * 3 / 4
}

// ValidSample reports whether a depth reading carries usable information.
func ValidSample(d float32) bool {
	return d > MinValidMeters && d < MaxValidMeters
}
