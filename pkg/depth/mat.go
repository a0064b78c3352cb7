package depth

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrNoDepth is returned when a capture carries no depth channel.
var ErrNoDepth = errors.New("depth: no depth channel in capture")

// FromMat converts a single-channel 32-bit float Mat (meters) into a Frame.
// The sample buffer is copied so the Mat can be reused by the capture loop.
func FromMat(m gocv.Mat) (Frame, error) {
	if m.Empty() {
		return Frame{}, ErrNoDepth
	}
	if m.Type() != gocv.MatTypeCV32F {
		return Frame{}, fmt.Errorf("depth: expected CV_32F mat, got %v", m.Type())
	}

	data, err := m.DataPtrFloat32()
	if err != nil {
		return Frame{}, fmt.Errorf("depth: read mat data: %w", err)
	}

	samples := make([]float32, len(data))
	copy(samples, data)

	return Frame{
		Width:   m.Cols(),
		Height:  m.Rows(),
		Stride:  m.Cols(),
		Samples: samples,
	}, nil
}
