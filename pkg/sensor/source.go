// Package sensor delivers depth frames from a camera, a remote stream,
// or a synthetic generator. Sources push frames into a small buffered
// channel and drop when the consumer is mid-pass, so at most one
// pipeline execution is ever in flight downstream.
package sensor

import (
	"context"

	"github.com/waypath/go-waypath/pkg/depth"
)

// Source delivers depth frames for the pipeline.
type Source interface {
	// Start begins frame delivery. The returned channel closes when the
	// source stops or fails; after close, Err reports the failure cause
	// (nil for a clean stop). Start may be called again after a close.
	Start(ctx context.Context) (<-chan depth.Frame, error)

	// Err returns the cause of the last channel close.
	Err() error
}

// deliver pushes a frame without blocking the producer. If the consumer
// is still processing the previous frame, the new one is dropped.
func deliver(ch chan depth.Frame, f depth.Frame) bool {
	select {
	case ch <- f:
		return true
	default:
		return false
	}
}
