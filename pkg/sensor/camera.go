package sensor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/waypath/go-waypath/pkg/depth"
)

// Camera captures depth frames from an OpenCV-accessible depth camera.
// 16-bit sensors reporting millimeters are converted to float meters.
type Camera struct {
	deviceID int
	interval time.Duration
	logger   *slog.Logger

	mu  sync.Mutex
	err error
}

// NewCamera creates a depth camera source capturing every interval.
func NewCamera(deviceID int, interval time.Duration) *Camera {
	return &Camera{
		deviceID: deviceID,
		interval: interval,
		logger:   slog.Default().With("component", "sensor.camera"),
	}
}

// Start opens the capture device and begins frame delivery.
func (c *Camera) Start(ctx context.Context) (<-chan depth.Frame, error) {
	cap, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return nil, fmt.Errorf("sensor: open camera %d: %w", c.deviceID, err)
	}

	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()

	frames := make(chan depth.Frame, 1)
	go c.captureLoop(ctx, cap, frames)
	return frames, nil
}

// Err returns the cause of the last channel close.
func (c *Camera) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Camera) captureLoop(ctx context.Context, cap *gocv.VideoCapture, frames chan depth.Frame) {
	defer close(frames)
	defer cap.Close()

	mat := gocv.NewMat()
	defer mat.Close()
	meters := gocv.NewMat()
	defer meters.Close()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	misses := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if ok := cap.Read(&mat); !ok || mat.Empty() {
			misses++
			if misses >= 30 {
				c.mu.Lock()
				c.err = fmt.Errorf("sensor: camera %d stopped delivering frames", c.deviceID)
				c.mu.Unlock()
				return
			}
			continue
		}
		misses = 0

		frame, err := c.toFrame(mat, &meters)
		if err != nil {
			// Capture without a depth channel: skip, no state change.
			c.logger.Debug("skipping non-depth capture", "error", err)
			continue
		}

		if !deliver(frames, frame) {
			c.logger.Debug("consumer busy, frame dropped")
		}
	}
}

// toFrame converts a capture Mat to a depth frame in meters.
func (c *Camera) toFrame(mat gocv.Mat, scratch *gocv.Mat) (depth.Frame, error) {
	switch mat.Type() {
	case gocv.MatTypeCV32F:
		return depth.FromMat(mat)
	case gocv.MatTypeCV16U:
		// Millimeter sensor output; scale to meters.
		mat.ConvertToWithParams(scratch, gocv.MatTypeCV32F, 0.001, 0)
		return depth.FromMat(*scratch)
	default:
		return depth.Frame{}, depth.ErrNoDepth
	}
}
