package sensor

import (
	"context"
	"sync"
	"time"

	"github.com/waypath/go-waypath/pkg/depth"
)

// Synthetic generates frames from a caller-provided function, for replay
// tooling and tests.
type Synthetic struct {
	interval time.Duration
	gen      func(seq int) depth.Frame

	mu  sync.Mutex
	err error
}

// NewSynthetic creates a synthetic source emitting gen(seq) every
// interval. A nil frame return (Empty) is skipped like a frame without
// a depth channel.
func NewSynthetic(interval time.Duration, gen func(seq int) depth.Frame) *Synthetic {
	return &Synthetic{interval: interval, gen: gen}
}

// Start begins emitting frames until ctx is cancelled.
func (s *Synthetic) Start(ctx context.Context) (<-chan depth.Frame, error) {
	frames := make(chan depth.Frame, 1)

	go func() {
		defer close(frames)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		seq := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				f := s.gen(seq)
				seq++
				if f.Empty() {
					continue
				}
				deliver(frames, f)
			}
		}
	}()

	return frames, nil
}

// Err always reports a clean stop for the synthetic source.
func (s *Synthetic) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
