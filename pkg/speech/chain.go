package speech

import (
	"context"
	"fmt"
	"log/slog"
)

// Chain implements Synthesizer by trying multiple backends in order.
// The first successful backend wins; if all fail, returns an aggregate error.
// Typical wiring is HTTP daemon first, offline prompts as fallback.
type Chain struct {
	backends []Synthesizer
	logger   *slog.Logger
}

// NewChain creates a backend chain that tries backends in order.
// At least one backend is required.
func NewChain(backends ...Synthesizer) (*Chain, error) {
	if len(backends) == 0 {
		return nil, ErrSynthUnavailable
	}

	return &Chain{
		backends: backends,
		logger:   slog.Default().With("component", "speech.chain"),
	}, nil
}

// Speak tries each backend until one succeeds.
func (c *Chain) Speak(ctx context.Context, text string) error {
	var errs []error

	for i, b := range c.backends {
		err := b.Speak(ctx, text)
		if err == nil {
			if i > 0 {
				c.logger.Info("fallback backend spoke", "backend_index", i)
			}
			return nil
		}

		errs = append(errs, err)
		c.logger.Warn("backend failed, trying next",
			"backend_index", i,
			"error", err,
		)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("speech: all %d backends failed: %w", len(c.backends), errs[len(errs)-1])
}

// Health returns nil if any backend is healthy.
func (c *Chain) Health(ctx context.Context) error {
	var lastErr error
	for _, b := range c.backends {
		if err := b.Health(ctx); err != nil {
			lastErr = err
		} else {
			return nil
		}
	}
	return fmt.Errorf("speech: all backends unhealthy: %w", lastErr)
}

// Close closes all backends, returning the first error.
func (c *Chain) Close() error {
	var first error
	for _, b := range c.backends {
		if err := b.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
