package sensor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/waypath/go-waypath/pkg/depth"
)

// Remote reads depth frames from a websocket stream, typically the
// phone-mounted sensor app. Read errors trigger reconnection with
// exponential backoff; only exhausted retries fail the source.
type Remote struct {
	url     string
	retries int
	logger  *slog.Logger

	mu  sync.Mutex
	err error
}

// defaultRemoteRetries is how many consecutive reconnect attempts are
// made before the source gives up.
const defaultRemoteRetries = 5

// NewRemote creates a websocket depth source.
func NewRemote(url string) *Remote {
	return &Remote{
		url:     url,
		retries: defaultRemoteRetries,
		logger:  slog.Default().With("component", "sensor.remote"),
	}
}

// Start connects and begins frame delivery. The initial dial happens
// synchronously so configuration errors surface immediately.
func (r *Remote) Start(ctx context.Context) (<-chan depth.Frame, error) {
	conn, err := r.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("sensor: connect %s: %w", r.url, err)
	}

	r.mu.Lock()
	r.err = nil
	r.mu.Unlock()

	frames := make(chan depth.Frame, 1)
	go r.readLoop(ctx, conn, frames)
	return frames, nil
}

// Err returns the cause of the last channel close.
func (r *Remote) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Remote) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, r.url, nil)
	return conn, err
}

func (r *Remote) readLoop(ctx context.Context, conn *websocket.Conn, frames chan depth.Frame) {
	defer close(frames)
	defer func() { conn.Close() }()

	// Unblock ReadMessage on cancellation.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	attempt := 0
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			attempt++
			if attempt > r.retries {
				r.fail(fmt.Errorf("sensor: stream lost after %d reconnect attempts: %w", r.retries, err))
				return
			}

			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			r.logger.Warn("stream read failed, reconnecting",
				"attempt", attempt,
				"backoff", backoff,
				"error", err,
			)

			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}

			next, dialErr := r.dial(ctx)
			if dialErr != nil {
				continue // counts against the same attempt budget on next read
			}
			stop()
			conn.Close()
			conn = next
			stop = context.AfterFunc(ctx, func() { conn.Close() })
			continue
		}

		if msgType != websocket.BinaryMessage {
			continue
		}

		frame, err := DecodeFrame(data)
		if err != nil {
			// No depth channel in this message: skip, no state change.
			if !errors.Is(err, ErrNotDepthFrame) {
				r.logger.Debug("dropping malformed frame", "error", err)
			}
			continue
		}

		attempt = 0
		if !deliver(frames, frame) {
			r.logger.Debug("consumer busy, frame dropped")
		}
	}
}

func (r *Remote) fail(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	r.logger.Error("source failed", "error", err)
}
