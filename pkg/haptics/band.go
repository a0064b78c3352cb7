// Package haptics drives the vibration wristband that renders proximity
// warnings. The band is optional hardware: every operation degrades to a
// no-op when it is absent, and a device reset is recovered transparently.
package haptics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/waypath/go-waypath/internal/httpc"
)

// Band controls a BLE-bridged wristband over its local HTTP bridge.
// Bridge posts happen on an internal worker goroutine so the per-frame
// PlayWarning call never waits on the network.
type Band struct {
	addr   string
	client *http.Client
	logger *slog.Logger

	mu        sync.Mutex
	available bool

	// Reset handlers registered at construction time.
	resetHandlers []func()

	cmds      chan float64
	done      chan struct{}
	closeOnce sync.Once
}

// NewBand creates a wristband driver. An empty address means no band is
// attached; the driver then exists purely as a no-op.
func NewBand(addr string) *Band {
	b := &Band{
		addr:   addr,
		client: httpc.NewClient(2 * time.Second),
		logger: slog.Default().With("component", "haptics.band"),
		cmds:   make(chan float64, 1),
		done:   make(chan struct{}),
	}

	if addr == "" {
		b.logger.Info("no wristband configured, haptics disabled")
		return b
	}

	if err := b.init(); err != nil {
		b.logger.Warn("wristband unavailable, haptics disabled", "error", err)
		return b
	}
	b.available = true
	go b.worker()
	return b
}

// OnReset registers a handler invoked when the band reports a runtime
// reset. Handlers run on the band's worker goroutine during recovery and
// must not block.
func (b *Band) OnReset(handler func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetHandlers = append(b.resetHandlers, handler)
}

// PlayWarning requests a vibration at the given intensity in [0,1].
// Values outside the range are clamped. The call hands the intensity to
// the worker and returns immediately; a request arriving while the
// worker is mid-post is dropped, since the next frame supersedes it.
func (b *Band) PlayWarning(intensity float64) {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}

	if !b.Available() {
		return
	}

	select {
	case b.cmds <- intensity:
	default:
	}
}

// Available reports whether the band is currently driving hardware.
func (b *Band) Available() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.available
}

// worker serializes all bridge I/O for the band.
func (b *Band) worker() {
	for {
		select {
		case <-b.done:
			return
		case intensity := <-b.cmds:
			b.drive(intensity)
		}
	}
}

// drive issues one vibration post. Failures never propagate: the bridge
// errors after a device reset, so re-init once and retry; anything worse
// disables the band.
func (b *Band) drive(intensity float64) {
	if !b.Available() {
		return
	}

	err := b.vibrate(intensity)
	if err == nil {
		return
	}

	b.logger.Debug("band reset detected, reinitializing", "error", err)
	b.mu.Lock()
	handlers := make([]func(), len(b.resetHandlers))
	copy(handlers, b.resetHandlers)
	b.mu.Unlock()
	for _, h := range handlers {
		h()
	}

	if err := b.init(); err != nil {
		b.disable("wristband reinit failed, haptics disabled", err)
		return
	}
	if err := b.vibrate(intensity); err != nil {
		b.disable("wristband retry failed, haptics disabled", err)
	}
}

func (b *Band) disable(msg string, err error) {
	b.mu.Lock()
	b.available = false
	b.mu.Unlock()
	b.logger.Warn(msg, "error", err)
}

func (b *Band) init() error {
	resp, err := b.client.Post("http://"+b.addr+"/init", "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("init returned %d", resp.StatusCode)
	}
	return nil
}

func (b *Band) vibrate(intensity float64) error {
	body, _ := json.Marshal(map[string]float64{"intensity": intensity})
	resp, err := b.client.Post("http://"+b.addr+"/vibrate", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vibrate returned %d", resp.StatusCode)
	}
	return nil
}

// Close stops the worker and disables the band.
func (b *Band) Close() error {
	b.closeOnce.Do(func() { close(b.done) })
	b.mu.Lock()
	b.available = false
	b.mu.Unlock()
	b.client.CloseIdleConnections()
	return nil
}
