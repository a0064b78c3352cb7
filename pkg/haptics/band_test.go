package haptics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// bandBridge fakes the wristband HTTP bridge.
type bandBridge struct {
	mu          sync.Mutex
	inited      int
	intensities []float64
	needsReset  bool
	dead        bool
}

func (b *bandBridge) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/init", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dead {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		b.inited++
		b.needsReset = false
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/vibrate", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dead || b.needsReset {
			w.WriteHeader(http.StatusConflict)
			return
		}
		var req struct {
			Intensity float64 `json:"intensity"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		b.intensities = append(b.intensities, req.Intensity)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (b *bandBridge) snapshot() (int, []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]float64, len(b.intensities))
	copy(out, b.intensities)
	return b.inited, out
}

func newBridgeBand(t *testing.T) (*Band, *bandBridge) {
	t.Helper()
	bridge := &bandBridge{}
	srv := httptest.NewServer(bridge.handler())
	t.Cleanup(srv.Close)
	band := NewBand(strings.TrimPrefix(srv.URL, "http://"))
	t.Cleanup(func() { band.Close() })
	return band, bridge
}

// waitFor polls until the condition holds; vibrations land on the
// band's worker goroutine, not on the caller.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

func TestBand_PlayWarningClamps(t *testing.T) {
	band, bridge := newBridgeBand(t)

	// One at a time so the busy-drop never discards a value.
	for i, intensity := range []float64{1.5, -0.2, 0.5} {
		band.PlayWarning(intensity)
		n := i + 1
		waitFor(t, "vibration to land", func() bool {
			_, got := bridge.snapshot()
			return len(got) == n
		})
	}

	_, got := bridge.snapshot()
	want := []float64{1.0, 0.0, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vibration %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestBand_RecoversFromResetWithOneRetry(t *testing.T) {
	band, bridge := newBridgeBand(t)

	var resets atomic.Int32
	band.OnReset(func() { resets.Add(1) })

	bridge.mu.Lock()
	bridge.needsReset = true
	bridge.mu.Unlock()

	band.PlayWarning(0.7)

	waitFor(t, "retried vibration", func() bool {
		_, intensities := bridge.snapshot()
		return len(intensities) == 1
	})

	if got := resets.Load(); got != 1 {
		t.Errorf("Expected 1 reset notification, got %d", got)
	}
	if !band.Available() {
		t.Error("Expected band available after transparent recovery")
	}
	inited, intensities := bridge.snapshot()
	if intensities[0] != 0.7 {
		t.Errorf("Expected retried vibration 0.7, got %v", intensities)
	}
	// Construction init plus recovery init.
	if inited != 2 {
		t.Errorf("Expected 2 inits, got %d", inited)
	}
}

func TestBand_DegradesWhenRecoveryFails(t *testing.T) {
	band, bridge := newBridgeBand(t)

	bridge.mu.Lock()
	bridge.dead = true
	bridge.mu.Unlock()

	band.PlayWarning(0.5)

	waitFor(t, "band to disable", func() bool { return !band.Available() })

	// Further calls are silent no-ops.
	band.PlayWarning(0.9)
	if _, intensities := bridge.snapshot(); len(intensities) != 0 {
		t.Errorf("Expected no vibrations, got %v", intensities)
	}
}

func TestBand_PlayWarningDoesNotWaitForBridge(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/init", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/vibrate", func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	band := NewBand(strings.TrimPrefix(srv.URL, "http://"))
	t.Cleanup(func() { band.Close() })

	// The bridge holds the vibrate call open; the frame path must not
	// wait for it, even when the worker is already mid-post.
	start := time.Now()
	band.PlayWarning(0.8)
	band.PlayWarning(0.6)
	band.PlayWarning(0.4)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Expected PlayWarning to return immediately, blocked for %v", elapsed)
	}
}

func TestBand_NoAddressIsNoop(t *testing.T) {
	band := NewBand("")

	if band.Available() {
		t.Error("Expected band unavailable without an address")
	}
	// Must not panic or block.
	band.PlayWarning(0.5)
}
