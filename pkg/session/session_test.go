package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/waypath/go-waypath/pkg/alerts"
	"github.com/waypath/go-waypath/pkg/depth"
	"github.com/waypath/go-waypath/pkg/haptics"
	"github.com/waypath/go-waypath/pkg/sensor"
	"github.com/waypath/go-waypath/pkg/speech"
)

// phraseRecorder is a thread-safe lifecycle speaker for tests.
type phraseRecorder struct {
	mu      sync.Mutex
	phrases []speech.Phrase
}

func (r *phraseRecorder) Say(p speech.Phrase, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phrases = append(r.phrases, p)
}

func (r *phraseRecorder) count(p speech.Phrase) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.phrases {
		if got == p {
			n++
		}
	}
	return n
}

// uniformFrame fills every pixel with the same depth.
func uniformFrame(width, height int, d float32) depth.Frame {
	samples := make([]float32, width*height)
	for i := range samples {
		samples[i] = d
	}
	return depth.Frame{Width: width, Height: height, Stride: width, Samples: samples}
}

// failingSource closes its channel with an error on every start.
type failingSource struct {
	mu     sync.Mutex
	starts int
}

func (f *failingSource) Start(ctx context.Context) (<-chan depth.Frame, error) {
	f.mu.Lock()
	f.starts++
	f.mu.Unlock()
	frames := make(chan depth.Frame)
	close(frames)
	return frames, nil
}

func (f *failingSource) Err() error {
	return errors.New("sensor gone")
}

func (f *failingSource) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryBackoff = 10 * time.Millisecond
	return cfg
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("Session did not finish in time")
	}
}

func TestSession_ProcessesFramesEndToEnd(t *testing.T) {
	rec := &phraseRecorder{}
	band := haptics.NewMock()
	disp := alerts.NewDispatcher(rec, band)

	// A wall 0.8m ahead across the whole frame.
	src := sensor.NewSynthetic(5*time.Millisecond, func(seq int) depth.Frame {
		return uniformFrame(90, 60, 0.8)
	})

	s := New(testConfig(), src, disp, rec)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Wait until at least one frame flowed through the pipeline.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if disp.Latest().HasDistance {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	snap := disp.Latest()
	if !snap.HasDistance || snap.Direction != "center" {
		t.Fatalf("Expected center obstacle snapshot, got %+v", snap)
	}

	s.Stop()

	if rec.count(speech.PhraseReady) != 1 {
		t.Error("Expected one readiness announcement")
	}
	if rec.count(speech.PhraseStopped) != 1 {
		t.Error("Expected one termination announcement")
	}
	// Obstacle announced exactly once despite many identical frames.
	if got := rec.count(speech.PhraseObstacleAhead); got != 1 {
		t.Errorf("Expected one obstacle announcement, got %d", got)
	}
}

func TestSession_SourceFailureAnnouncedOnceThenTerminates(t *testing.T) {
	rec := &phraseRecorder{}
	disp := alerts.NewDispatcher(rec, haptics.NewMock())
	src := &failingSource{}

	s := New(testConfig(), src, disp, rec)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitDone(t, s)

	if got := rec.count(speech.PhraseSensorError); got != 1 {
		t.Errorf("Expected one sensor error announcement, got %d", got)
	}
	// Initial start plus the single permitted restart.
	if got := src.startCount(); got != 2 {
		t.Errorf("Expected 2 source starts, got %d", got)
	}
}

func TestSession_DoubleStartRejected(t *testing.T) {
	rec := &phraseRecorder{}
	disp := alerts.NewDispatcher(rec, haptics.NewMock())
	src := sensor.NewSynthetic(time.Hour, func(seq int) depth.Frame {
		return depth.Frame{}
	})

	s := New(testConfig(), src, disp, rec)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	if err := s.Start(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}
}
