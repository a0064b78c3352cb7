// Package session owns the per-run pipeline: it pulls frames from the
// sensor source, runs aggregation and classification, and hands the
// result to the alert dispatcher. One session means one long-lived
// notification state; stopping the session discards it.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waypath/go-waypath/pkg/alerts"
	"github.com/waypath/go-waypath/pkg/depth"
	"github.com/waypath/go-waypath/pkg/perception"
	"github.com/waypath/go-waypath/pkg/sensor"
	"github.com/waypath/go-waypath/pkg/speech"
)

// Config holds session tunables.
type Config struct {
	// Perception thresholds for this session.
	Perception perception.Config

	// RetryBackoff is the wait before restarting a failed source.
	RetryBackoff time.Duration

	// MaxSourceRestarts is how many consecutive source failures are
	// tolerated before the session terminates. The first failure is
	// announced to the user; the terminating one ends the run.
	MaxSourceRestarts int
}

// DefaultConfig returns the recommended session configuration.
func DefaultConfig() Config {
	return Config{
		Perception:        perception.DefaultConfig(),
		RetryBackoff:      2 * time.Second,
		MaxSourceRestarts: 1,
	}
}

// ErrAlreadyRunning is returned when Start is called twice.
var ErrAlreadyRunning = errors.New("session: already running")

// Session drives the depth-frame-to-feedback pipeline for one run.
// Frames are processed strictly one at a time; sources drop frames that
// arrive while a pass is in flight.
type Session struct {
	id      uuid.UUID
	cfg     Config
	src     sensor.Source
	agg     *perception.Aggregator
	cls     *perception.Classifier
	disp    *alerts.Dispatcher
	speaker alerts.Speaker
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a session over the given source and dispatcher.
func New(cfg Config, src sensor.Source, disp *alerts.Dispatcher, speaker alerts.Speaker) *Session {
	id := uuid.New()
	return &Session{
		id:      id,
		cfg:     cfg,
		src:     src,
		agg:     perception.NewAggregator(cfg.Perception),
		cls:     perception.NewClassifier(cfg.Perception),
		disp:    disp,
		speaker: speaker,
		logger:  slog.Default().With("component", "session", "session_id", id.String()),
		done:    make(chan struct{}),
	}
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Start configures the frame source, announces readiness, and runs the
// pipeline until the source ends or Stop is called.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	frames, err := s.src.Start(runCtx)
	if err != nil {
		cancel()
		s.running = false
		s.mu.Unlock()
		s.speaker.Say(speech.PhraseSensorError)
		return err
	}

	s.running = true
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info("session started")
	s.speaker.Say(speech.PhraseReady)

	go s.run(runCtx, frames)
	return nil
}

// Stop pauses the frame source and announces termination.
// It is safe to call Stop on a stopped session.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done

	s.logger.Info("session stopped")
	s.speaker.Say(speech.PhraseStopped)
}

// Done closes when the pipeline loop has exited, whether from Stop,
// clean source end, or exhausted source restarts.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Session) run(ctx context.Context, frames <-chan depth.Frame) {
	defer close(s.done)

	failures := 0
	for {
		for frame := range frames {
			s.process(frame)
			failures = 0
		}

		if ctx.Err() != nil {
			return
		}

		err := s.src.Err()
		if err == nil {
			s.logger.Info("source ended")
			return
		}

		// Source failure policy: announce once per streak, restart with
		// backoff, terminate when the restart budget is spent.
		failures++
		if failures == 1 {
			s.speaker.Say(speech.PhraseSensorError)
		}
		if failures > s.cfg.MaxSourceRestarts {
			s.logger.Error("source failed, terminating session", "error", err, "failures", failures)
			return
		}

		s.logger.Warn("source failed, restarting", "error", err, "failures", failures)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.RetryBackoff):
		}

		next, startErr := s.src.Start(ctx)
		if startErr != nil {
			s.logger.Error("source restart failed, terminating session", "error", startErr)
			return
		}
		frames = next
	}
}

// process runs one full pipeline pass over a frame.
func (s *Session) process(f depth.Frame) {
	readings := s.agg.Aggregate(f)
	state := s.cls.Classify(readings)
	s.disp.Dispatch(state)
}
