package speech

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimitWindow is the rolling window in which at most one utterance
// is voiced. Calls inside the window are dropped, not queued, so the
// user never hears a backlog of stale alerts.
const RateLimitWindow = 2 * time.Second

// Speaker voices catalog phrases through a Synthesizer, fire-and-forget.
// It is safe for concurrent use.
type Speaker struct {
	synth  Synthesizer
	window time.Duration
	logger *slog.Logger

	mu         sync.Mutex
	lastVoiced time.Time

	// now is swapped in tests
	now func() time.Time
}

// NewSpeaker creates a speaker with the default rate limit window.
func NewSpeaker(synth Synthesizer) *Speaker {
	return &Speaker{
		synth:  synth,
		window: RateLimitWindow,
		logger: slog.Default().With("component", "speech.speaker"),
		now:    time.Now,
	}
}

// Say voices a phrase. The call never blocks on synthesis or playback;
// failures degrade to silence and are only logged.
func (s *Speaker) Say(p Phrase, args ...any) {
	text := Text(p, args...)
	if text == "" {
		return
	}

	s.mu.Lock()
	now := s.now()
	if !s.lastVoiced.IsZero() && now.Sub(s.lastVoiced) < s.window {
		s.mu.Unlock()
		s.logger.Debug("utterance suppressed by rate limit", "text", text)
		return
	}
	s.lastVoiced = now
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.synth.Speak(ctx, text); err != nil {
			s.logger.Warn("synthesis failed", "text", text, "error", err)
		}
	}()
}

// Close releases the underlying synthesizer.
func (s *Speaker) Close() error {
	return s.synth.Close()
}
