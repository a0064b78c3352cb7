// Package speech voices fixed catalog phrases through a pluggable
// synthesizer backend, with a rolling rate limiter so rapid-fire alert
// decisions collapse into at most one utterance per window.
//
// Example usage:
//
//	synth, _ := speech.NewHTTPSynth(speech.WithBaseURL("http://127.0.0.1:5002"))
//	speaker := speech.NewSpeaker(synth)
//	speaker.Say(speech.PhraseReady)
package speech

import (
	"context"
	"log/slog"
	"time"
)

// Synthesizer renders text to audible speech on the device.
// All implementations must satisfy this interface so backends can be
// swapped without changing caller code.
type Synthesizer interface {
	// Speak voices the given text, blocking until playback has been
	// handed to the audio device (not until it finishes).
	Speak(ctx context.Context, text string) error

	// Health checks backend availability.
	Health(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}

// Config holds synthesizer backend configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	BaseURL string
	Voice   string

	// PromptDir holds pre-rendered opus prompts for the offline backend.
	PromptDir string

	// PlayerCmd is the external PCM player command (default "aplay").
	PlayerCmd string

	Timeout time.Duration

	Logger *slog.Logger
}

// Option is a functional option for configuring synthesizer backends.
type Option func(*Config)

// WithBaseURL sets the synthesizer daemon base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithVoice sets the synthesizer voice name.
func WithVoice(voice string) Option {
	return func(c *Config) {
		c.Voice = voice
	}
}

// WithPromptDir sets the directory of pre-rendered opus prompts.
func WithPromptDir(dir string) Option {
	return func(c *Config) {
		c.PromptDir = dir
	}
}

// WithPlayerCmd overrides the external PCM player command.
func WithPlayerCmd(cmd string) Option {
	return func(c *Config) {
		c.PlayerCmd = cmd
	}
}

// WithTimeout sets the synthesis request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultSynthConfig returns the default backend configuration.
func DefaultSynthConfig() *Config {
	return &Config{
		PlayerCmd: "aplay",
		Timeout:   10 * time.Second,
		Logger:    slog.Default(),
	}
}

// Apply applies options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
