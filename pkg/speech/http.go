package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/waypath/go-waypath/internal/httpc"
)

const backendHTTP = "http"

// HTTPSynth implements Synthesizer against a local synthesis daemon
// (e.g. a Piper HTTP server) that renders and plays text on the device
// speaker. The daemon owns the audio hardware; this client only posts text.
type HTTPSynth struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewHTTPSynth creates an HTTP synthesizer backend.
func NewHTTPSynth(opts ...Option) (*HTTPSynth, error) {
	cfg := DefaultSynthConfig()
	cfg.Apply(opts...)

	if cfg.BaseURL == "" {
		return nil, ErrNoSynthURL
	}

	return &HTTPSynth{
		config: cfg,
		client: httpc.NewClient(cfg.Timeout),
		logger: cfg.Logger.With("component", "speech.http"),
	}, nil
}

// Speak posts the text to the daemon's /speak endpoint.
// One retry on transport failure; the daemon queues playback itself.
func (h *HTTPSynth) Speak(ctx context.Context, text string) error {
	payload := map[string]string{"text": text}
	if h.config.Voice != "" {
		payload["voice"] = h.config.Voice
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return wrapErr(backendHTTP, fmt.Errorf("marshal payload: %w", err))
	}

	start := time.Now()

	resp, err := h.post(ctx, body)
	if err != nil {
		// One retry covers daemon restarts; anything past that degrades
		// to silence at the speaker level.
		resp, err = h.post(ctx, body)
	}
	if err != nil {
		return wrapErr(backendHTTP, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return wrapErr(backendHTTP, fmt.Errorf("synth daemon returned %d", resp.StatusCode))
	}

	h.logger.Debug("spoke",
		"chars", len(text),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (h *HTTPSynth) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", h.config.BaseURL+"/speak", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return h.client.Do(req)
}

// Health checks daemon availability.
func (h *HTTPSynth) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.config.BaseURL+"/health", nil)
	if err != nil {
		return wrapErr(backendHTTP, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return wrapErr(backendHTTP, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return wrapErr(backendHTTP, fmt.Errorf("health returned %d", resp.StatusCode))
	}
	return nil
}

// Close releases resources.
func (h *HTTPSynth) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
