package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"gopkg.in/hraban/opus.v2"
)

const backendPrompts = "prompts"

// promptRate is the sample rate of the pre-rendered prompts.
const promptRate = 48000

// promptFiles maps fixed phrases to their pre-rendered ogg/opus files.
// Parameterized phrases (distance readouts) have no canned prompt and
// fall through to the next backend in a chain.
var promptFiles = map[Phrase]string{
	PhraseObstacleAhead: "obstacle_ahead.opus",
	PhraseObstacleLeft:  "obstacle_left.opus",
	PhraseObstacleRight: "obstacle_right.opus",
	PhraseVeryClose:     "very_close.opus",
	PhraseLowObstacle:   "low_obstacle.opus",
	PhraseReady:         "ready.opus",
	PhraseStopped:       "stopped.opus",
	PhraseSensorError:   "sensor_error.opus",
}

// PromptSynth implements Synthesizer from a directory of pre-rendered
// opus prompts, decoded with libopus and piped to an external PCM player.
// It needs no network and no synthesis daemon, so lifecycle and alert
// phrases keep working when the device is offline.
type PromptSynth struct {
	config *Config
	logger *slog.Logger

	// Decoded PCM cache, keyed by rendered phrase text.
	mu    sync.Mutex
	cache map[string][]byte
}

// NewPromptSynth creates the offline prompt backend.
// Prompts are decoded lazily on first use and cached as raw PCM.
func NewPromptSynth(opts ...Option) (*PromptSynth, error) {
	cfg := DefaultSynthConfig()
	cfg.Apply(opts...)

	if cfg.PromptDir == "" {
		return nil, wrapErr(backendPrompts, fmt.Errorf("prompt directory required"))
	}
	if _, err := os.Stat(cfg.PromptDir); err != nil {
		return nil, wrapErr(backendPrompts, fmt.Errorf("prompt directory: %w", err))
	}

	return &PromptSynth{
		config: cfg,
		logger: cfg.Logger.With("component", "speech.prompts"),
		cache:  make(map[string][]byte),
	}, nil
}

// Speak plays the canned prompt whose rendered text matches.
// Returns ErrNoPrompt for parameterized or unknown phrases.
func (p *PromptSynth) Speak(ctx context.Context, text string) error {
	pcm, err := p.lookup(text)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, p.config.PlayerCmd,
		"-q", "-f", "S16_LE", "-r", fmt.Sprint(promptRate), "-c", "1")
	cmd.Stdin = bytes.NewReader(pcm)
	if err := cmd.Run(); err != nil {
		return wrapErr(backendPrompts, fmt.Errorf("play prompt: %w", err))
	}
	return nil
}

// lookup finds and decodes the prompt for the given rendered text.
func (p *PromptSynth) lookup(text string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pcm, ok := p.cache[text]; ok {
		return pcm, nil
	}

	for phrase, file := range promptFiles {
		if Text(phrase) != text {
			continue
		}
		pcm, err := p.decode(filepath.Join(p.config.PromptDir, file))
		if err != nil {
			return nil, err
		}
		p.cache[text] = pcm
		return pcm, nil
	}

	return nil, ErrNoPrompt
}

// decode reads an ogg/opus file into raw little-endian PCM16.
func (p *PromptSynth) decode(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(backendPrompts, err)
	}
	defer f.Close()

	stream, err := opus.NewStream(f)
	if err != nil {
		return nil, wrapErr(backendPrompts, fmt.Errorf("open opus stream: %w", err))
	}
	defer stream.Close()

	var out bytes.Buffer
	frame := make([]int16, promptRate/10) // 100ms buffer
	for {
		n, err := stream.Read(frame)
		if n > 0 {
			binary.Write(&out, binary.LittleEndian, frame[:n])
		}
		if err != nil {
			break // io.EOF ends the stream
		}
	}

	p.logger.Debug("decoded prompt", "file", filepath.Base(path), "bytes", out.Len())
	return out.Bytes(), nil
}

// Health reports whether the prompt directory is readable.
func (p *PromptSynth) Health(ctx context.Context) error {
	_, err := os.Stat(p.config.PromptDir)
	return wrapErr(backendPrompts, err)
}

// Close releases the decoded prompt cache.
func (p *PromptSynth) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string][]byte)
	return nil
}
