package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"vocalcart/internal/application"
)

// Output plays normalised mono samples on a host audio device.
type Output interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
	Name() string
}

// Speaker decodes speech payloads and plays them one at a time.
type Speaker struct {
	output Output
	format application.AudioFormat
	logger *slog.Logger

	mu sync.Mutex
}

// NewSpeaker plays payloads laid out as format. Only 16-bit mono PCM can be
// decoded.
func NewSpeaker(output Output, format application.AudioFormat, logger *slog.Logger) (*Speaker, error) {
	if format.BitDepth != 16 || format.Channels != 1 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("unsupported speech format %d Hz, %d channels, %d bit", format.SampleRate, format.Channels, format.BitDepth)
	}
	return &Speaker{output: output, format: format, logger: logger}, nil
}

func (s *Speaker) Name() string {
	return s.output.Name()
}

func (s *Speaker) Play(ctx context.Context, payload string) error {
	samples, err := DecodePCM16(payload)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("playing speech", "output", s.output.Name(), "samples", len(samples))
	if err := s.output.Play(ctx, samples, s.format.SampleRate); err != nil {
		return fmt.Errorf("playing on %s: %w", s.output.Name(), err)
	}
	return nil
}

type NoopOutput struct{}

func (NoopOutput) Play(_ context.Context, _ []float32, _ int) error { return nil }
func (NoopOutput) Name() string                                     { return "none" }

// NewOutput selects an output by name: "pulse", "portaudio" or "none".
func NewOutput(kind string, logger *slog.Logger) (Output, error) {
	switch kind {
	case "", "pulse":
		return NewPulseOutput("vocalcart"), nil
	case "portaudio":
		out, err := NewPortAudioOutput(logger)
		if err != nil {
			return nil, err
		}
		return out, nil
	case "none":
		return NoopOutput{}, nil
	default:
		return nil, fmt.Errorf("unknown audio output %q", kind)
	}
}
