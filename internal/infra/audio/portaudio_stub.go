//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
)

// PortAudioOutput stub when portaudio is not available
type PortAudioOutput struct{}

func NewPortAudioOutput(_ *slog.Logger) (*PortAudioOutput, error) {
	return nil, fmt.Errorf("portaudio output not available: rebuild with -tags portaudio")
}

func (p *PortAudioOutput) Name() string {
	return "portaudio"
}

func (p *PortAudioOutput) Play(_ context.Context, _ []float32, _ int) error {
	return fmt.Errorf("portaudio output not available")
}
