//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 1024

// PortAudioOutput plays through the default PortAudio output device.
type PortAudioOutput struct {
	logger *slog.Logger
}

func NewPortAudioOutput(logger *slog.Logger) (*PortAudioOutput, error) {
	return &PortAudioOutput{logger: logger}, nil
}

func (p *PortAudioOutput) Name() string {
	return "portaudio"
}

func (p *PortAudioOutput) Play(ctx context.Context, samples []float32, sampleRate int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	buffer := make([]float32, framesPerBuffer)

	inputChannels := 0
	outputChannels := 1
	stream, err := portaudio.OpenDefaultStream(
		inputChannels,
		outputChannels,
		float64(sampleRate),
		framesPerBuffer,
		buffer,
	)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	p.logger.Debug("portaudio playback started", "sampleRate", sampleRate, "samples", len(samples))

	for offset := 0; offset < len(samples); offset += framesPerBuffer {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := copy(buffer, samples[offset:])
		clear(buffer[n:])

		if err := stream.Write(); err != nil {
			return fmt.Errorf("writing to stream: %w", err)
		}
	}
	return nil
}
