package audio

import (
	"context"
	"fmt"

	"github.com/jfreymuth/pulse"
)

// PulseOutput plays through the PulseAudio (or PipeWire-pulse) server.
type PulseOutput struct {
	appName string
}

func NewPulseOutput(appName string) *PulseOutput {
	return &PulseOutput{appName: appName}
}

func (p *PulseOutput) Name() string {
	return "pulse"
}

func (p *PulseOutput) Play(ctx context.Context, samples []float32, sampleRate int) error {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName(p.appName),
		pulse.ClientApplicationIconName("audio-speakers"),
	)
	if err != nil {
		return fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	stream, err := client.NewPlayback(
		pulse.Float32Reader(sampleReader(ctx, samples)),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.05),
		pulse.PlaybackMediaName("vocalcart speech"),
	)
	if err != nil {
		return fmt.Errorf("create pulse playback stream: %w", err)
	}
	defer stream.Close()

	stream.Start()
	stream.Drain()
	if err := stream.Error(); err != nil {
		return fmt.Errorf("play speech stream: %w", err)
	}
	return nil
}

// sampleReader feeds samples to a pulse stream and ends early when ctx is
// done.
func sampleReader(ctx context.Context, samples []float32) func([]float32) (int, error) {
	cursor := 0
	return func(buf []float32) (int, error) {
		if ctx.Err() != nil || cursor >= len(samples) {
			return 0, pulse.EndOfData
		}

		n := copy(buf, samples[cursor:])
		cursor += n
		if cursor >= len(samples) {
			return n, pulse.EndOfData
		}
		return n, nil
	}
}
