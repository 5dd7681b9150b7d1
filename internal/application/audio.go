package application

import "context"

// AudioPlayer plays a synthesized speech payload on the host output.
type AudioPlayer interface {
	Play(ctx context.Context, payload string) error
	Name() string
}

type AudioFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// SpeechAudioFormat is the layout of every synthesized payload.
func SpeechAudioFormat() AudioFormat {
	return AudioFormat{
		SampleRate: 24000,
		Channels:   1,
		BitDepth:   16,
	}
}

type NoopPlayer struct{}

func (n *NoopPlayer) Play(_ context.Context, _ string) error { return nil }
func (n *NoopPlayer) Name() string                           { return "none" }
