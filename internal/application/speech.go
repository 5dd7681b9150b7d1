package application

import "context"

// SpeechSynthesizer returns a base64 PCM payload for text.
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) (string, error)
}

// NoopSpeech is used when no provider with speech output is configured.
type NoopSpeech struct{}

func (n *NoopSpeech) SynthesizeSpeech(_ context.Context, _ string) (string, error) {
	return "", nil
}
