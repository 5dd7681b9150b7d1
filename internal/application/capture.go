package application

import (
	"context"
	"errors"

	"vocalcart/internal/i18n"
)

var ErrCaptureUnavailable = errors.New("microphone unavailable")

// StartListening enters the listening state. The microphone is unavailable
// while a command is loading or when capture is unsupported.
func (e *Engine) StartListening() error {
	if e.store.Loading() || e.store.CaptureUnsupported() {
		return ErrCaptureUnavailable
	}
	e.store.SetListening(true)
	return nil
}

// HearInterim shows the partial transcript while the user is speaking.
func (e *Engine) HearInterim(transcript string) {
	e.store.SetTranscript(transcript)
}

// StopListening leaves the listening state and submits the final transcript.
func (e *Engine) StopListening(ctx context.Context, transcript string) {
	e.store.SetListening(false)
	e.Reconcile(ctx, transcript)
}

func (e *Engine) CaptureFailed(reason string) {
	e.store.SetListening(false)
	e.logger.Warn("capture failed", "reason", reason)
	e.showTransientError(e.translator().T(i18n.KeySpeechError, reason))
}

// CaptureUnsupported disables the microphone for the rest of the session.
func (e *Engine) CaptureUnsupported() {
	e.logger.Warn("voice capture unsupported by client")
	e.store.SetCaptureUnsupported()
}
