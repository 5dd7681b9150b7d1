package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// DecodePCM16 decodes a base64 little-endian 16-bit mono payload into
// samples normalised to [-1, 1). A trailing odd byte is dropped.
func DecodePCM16(payload string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 audio: %w", err)
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float32(v) / 32768.0
	}
	return samples, nil
}
