package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Decode errors surfaced to callers; anything else means a malformed file.
var (
	ErrNotWAV      = errors.New("not a RIFF/WAVE stream")
	ErrUnsupported = errors.New("unsupported WAV encoding")
)

// DecodeWAV parses a PCM WAV payload into normalized mono samples in [-1,1]
// plus the sample rate. Only 16-bit integer PCM is accepted; multi-channel
// input is averaged down to mono. A zero-sample data chunk is valid.
func DecodeWAV(data []byte) ([]float64, int, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, ErrNotWAV
	}

	var (
		sampleRate int
		channels   int
		bitsPer    int
		havefmt    bool
		raw        []byte
		haveData   bool
	)

	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkLen := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if chunkLen < 0 || body+chunkLen > len(data) {
			return nil, 0, fmt.Errorf("truncated %q chunk", chunkID)
		}

		switch chunkID {
		case "fmt ":
			if chunkLen < 16 {
				return nil, 0, fmt.Errorf("short fmt chunk: %d bytes", chunkLen)
			}
			format := int(binary.LittleEndian.Uint16(data[body : body+2]))
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPer = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			if format != 1 || bitsPer != 16 {
				return nil, 0, fmt.Errorf("%w: format=%d bits=%d", ErrUnsupported, format, bitsPer)
			}
			if channels < 1 || sampleRate <= 0 {
				return nil, 0, fmt.Errorf("invalid fmt chunk: channels=%d rate=%d", channels, sampleRate)
			}
			havefmt = true
		case "data":
			raw = data[body : body+chunkLen]
			haveData = true
		}

		// Chunks are word-aligned.
		offset = body + chunkLen + chunkLen%2
	}

	if !havefmt || !haveData {
		return nil, 0, fmt.Errorf("%w: missing fmt or data chunk", ErrNotWAV)
	}

	frameBytes := channels * 2
	frames := len(raw) / frameBytes
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			at := i*frameBytes + c*2
			sum += float64(int16(binary.LittleEndian.Uint16(raw[at : at+2])))
		}
		samples[i] = sum / float64(channels) / 32768.0
	}
	return samples, sampleRate, nil
}
