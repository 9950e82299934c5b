package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// encodeWAV builds a minimal mono 16-bit PCM WAV payload for tests.
func encodeWAV(samples []float64, sampleRate int) []byte {
	var pcm bytes.Buffer
	for _, s := range samples {
		v := int16(s * 32767)
		binary.Write(&pcm, binary.LittleEndian, v)
	}
	dataLen := pcm.Len()

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(36+dataLen))
	out.WriteString("WAVE")
	out.WriteString("fmt ")
	binary.Write(&out, binary.LittleEndian, uint32(16))
	binary.Write(&out, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&out, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&out, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&out, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&out, binary.LittleEndian, uint16(2))
	binary.Write(&out, binary.LittleEndian, uint16(16))
	out.WriteString("data")
	binary.Write(&out, binary.LittleEndian, uint32(dataLen))
	out.Write(pcm.Bytes())
	return out.Bytes()
}

func sine(freq float64, seconds float64, sampleRate int, amplitude float64) []float64 {
	n := int(seconds * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return samples
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	in := sine(200, 0.5, 16000, 0.5)
	data := encodeWAV(in, 16000)

	samples, rate, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("DecodeWAV err: %v", err)
	}
	if rate != 16000 {
		t.Fatalf("unexpected sample rate: got %d want 16000", rate)
	}
	if len(samples) != len(in) {
		t.Fatalf("unexpected sample count: got %d want %d", len(samples), len(in))
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	if _, _, err := DecodeWAV([]byte("definitely not audio")); err == nil {
		t.Fatal("expected error for non-WAV input")
	}
}

func TestAnalyzeSignalSteadyTone(t *testing.T) {
	m := AnalyzeSignal(sine(200, 1.0, 16000, 0.5), 16000)

	if !m.HasSpeech {
		t.Fatal("expected voiced signal to register as speech")
	}
	if m.PitchMean < 180 || m.PitchMean > 220 {
		t.Fatalf("unexpected pitch estimate: %.1f Hz", m.PitchMean)
	}
	if m.PitchStability < 90 {
		t.Fatalf("steady tone should score high pitch stability, got %.1f", m.PitchStability)
	}
	if m.EnergyStability < 90 {
		t.Fatalf("steady tone should score high energy stability, got %.1f", m.EnergyStability)
	}
}

func TestAnalyzeSignalSilence(t *testing.T) {
	m := AnalyzeSignal(make([]float64, 16000), 16000)

	if m.HasSpeech {
		t.Fatal("silence must not register as speech")
	}
	if m.VoicedFrames != 0 {
		t.Fatalf("expected 0 voiced frames, got %d", m.VoicedFrames)
	}
	if m.PitchStability != 0 || m.EnergyStability != 0 {
		t.Fatalf("silence must yield zero stability, got %.1f/%.1f", m.PitchStability, m.EnergyStability)
	}
}

func TestAnalyzeSignalEmpty(t *testing.T) {
	m := AnalyzeSignal(nil, 16000)
	if m.TotalFrames != 0 || m.HasSpeech {
		t.Fatalf("empty input must be inert, got %+v", m)
	}
}

func TestFillerWordCounting(t *testing.T) {
	words := Words("Um, I like it, you know.")
	if got := CountFillerWords(words); got != 3 {
		t.Fatalf("unexpected filler count: got %d want 3", got)
	}
	if pct := FillerPercentage(3, 6); pct != 50 {
		t.Fatalf("unexpected filler percentage: got %.1f want 50", pct)
	}
	if pct := FillerPercentage(0, 0); pct != 0 {
		t.Fatalf("zero words must yield 0%%, got %.1f", pct)
	}
}
