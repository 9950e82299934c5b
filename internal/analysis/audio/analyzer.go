// Package audio computes voice-signal metrics locally from raw PCM, so that
// pitch/energy stability survives a speech-to-text outage.
package audio

import (
	"math"
	"strings"
)

const (
	// FrameDuration is the fixed analysis window length.
	FrameDuration = 30 // ms

	// energyThreshold is the RMS level above which a frame counts as voiced.
	energyThreshold = 0.01

	// Accepted fundamental-frequency band for human speech.
	minPitchHz = 50
	maxPitchHz = 500

	// speechFloorPct is the minimum voiced-frame share for the recording to
	// count as containing speech at all.
	speechFloorPct = 5.0
)

// SignalMetrics are the window-level statistics of one recording.
type SignalMetrics struct {
	DurationSec      float64
	TotalFrames      int
	VoicedFrames     int
	SpeechPercentage float64
	PitchMean        float64
	PitchStd         float64
	EnergyMean       float64
	EnergyStd        float64
	PitchStability   float64
	EnergyStability  float64
	HasSpeech        bool
}

// AnalyzeSignal walks the recording in fixed-length frames and derives
// voice-activity, pitch and energy statistics. Stability scores are the
// inverse coefficient of variation scaled to 0-100; with no voiced signal
// they are 0.
func AnalyzeSignal(samples []float64, sampleRate int) SignalMetrics {
	var m SignalMetrics
	if sampleRate <= 0 || len(samples) == 0 {
		return m
	}
	m.DurationSec = float64(len(samples)) / float64(sampleRate)

	frameSize := sampleRate * FrameDuration / 1000
	if frameSize <= 0 {
		return m
	}

	var (
		energies []float64
		pitches  []float64
	)
	for start := 0; start+frameSize <= len(samples); start += frameSize {
		frame := samples[start : start+frameSize]
		rms := rootMeanSquare(frame)
		energies = append(energies, rms)
		m.TotalFrames++
		if rms > energyThreshold {
			m.VoicedFrames++
			if hz, ok := framePitch(frame, sampleRate); ok {
				pitches = append(pitches, hz)
			}
		}
	}
	if m.TotalFrames == 0 {
		return m
	}

	m.SpeechPercentage = float64(m.VoicedFrames) / float64(m.TotalFrames) * 100
	m.HasSpeech = m.SpeechPercentage > speechFloorPct
	m.EnergyMean, m.EnergyStd = meanStd(energies)
	m.PitchMean, m.PitchStd = meanStd(pitches)

	// Stability only means anything once there is voiced signal to vary.
	if m.SpeechPercentage >= 1.0 {
		m.PitchStability = stabilityScore(m.PitchMean, m.PitchStd)
		m.EnergyStability = stabilityScore(m.EnergyMean, m.EnergyStd)
	}
	return m
}

// stabilityScore maps a coefficient of variation to 0-100, higher = steadier.
func stabilityScore(mean, std float64) float64 {
	if mean <= 0 {
		return 0
	}
	cv := std / mean * 100
	if cv > 100 {
		cv = 100
	}
	return 100 - cv
}

// framePitch estimates the fundamental frequency of one frame by normalized
// autocorrelation, constrained to the human speech band. Frames without a
// clear periodic peak are rejected.
func framePitch(frame []float64, sampleRate int) (float64, bool) {
	minLag := sampleRate / maxPitchHz
	maxLag := sampleRate / minPitchHz
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag < 1 || minLag >= maxLag {
		return 0, false
	}

	energy := 0.0
	for _, s := range frame {
		energy += s * s
	}
	if energy == 0 {
		return 0, false
	}

	bestLag, bestCorr := 0, 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		corr := 0.0
		for i := 0; i+lag < len(frame); i++ {
			corr += frame[i] * frame[i+lag]
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}
	if bestLag == 0 || bestCorr/energy < 0.3 {
		return 0, false
	}
	return float64(sampleRate) / float64(bestLag), true
}

func rootMeanSquare(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}

// fillerLexicon is the fixed disfluency-token set counted against the
// transcript. "you know" is matched as a bigram.
var fillerLexicon = map[string]struct{}{
	"um": {}, "uh": {}, "like": {}, "so": {}, "well": {},
	"actually": {}, "basically": {}, "literally": {}, "right": {},
	"okay": {}, "alright": {}, "yeah": {}, "hmm": {},
}

// Words splits a transcript into normalized tokens, stripping trailing
// punctuation the way spoken-text transcripts carry it.
func Words(transcript string) []string {
	fields := strings.Fields(transcript)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.ToLower(strings.Trim(f, ".,!?;:"))
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// CountFillerWords counts lexicon hits over normalized tokens, including the
// "you know" bigram.
func CountFillerWords(words []string) int {
	count := 0
	for i, w := range words {
		if _, ok := fillerLexicon[w]; ok {
			count++
			continue
		}
		if w == "you" && i+1 < len(words) && words[i+1] == "know" {
			count++
		}
	}
	return count
}

// FillerPercentage is count/total scaled to percent, defined as 0 for an
// empty transcript.
func FillerPercentage(count, totalWords int) float64 {
	if totalWords == 0 {
		return 0
	}
	return float64(count) / float64(totalWords) * 100
}
