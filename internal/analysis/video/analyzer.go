// Package video turns per-frame face observations from the vision
// collaborator into answer-level metrics. Frames are sampled at a fixed step
// to bound cost regardless of recording length.
package video

import (
	"math"

	"github.com/mockview/mockview/backend/internal/model/interview"
)

const (
	// SampleStep keeps every 5th observation.
	SampleStep = 5

	// forwardFacingMaxDeg is the head-orientation threshold within which a
	// frame counts as eye contact.
	forwardFacingMaxDeg = 20.0
)

// FrameObservation is one sampled frame as reported by the vision service.
type FrameObservation struct {
	Index             int     `json:"index"`
	FacePresent       bool    `json:"facePresent"`
	YawDegrees        float64 `json:"yawDegrees"`
	PitchDegrees      float64 `json:"pitchDegrees"`
	EmotionLabel      string  `json:"emotionLabel"`
	EmotionConfidence float64 `json:"emotionConfidence"`
}

// Neutral returns the placeholder metrics used when the vision collaborator
// is unavailable or no face was ever detected.
func Neutral() interview.VideoMetrics {
	return interview.VideoMetrics{Degraded: true}
}

// Summarize derives answer-level metrics from raw frame observations.
// Frames without a detected face count against the eye-contact ratio. When
// no sampled frame contains a face the neutral placeholder is returned.
func Summarize(frames []FrameObservation) interview.VideoMetrics {
	var sampled []FrameObservation
	for i, f := range frames {
		if i%SampleStep == 0 {
			sampled = append(sampled, f)
		}
	}
	if len(sampled) == 0 {
		return Neutral()
	}

	faceFrames := 0
	eyeContactFrames := 0
	emotionCounts := make(map[string]int)
	emotionConfidence := make(map[string]float64)

	for _, f := range sampled {
		if !f.FacePresent {
			continue
		}
		faceFrames++
		if math.Abs(f.YawDegrees) <= forwardFacingMaxDeg && math.Abs(f.PitchDegrees) <= forwardFacingMaxDeg {
			eyeContactFrames++
		}
		if f.EmotionLabel != "" {
			emotionCounts[f.EmotionLabel]++
			emotionConfidence[f.EmotionLabel] += f.EmotionConfidence
		}
	}

	if faceFrames == 0 {
		return Neutral()
	}

	m := interview.VideoMetrics{
		FacePresentRatio: float64(faceFrames) / float64(len(sampled)),
		EyeContactRatio:  float64(eyeContactFrames) / float64(len(sampled)),
		FramesSampled:    len(sampled),
	}

	// Ties break on the lexicographically smallest label so identical
	// inputs always summarize identically.
	dominant, count := "", 0
	for label, c := range emotionCounts {
		if c > count || (c == count && label < dominant) {
			dominant, count = label, c
		}
	}
	if dominant != "" {
		m.DominantEmotion = &dominant
		m.EmotionConfidence = emotionConfidence[dominant] / float64(count)
	}
	return m
}
