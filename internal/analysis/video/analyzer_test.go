package video

import (
	"math"
	"testing"
)

// obs builds SampleStep consecutive copies so one lands on each sampling
// boundary, keeping the tests readable in frame-level terms.
func expand(frames []FrameObservation) []FrameObservation {
	out := make([]FrameObservation, 0, len(frames)*SampleStep)
	for _, f := range frames {
		for i := 0; i < SampleStep; i++ {
			out = append(out, f)
		}
	}
	return out
}

func TestSummarizeEyeContact(t *testing.T) {
	frames := expand([]FrameObservation{
		{FacePresent: true, YawDegrees: 5, PitchDegrees: -3, EmotionLabel: "happy", EmotionConfidence: 80},
		{FacePresent: true, YawDegrees: 2, PitchDegrees: 1, EmotionLabel: "happy", EmotionConfidence: 90},
		{FacePresent: true, YawDegrees: 45, PitchDegrees: 0, EmotionLabel: "neutral", EmotionConfidence: 60},
		{FacePresent: false},
	})

	m := Summarize(frames)
	if m.Degraded {
		t.Fatal("expected usable metrics")
	}
	if math.Abs(m.FacePresentRatio-0.75) > 1e-9 {
		t.Fatalf("unexpected face ratio: %.2f", m.FacePresentRatio)
	}
	if math.Abs(m.EyeContactRatio-0.5) > 1e-9 {
		t.Fatalf("unexpected eye-contact ratio: %.2f", m.EyeContactRatio)
	}
	if m.DominantEmotion == nil || *m.DominantEmotion != "happy" {
		t.Fatalf("unexpected dominant emotion: %v", m.DominantEmotion)
	}
	if math.Abs(m.EmotionConfidence-85) > 1e-9 {
		t.Fatalf("unexpected emotion confidence: %.1f", m.EmotionConfidence)
	}
}

func TestSummarizeEmotionTieIsDeterministic(t *testing.T) {
	frames := expand([]FrameObservation{
		{FacePresent: true, EmotionLabel: "neutral", EmotionConfidence: 70},
		{FacePresent: true, EmotionLabel: "happy", EmotionConfidence: 90},
		{FacePresent: true, EmotionLabel: "happy", EmotionConfidence: 80},
		{FacePresent: true, EmotionLabel: "neutral", EmotionConfidence: 60},
	})

	first := Summarize(frames)
	for i := 0; i < 50; i++ {
		m := Summarize(frames)
		if m.DominantEmotion == nil || *m.DominantEmotion != "happy" {
			t.Fatalf("run %d: tie not broken lexicographically: %v", i, m.DominantEmotion)
		}
		if *m.DominantEmotion != *first.DominantEmotion || m.EmotionConfidence != first.EmotionConfidence {
			t.Fatalf("run %d: summary changed for identical input", i)
		}
	}
}

func TestSummarizeNoFace(t *testing.T) {
	frames := expand([]FrameObservation{{FacePresent: false}, {FacePresent: false}})

	m := Summarize(frames)
	if !m.Degraded {
		t.Fatal("expected degraded placeholder when no face detected")
	}
	if m.FacePresentRatio != 0 || m.EyeContactRatio != 0 || m.DominantEmotion != nil {
		t.Fatalf("expected neutral placeholder, got %+v", m)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	if m := Summarize(nil); !m.Degraded {
		t.Fatal("expected degraded placeholder for empty observations")
	}
}
