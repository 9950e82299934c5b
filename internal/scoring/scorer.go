// Package scoring combines the audio and video extractor outputs for one
// answer into a weighted, explainable confidence score. Scoring is a pure
// function of its inputs.
package scoring

import (
	"github.com/mockview/mockview/backend/internal/model/interview"
)

// Inputs bundles the per-answer signals the components read from. Video is
// nil when no recording was submitted at all.
type Inputs struct {
	Voice interview.VoiceMetrics
	Video *interview.VideoMetrics
}

// Component is one scoring dimension. Normalize returns the 0-100 score and
// whether the component's source signal is usable; unusable components are
// excluded and the remaining weights renormalized.
type Component struct {
	Name      string
	Weight    float64
	Normalize func(in Inputs) (float64, bool)
}

// Canonical component names.
const (
	ComponentVoiceStability  = "voice_stability"
	ComponentEyeContact      = "eye_contact"
	ComponentEmotion         = "emotion_consistency"
	ComponentFillerFrequency = "filler_word_frequency"
)

// Components is the canonical ordered weighting table. This 4-component
// 40/25/20/15 split is the contract; weights sum to 1 before any exclusion.
func Components() []Component {
	return []Component{
		{
			Name:   ComponentVoiceStability,
			Weight: 0.40,
			Normalize: func(in Inputs) (float64, bool) {
				if !in.Voice.SignalUsable {
					return 0, false
				}
				return clamp((in.Voice.PitchStability + in.Voice.EnergyStability) / 2), true
			},
		},
		{
			Name:   ComponentEyeContact,
			Weight: 0.25,
			Normalize: func(in Inputs) (float64, bool) {
				if in.Video == nil || in.Video.Degraded {
					return 0, false
				}
				return clamp(in.Video.EyeContactRatio * 100), true
			},
		},
		{
			Name:   ComponentEmotion,
			Weight: 0.20,
			Normalize: func(in Inputs) (float64, bool) {
				if in.Video == nil || in.Video.Degraded || in.Video.DominantEmotion == nil {
					return 0, false
				}
				return clamp(in.Video.EmotionConfidence), true
			},
		},
		{
			Name:   ComponentFillerFrequency,
			Weight: 0.15,
			Normalize: func(in Inputs) (float64, bool) {
				// Needs a transcript; a present-but-empty one counts as 0%
				// filler rather than excluding the component.
				if in.Voice.Transcript == nil {
					return 0, false
				}
				return clamp(100 - in.Voice.FillerWordPercentage*5), true
			},
		},
	}
}

// Score evaluates every component, drops the unusable ones, renormalizes the
// remaining weights to sum to 1 and folds them into the overall score.
// Identical inputs always produce identical output.
func Score(in Inputs) interview.ConfidenceScore {
	type included struct {
		name   string
		weight float64
		score  float64
	}

	var (
		parts       []included
		totalWeight float64
		partial     bool
	)
	for _, c := range Components() {
		score, ok := c.Normalize(in)
		if !ok {
			partial = true
			continue
		}
		parts = append(parts, included{name: c.Name, weight: c.Weight, score: score})
		totalWeight += c.Weight
	}

	result := interview.ConfidenceScore{Partial: partial}
	if len(parts) == 0 || totalWeight == 0 {
		result.Partial = true
		result.Band = BandFor(0)
		return result
	}

	for _, p := range parts {
		weight := p.weight / totalWeight
		contribution := weight * p.score
		result.Overall += contribution
		result.Components = append(result.Components, interview.ComponentScore{
			Name:                 p.name,
			Score:                p.score,
			Weight:               weight,
			WeightedContribution: contribution,
		})
	}
	result.Overall = clamp(result.Overall)
	result.Band = BandFor(result.Overall)
	return result
}

// BandFor maps an overall score to its qualitative band.
func BandFor(overall float64) interview.Band {
	switch {
	case overall >= 85:
		return interview.BandExcellent
	case overall >= 70:
		return interview.BandGood
	case overall >= 55:
		return interview.BandAverage
	case overall >= 40:
		return interview.BandBelowAverage
	default:
		return interview.BandPoor
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
