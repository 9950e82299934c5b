package interview

import "time"

// SessionAnalytics aggregates metrics across all non-skipped answers.
type SessionAnalytics struct {
	AnsweredQuestions      int            `json:"answeredQuestions"`
	AverageConfidence      float64        `json:"averageConfidence"`
	AverageVoiceStability  float64        `json:"averageVoiceStability"`
	AverageSpeakingRateWPM float64        `json:"averageSpeakingRateWpm"`
	AverageEyeContactRatio float64        `json:"averageEyeContactRatio"`
	TotalWords             int            `json:"totalWords"`
	TotalFillerWords       int            `json:"totalFillerWords"`
	FillerWordPercentage   float64        `json:"fillerWordPercentage"`
	EmotionHistogram       map[string]int `json:"emotionHistogram"`
	VideoUnavailable       bool           `json:"videoUnavailable"`
}

// Narrative source markers for SessionFeedback.
const (
	NarrativeSourceModel    = "model"
	NarrativeSourceTemplate = "template"
)

// SessionFeedback is the session-level roll-up: aggregate analytics plus the
// narrative produced by the feedback collaborator or the template fallback.
type SessionFeedback struct {
	Analytics       SessionAnalytics `json:"analytics"`
	OverallSummary  string           `json:"overallSummary"`
	Strengths       []string         `json:"strengths"`
	Improvements    []string         `json:"improvements"`
	ActionPlan      []string         `json:"actionPlan"`
	Tips            []string         `json:"tips"`
	NarrativeSource string           `json:"narrativeSource"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}
