package interview

import "time"

// VoiceMetrics is the audio extractor output for one answer. Transcript and
// TranscriptConfidence are nil when the speech-to-text collaborator degraded;
// the locally computed signal metrics remain valid in that case as long as
// SignalUsable is set.
type VoiceMetrics struct {
	Transcript           *string  `json:"transcript"`
	TranscriptConfidence *float64 `json:"transcriptConfidence"`
	WordCount            int      `json:"wordCount"`
	SpeakingRateWPM      float64  `json:"speakingRateWpm"`
	FillerWordCount      int      `json:"fillerWordCount"`
	FillerWordPercentage float64  `json:"fillerWordPercentage"`
	PitchStability       float64  `json:"pitchStabilityScore"`
	EnergyStability      float64  `json:"energyStabilityScore"`
	PitchMean            float64  `json:"pitchMean"`
	PitchStd             float64  `json:"pitchStd"`
	EnergyMean           float64  `json:"energyMean"`
	EnergyStd            float64  `json:"energyStd"`
	SpeechPercentage     float64  `json:"speechPercentage"`
	DurationSec          float64  `json:"durationSec"`
	HasSpeech            bool     `json:"hasSpeech"`
	SignalUsable         bool     `json:"signalUsable"`
	Degraded             bool     `json:"degraded"`
}

// VideoMetrics is the video extractor output for one answer. DominantEmotion
// is nil when no face was classified in any sampled frame.
type VideoMetrics struct {
	FacePresentRatio  float64 `json:"facePresentRatio"`
	EyeContactRatio   float64 `json:"eyeContactRatio"`
	DominantEmotion   *string `json:"dominantEmotion"`
	EmotionConfidence float64 `json:"emotionConfidence"`
	FramesSampled     int     `json:"framesSampled"`
	Degraded          bool    `json:"degraded"`
}

// AnswerRecord is the immutable analysis result for one question. A skipped
// answer carries no metrics or score and is excluded from aggregation.
// Re-analysis replaces the whole record atomically.
type AnswerRecord struct {
	QuestionIndex int              `json:"questionIndex"`
	Skipped       bool             `json:"skipped"`
	Voice         VoiceMetrics     `json:"voiceMetrics"`
	Video         *VideoMetrics    `json:"videoMetrics"`
	Score         *ConfidenceScore `json:"confidenceScore"`
	Degraded      bool             `json:"degraded"`
	RecordedAt    time.Time        `json:"recordedAt"`
}
