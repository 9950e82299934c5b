// Package analysis turns one raw answer recording into a scored answer
// record. The audio and video pipelines run concurrently and each one may
// degrade on its own without failing the request.
package analysis

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/mockview/mockview/backend/internal/analysis/audio"
	"github.com/mockview/mockview/backend/internal/analysis/video"
	"github.com/mockview/mockview/backend/internal/collab"
	"github.com/mockview/mockview/backend/internal/model/interview"
	"github.com/mockview/mockview/backend/internal/scoring"
	"github.com/mockview/mockview/backend/internal/service/stt"
	"github.com/mockview/mockview/backend/internal/service/vision"
)

// ErrEmptyAudio is returned when the answer upload carries no audio payload.
var ErrEmptyAudio = errors.New("analysis: empty audio payload")

// SessionRecorder is the slice of the session service the analyzer needs.
type SessionRecorder interface {
	RecordAnswer(ctx context.Context, id string, record interview.AnswerRecord) (*interview.Session, error)
}

// Service analyzes answer recordings and records the result on the session.
type Service struct {
	sessions SessionRecorder
	stt      *stt.Client
	vision   *vision.Client
	timeout  time.Duration
}

func NewService(sessions SessionRecorder, sttClient *stt.Client, visionClient *vision.Client, timeout time.Duration) *Service {
	return &Service{
		sessions: sessions,
		stt:      sttClient,
		vision:   visionClient,
		timeout:  timeout,
	}
}

// ProcessAnswer analyzes one answer and appends it to the session. The video
// payload is optional; audio is required. Collaborator failures degrade the
// affected metrics instead of failing the answer.
func (s *Service) ProcessAnswer(ctx context.Context, sessionID string, questionIndex int, audioBytes, videoBytes []byte) (*interview.AnswerRecord, *interview.Session, error) {
	if len(audioBytes) == 0 {
		return nil, nil, ErrEmptyAudio
	}

	var (
		wg           sync.WaitGroup
		voiceMetrics interview.VoiceMetrics
		videoMetrics *interview.VideoMetrics
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		voiceMetrics = s.analyzeVoice(ctx, audioBytes)
	}()

	if len(videoBytes) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			videoMetrics = s.analyzeVideo(ctx, videoBytes)
		}()
	}
	wg.Wait()

	score := scoring.Score(scoring.Inputs{Voice: voiceMetrics, Video: videoMetrics})

	record := interview.AnswerRecord{
		QuestionIndex: questionIndex,
		Voice:         voiceMetrics,
		Video:         videoMetrics,
		Score:         &score,
		Degraded:      voiceMetrics.Degraded || (videoMetrics != nil && videoMetrics.Degraded),
		RecordedAt:    time.Now(),
	}

	sess, err := s.sessions.RecordAnswer(ctx, sessionID, record)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[analysis] session %s question %d scored %.1f (%s)", sessionID, questionIndex, score.Overall, score.Band)
	return &record, sess, nil
}

// analyzeVoice combines the local signal metrics with the transcript from the
// speech-to-text collaborator. Either half can fail independently.
func (s *Service) analyzeVoice(ctx context.Context, audioBytes []byte) interview.VoiceMetrics {
	var m interview.VoiceMetrics

	samples, sampleRate, err := audio.DecodeWAV(audioBytes)
	if err != nil {
		log.Printf("[analysis] audio decode failed: %v", err)
		m.Degraded = true
	} else {
		sig := audio.AnalyzeSignal(samples, sampleRate)
		m.PitchStability = sig.PitchStability
		m.EnergyStability = sig.EnergyStability
		m.PitchMean = sig.PitchMean
		m.PitchStd = sig.PitchStd
		m.EnergyMean = sig.EnergyMean
		m.EnergyStd = sig.EnergyStd
		m.SpeechPercentage = sig.SpeechPercentage
		m.DurationSec = sig.DurationSec
		m.HasSpeech = sig.HasSpeech
		m.SignalUsable = sig.TotalFrames > 0
	}

	if s.stt == nil || !s.stt.Enabled() {
		m.Degraded = true
		return m
	}

	res := collab.Do(ctx, s.timeout, func(ctx context.Context) (stt.Result, error) {
		return s.stt.Transcribe(ctx, audioBytes)
	}, stt.Result{})
	if res.Degraded {
		log.Printf("[analysis] speech-to-text degraded: %v", res.Err)
		m.Degraded = true
		return m
	}

	transcript := res.Value.Transcript
	confidence := res.Value.Confidence
	m.Transcript = &transcript
	m.TranscriptConfidence = &confidence

	words := audio.Words(transcript)
	m.WordCount = len(words)
	m.FillerWordCount = audio.CountFillerWords(words)
	m.FillerWordPercentage = audio.FillerPercentage(m.FillerWordCount, m.WordCount)
	if m.HasSpeech && m.DurationSec > 0 {
		m.SpeakingRateWPM = float64(m.WordCount) / (m.DurationSec / 60.0)
	}
	return m
}

// analyzeVideo asks the vision collaborator for per-frame observations and
// folds them into summary metrics. Failure yields neutral degraded metrics
// rather than no metrics, so the caller can tell "no video sent" apart from
// "video analysis failed".
func (s *Service) analyzeVideo(ctx context.Context, videoBytes []byte) *interview.VideoMetrics {
	if s.vision == nil || !s.vision.Enabled() {
		neutral := video.Neutral()
		return &neutral
	}

	res := collab.Do(ctx, s.timeout, func(ctx context.Context) ([]video.FrameObservation, error) {
		return s.vision.AnalyzeFrames(ctx, videoBytes)
	}, nil)
	if res.Degraded {
		log.Printf("[analysis] vision degraded: %v", res.Err)
		neutral := video.Neutral()
		return &neutral
	}

	m := video.Summarize(res.Value)
	return &m
}
