package feedback_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mockview/mockview/backend/internal/model/interview"
	"github.com/mockview/mockview/backend/internal/service/feedback"
	"github.com/mockview/mockview/backend/internal/service/session"
)

type fakeSessions struct {
	sess        *interview.Session
	storedCalls int
}

func (f *fakeSessions) Get(_ context.Context, id string) (*interview.Session, error) {
	if f.sess == nil || f.sess.ID != id {
		return nil, session.ErrSessionNotFound
	}
	return f.sess, nil
}

func (f *fakeSessions) StoreFeedback(_ context.Context, _ string, fb *interview.SessionFeedback) error {
	f.storedCalls++
	f.sess.Feedback = fb
	f.sess.Status = interview.StatusFeedbackReady
	return nil
}

func answeredRecord(index int, overall, stability, rate float64, words, fillers int, emotion string, eye float64) interview.AnswerRecord {
	transcript := "transcript"
	return interview.AnswerRecord{
		QuestionIndex: index,
		Voice: interview.VoiceMetrics{
			Transcript:      &transcript,
			WordCount:       words,
			FillerWordCount: fillers,
			SpeakingRateWPM: rate,
			PitchStability:  stability,
			EnergyStability: stability,
			HasSpeech:       true,
			SignalUsable:    true,
		},
		Video: &interview.VideoMetrics{
			EyeContactRatio: eye,
			DominantEmotion: &emotion,
		},
		Score: &interview.ConfidenceScore{Overall: overall, Band: interview.BandGood},
	}
}

func completedSession(id string, answers ...interview.AnswerRecord) *interview.Session {
	return &interview.Session{
		ID:              id,
		Role:            "Software Engineer",
		ExperienceLevel: "Fresher",
		Questions:       make([]interview.Question, len(answers)),
		CurrentIndex:    len(answers),
		Status:          interview.StatusCompleted,
		Answers:         answers,
	}
}

func newService(t *testing.T, sessions feedback.SessionSource) *feedback.Service {
	t.Helper()
	svc, err := feedback.NewService(context.Background(), nil, sessions, time.Second)
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	return svc
}

func TestAggregateMixedAnswers(t *testing.T) {
	degradedVideo := answeredRecord(2, 50, 60, 120, 100, 10, "neutral", 0.4)
	degradedVideo.Video = &interview.VideoMetrics{Degraded: true}

	sess := completedSession("s1",
		answeredRecord(0, 80, 90, 140, 150, 5, "happy", 0.8),
		interview.AnswerRecord{QuestionIndex: 1, Skipped: true},
		degradedVideo,
	)

	a := feedback.Aggregate(sess)
	if a.AnsweredQuestions != 2 {
		t.Fatalf("answered: got %d want 2", a.AnsweredQuestions)
	}
	if a.AverageConfidence != 65 {
		t.Fatalf("average confidence: got %v want 65", a.AverageConfidence)
	}
	if a.AverageVoiceStability != 75 {
		t.Fatalf("average stability: got %v want 75", a.AverageVoiceStability)
	}
	if a.AverageSpeakingRateWPM != 130 {
		t.Fatalf("average rate: got %v want 130", a.AverageSpeakingRateWPM)
	}
	if a.AverageEyeContactRatio != 0.8 {
		t.Fatalf("average eye contact: got %v want 0.8 (degraded video excluded)", a.AverageEyeContactRatio)
	}
	if a.TotalWords != 250 || a.TotalFillerWords != 15 {
		t.Fatalf("word totals: got %d/%d want 250/15", a.TotalWords, a.TotalFillerWords)
	}
	if a.FillerWordPercentage != 6 {
		t.Fatalf("filler percentage: got %v want 6", a.FillerWordPercentage)
	}
	if a.EmotionHistogram["happy"] != 1 || len(a.EmotionHistogram) != 1 {
		t.Fatalf("emotion histogram: %+v", a.EmotionHistogram)
	}
	if a.VideoUnavailable {
		t.Fatal("one usable video answer should mark video available")
	}
}

func TestAggregateAllVideoDegraded(t *testing.T) {
	rec := answeredRecord(0, 70, 80, 120, 50, 1, "calm", 0.7)
	rec.Video = &interview.VideoMetrics{Degraded: true}
	a := feedback.Aggregate(completedSession("s2", rec))
	if !a.VideoUnavailable {
		t.Fatal("expected VideoUnavailable when every video signal degraded")
	}
}

func TestGetRequiresCompletedSession(t *testing.T) {
	sess := completedSession("s3", answeredRecord(0, 70, 80, 120, 50, 1, "calm", 0.7))
	sess.Status = interview.StatusInProgress
	svc := newService(t, &fakeSessions{sess: sess})

	if _, err := svc.Get(context.Background(), "s3", false); !errors.Is(err, session.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestGetMissingSession(t *testing.T) {
	svc := newService(t, &fakeSessions{})
	if _, err := svc.Get(context.Background(), "nope", false); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetBuildsAndCachesTemplateFeedback(t *testing.T) {
	sessions := &fakeSessions{sess: completedSession("s4", answeredRecord(0, 82, 85, 135, 200, 4, "happy", 0.75))}
	svc := newService(t, sessions)

	fb, err := svc.Get(context.Background(), "s4", false)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if fb.NarrativeSource != interview.NarrativeSourceTemplate {
		t.Fatalf("narrative source: got %s want template", fb.NarrativeSource)
	}
	if fb.OverallSummary == "" || len(fb.Strengths) == 0 || len(fb.ActionPlan) == 0 {
		t.Fatalf("incomplete feedback: %+v", fb)
	}
	if sessions.storedCalls != 1 {
		t.Fatalf("feedback should be stored once, got %d", sessions.storedCalls)
	}

	again, err := svc.Get(context.Background(), "s4", false)
	if err != nil {
		t.Fatalf("second Get err: %v", err)
	}
	if again != fb {
		t.Fatal("second Get should return the cached feedback")
	}
	if sessions.storedCalls != 1 {
		t.Fatalf("cached read must not store again, got %d calls", sessions.storedCalls)
	}
}

func TestGetForceRebuilds(t *testing.T) {
	sessions := &fakeSessions{sess: completedSession("s5", answeredRecord(0, 82, 85, 135, 200, 4, "happy", 0.75))}
	svc := newService(t, sessions)

	first, err := svc.Get(context.Background(), "s5", false)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	second, err := svc.Get(context.Background(), "s5", true)
	if err != nil {
		t.Fatalf("forced Get err: %v", err)
	}
	if first == second {
		t.Fatal("force should rebuild instead of returning the cache")
	}
	if sessions.storedCalls != 2 {
		t.Fatalf("expected two stores, got %d", sessions.storedCalls)
	}
}

func TestTemplateCallsOutFastTalkingAndFillers(t *testing.T) {
	sessions := &fakeSessions{sess: completedSession("s6", answeredRecord(0, 60, 50, 185, 200, 20, "neutral", 0.3))}
	svc := newService(t, sessions)

	fb, err := svc.Get(context.Background(), "s6", false)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}

	joined := strings.Join(fb.Improvements, " ")
	if !strings.Contains(joined, "Slow down") {
		t.Fatalf("expected a pacing note for 185 wpm: %v", fb.Improvements)
	}
	if !strings.Contains(joined, "Filler words") {
		t.Fatalf("expected a filler note for 10%% fillers: %v", fb.Improvements)
	}
	if !strings.Contains(joined, "camera") {
		t.Fatalf("expected an eye-contact note for 0.3 ratio: %v", fb.Improvements)
	}
}

func TestTemplateNotesUnavailableVideo(t *testing.T) {
	rec := answeredRecord(0, 70, 80, 120, 50, 1, "calm", 0.7)
	rec.Video = nil
	sessions := &fakeSessions{sess: completedSession("s7", rec)}
	svc := newService(t, sessions)

	fb, err := svc.Get(context.Background(), "s7", false)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if !strings.Contains(strings.Join(fb.Tips, " "), "Video was unavailable") {
		t.Fatalf("expected a video-unavailable tip: %v", fb.Tips)
	}
}

func TestTemplateHandlesAllSkipped(t *testing.T) {
	sessions := &fakeSessions{sess: completedSession("s8",
		interview.AnswerRecord{QuestionIndex: 0, Skipped: true},
		interview.AnswerRecord{QuestionIndex: 1, Skipped: true},
		interview.AnswerRecord{QuestionIndex: 2, Skipped: true},
	)}
	svc := newService(t, sessions)

	fb, err := svc.Get(context.Background(), "s8", false)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if !strings.Contains(fb.OverallSummary, "No answers") {
		t.Fatalf("unexpected summary for empty session: %s", fb.OverallSummary)
	}
	if fb.Analytics.AnsweredQuestions != 0 {
		t.Fatalf("answered should be 0, got %d", fb.Analytics.AnsweredQuestions)
	}
}
