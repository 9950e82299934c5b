// Package feedback rolls a completed session up into aggregate analytics and
// a coaching narrative. The narrative comes from the chat model when one is
// configured; otherwise a deterministic template builds it from the same
// analytics, so feedback is always available.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mockview/mockview/backend/internal/analysis/audio"
	"github.com/mockview/mockview/backend/internal/collab"
	"github.com/mockview/mockview/backend/internal/model/interview"
	"github.com/mockview/mockview/backend/internal/scoring"
	"github.com/mockview/mockview/backend/internal/service/session"
)

// SessionSource is the slice of the session service the feedback layer uses.
type SessionSource interface {
	Get(ctx context.Context, id string) (*interview.Session, error)
	StoreFeedback(ctx context.Context, id string, feedback *interview.SessionFeedback) error
}

// Service builds and caches session feedback.
type Service struct {
	enabled  bool
	narrator compose.Runnable[map[string]any, *schema.Message]
	sessions SessionSource
	timeout  time.Duration
}

// NewService wires the narrative chain. chatModel may be nil, in which case
// the template narrative is used for every session.
func NewService(ctx context.Context, chatModel model.ChatModel, sessions SessionSource, timeout time.Duration) (*Service, error) {
	svc := &Service{
		enabled:  chatModel != nil,
		sessions: sessions,
		timeout:  timeout,
	}
	if !svc.enabled {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(narratorSystemPrompt),
		schema.UserMessage(narratorUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile feedback narrator chain: %w", err)
	}
	svc.narrator = runnable
	return svc, nil
}

// Enabled reports whether the model-backed narrator is available.
func (s *Service) Enabled() bool {
	return s != nil && s.enabled && s.narrator != nil
}

// Get returns feedback for a completed session. The first successful build is
// cached on the session; force rebuilds and replaces the cache.
func (s *Service) Get(ctx context.Context, id string, force bool) (*interview.SessionFeedback, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status != interview.StatusCompleted && sess.Status != interview.StatusFeedbackReady {
		return nil, fmt.Errorf("%w: feedback needs a completed session, status is %s", session.ErrInvalidTransition, sess.Status)
	}
	if sess.Feedback != nil && !force {
		return sess.Feedback, nil
	}

	analytics := Aggregate(sess)
	fb := s.narrate(ctx, sess, analytics)
	fb.Analytics = analytics
	fb.GeneratedAt = time.Now()

	if err := s.sessions.StoreFeedback(ctx, id, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// Aggregate folds every non-skipped answer into session-level analytics.
// Averages only cover the answers where the underlying signal was usable, so
// a degraded answer does not drag a metric to zero.
func Aggregate(sess *interview.Session) interview.SessionAnalytics {
	a := interview.SessionAnalytics{EmotionHistogram: make(map[string]int)}

	var (
		confidenceSum float64
		confidenceN   int
		stabilitySum  float64
		stabilityN    int
		rateSum       float64
		rateN         int
		eyeSum        float64
		eyeN          int
		videoSeen     bool
	)

	for _, ans := range sess.Answers {
		if ans.Skipped {
			continue
		}
		a.AnsweredQuestions++

		if ans.Score != nil {
			confidenceSum += ans.Score.Overall
			confidenceN++
		}
		if ans.Voice.SignalUsable {
			stabilitySum += (ans.Voice.PitchStability + ans.Voice.EnergyStability) / 2
			stabilityN++
		}
		if ans.Voice.Transcript != nil {
			a.TotalWords += ans.Voice.WordCount
			a.TotalFillerWords += ans.Voice.FillerWordCount
			if ans.Voice.HasSpeech && ans.Voice.SpeakingRateWPM > 0 {
				rateSum += ans.Voice.SpeakingRateWPM
				rateN++
			}
		}
		if ans.Video != nil && !ans.Video.Degraded {
			videoSeen = true
			eyeSum += ans.Video.EyeContactRatio
			eyeN++
			if ans.Video.DominantEmotion != nil {
				a.EmotionHistogram[*ans.Video.DominantEmotion]++
			}
		}
	}

	if confidenceN > 0 {
		a.AverageConfidence = confidenceSum / float64(confidenceN)
	}
	if stabilityN > 0 {
		a.AverageVoiceStability = stabilitySum / float64(stabilityN)
	}
	if rateN > 0 {
		a.AverageSpeakingRateWPM = rateSum / float64(rateN)
	}
	if eyeN > 0 {
		a.AverageEyeContactRatio = eyeSum / float64(eyeN)
	}
	a.FillerWordPercentage = audio.FillerPercentage(a.TotalFillerWords, a.TotalWords)
	a.VideoUnavailable = !videoSeen
	return a
}

func (s *Service) narrate(ctx context.Context, sess *interview.Session, analytics interview.SessionAnalytics) *interview.SessionFeedback {
	if !s.Enabled() {
		return templateNarrative(analytics)
	}

	res := collab.Do(ctx, s.timeout, func(callCtx context.Context) (*interview.SessionFeedback, error) {
		payload, err := json.Marshal(analytics)
		if err != nil {
			return nil, err
		}
		msg, err := s.narrator.Invoke(callCtx, map[string]any{
			"role":      sess.Role,
			"level":     sess.ExperienceLevel,
			"answered":  analytics.AnsweredQuestions,
			"analytics": string(payload),
		})
		if err != nil {
			return nil, err
		}
		if msg == nil || strings.TrimSpace(msg.Content) == "" {
			return nil, fmt.Errorf("empty narrator response")
		}
		return parseNarrative(msg.Content)
	}, nil)

	if res.Degraded {
		log.Printf("[feedback] narrator degraded, using template: %v", res.Err)
		return templateNarrative(analytics)
	}
	return res.Value
}

type narratorResponse struct {
	OverallSummary string   `json:"overall_summary"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	ActionPlan     []string `json:"action_plan"`
	Tips           []string `json:"tips"`
}

func parseNarrative(content string) (*interview.SessionFeedback, error) {
	raw := strings.TrimSpace(content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var out narratorResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("narrator response parse: %w", err)
	}
	if strings.TrimSpace(out.OverallSummary) == "" {
		return nil, fmt.Errorf("narrator response missing summary")
	}
	return &interview.SessionFeedback{
		OverallSummary:  out.OverallSummary,
		Strengths:       out.Strengths,
		Improvements:    out.Improvements,
		ActionPlan:      out.ActionPlan,
		Tips:            out.Tips,
		NarrativeSource: interview.NarrativeSourceModel,
	}, nil
}

// templateNarrative derives the narrative from analytics alone. The same
// inputs always produce the same feedback.
func templateNarrative(a interview.SessionAnalytics) *interview.SessionFeedback {
	fb := &interview.SessionFeedback{NarrativeSource: interview.NarrativeSourceTemplate}

	if a.AnsweredQuestions == 0 {
		fb.OverallSummary = "No answers were recorded in this session, so there is nothing to evaluate yet. Run another session and answer at least a few questions."
		fb.ActionPlan = []string{
			"Start a new session and answer every question, even briefly.",
			"Record in a quiet room so your voice comes through clearly.",
			"Keep the camera on to get eye-contact and expression feedback.",
		}
		return fb
	}

	band := scoring.BandFor(a.AverageConfidence)
	fb.OverallSummary = fmt.Sprintf(
		"You answered %d questions with an average confidence score of %.0f (%s). The notes below focus on delivery, not on the content of your answers.",
		a.AnsweredQuestions, a.AverageConfidence, band,
	)

	if a.AverageVoiceStability > 70 {
		fb.Strengths = append(fb.Strengths, "Your voice stayed steady and controlled across answers.")
	}
	if !a.VideoUnavailable && a.AverageEyeContactRatio >= 0.5 {
		fb.Strengths = append(fb.Strengths, "You held good eye contact with the camera for most of the session.")
	}
	if a.TotalWords > 0 && a.FillerWordPercentage <= 5 {
		fb.Strengths = append(fb.Strengths, "You kept filler words under control.")
	}
	if len(fb.Strengths) == 0 {
		fb.Strengths = append(fb.Strengths, "You completed the full session, which is the foundation every other skill builds on.")
	}

	if a.AverageSpeakingRateWPM > 160 {
		fb.Improvements = append(fb.Improvements, fmt.Sprintf("You averaged %.0f words per minute. Slow down and give the interviewer time to absorb each point.", a.AverageSpeakingRateWPM))
	} else if a.AverageSpeakingRateWPM > 0 && a.AverageSpeakingRateWPM < 110 {
		fb.Improvements = append(fb.Improvements, fmt.Sprintf("You averaged %.0f words per minute, which can read as hesitant. Practice delivering your key points with a bit more pace.", a.AverageSpeakingRateWPM))
	}
	if a.FillerWordPercentage > 5 {
		fb.Improvements = append(fb.Improvements, fmt.Sprintf("Filler words made up %.1f%% of what you said. Pause silently instead of reaching for um or uh.", a.FillerWordPercentage))
	}
	if !a.VideoUnavailable && a.AverageEyeContactRatio < 0.5 {
		fb.Improvements = append(fb.Improvements, "You looked away from the camera often. Aim to face it directly while you speak.")
	}
	if len(fb.Improvements) == 0 {
		fb.Improvements = append(fb.Improvements, "Keep rehearsing with harder questions to stretch your delivery under pressure.")
	}

	fb.ActionPlan = []string{
		"Re-record your weakest answer and compare the two takes.",
		"Practice one answer a day focusing on a single delivery habit.",
		"Do a full timed session later this week and compare the scores.",
	}

	fb.Tips = append(fb.Tips, "Structure answers with the STAR method so each one lands a clear result.")
	if a.VideoUnavailable {
		fb.Tips = append(fb.Tips, "Video was unavailable this session, so eye contact and expression were not assessed. Enable the camera next time for full feedback.")
	}
	return fb
}
