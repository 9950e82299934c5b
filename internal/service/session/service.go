// Package session owns the rehearsal session lifecycle: creation with a
// generated question list, serialized answer recording with monotonic
// indices, skipping, and the forward-only status transitions.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mockview/mockview/backend/internal/model/interview"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid state transition")
)

// Question-count bounds applied to every create request.
const (
	MinQuestions = 3
	MaxQuestions = 10
)

// QuestionSource produces the ordered question list for a new session. The
// model-backed generator and its bank fallback sit behind this.
type QuestionSource interface {
	Generate(ctx context.Context, role, level string, count int) []interview.Question
}

// Service manages sessions. Answer recording for one session is serialized
// through a per-session lock; sessions are otherwise independent.
type Service struct {
	store     interview.SessionStore
	questions QuestionSource
	hub       *Hub

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService wires the session manager with its store and question source.
func NewService(store interview.SessionStore, questions QuestionSource, hub *Hub) *Service {
	if hub == nil {
		hub = NewHub()
	}
	return &Service{
		store:     store,
		questions: questions,
		hub:       hub,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Hub exposes the event stream for live subscribers.
func (s *Service) Hub() *Hub {
	return s.hub
}

func (s *Service) sessionLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Create provisions a new session in progress at question 0. The requested
// question count is clamped to [MinQuestions, MaxQuestions].
func (s *Service) Create(ctx context.Context, role, level string, requested int) (*interview.Session, error) {
	count := requested
	if count < MinQuestions {
		count = MinQuestions
	}
	if count > MaxQuestions {
		count = MaxQuestions
	}

	questions := s.questions.Generate(ctx, role, level, count)
	if len(questions) == 0 {
		return nil, fmt.Errorf("question source returned no questions for %s/%s", role, level)
	}

	now := time.Now().UTC()
	session := &interview.Session{
		ID:              uuid.NewString(),
		Role:            role,
		ExperienceLevel: level,
		Questions:       questions,
		CurrentIndex:    0,
		Status:          interview.StatusInProgress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.store.Put(session)
	log.Printf("[session] created id=%s role=%q level=%q questions=%d", session.ID, role, level, len(questions))
	return session, nil
}

// load returns the live stored session. Callers must hold the session lock
// while reading or mutating it.
func (s *Service) load(id string) (*interview.Session, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Get returns a snapshot of the session, or ErrSessionNotFound if absent or
// expired. The snapshot is safe to read and encode concurrently with answer
// recording; only this service mutates the live session.
func (s *Service) Get(_ context.Context, id string) (*interview.Session, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return session.Clone(), nil
}

// advance moves the session to next, failing on any non-forward transition.
func (s *Service) advance(session *interview.Session, next interview.Status) error {
	if !session.Status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, session.Status, next)
	}
	session.Status = next
	return nil
}

// RecordAnswer stores the analyzed answer for the session's current question
// and advances the index, completing the session after the last question.
// Out-of-order or duplicate submission fails with ErrInvalidTransition.
func (s *Service) RecordAnswer(ctx context.Context, id string, record interview.AnswerRecord) (*interview.Session, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if session.Status != interview.StatusInProgress {
		return nil, fmt.Errorf("%w: session %s is %s", ErrInvalidTransition, id, session.Status)
	}
	if record.QuestionIndex != session.CurrentIndex {
		return nil, fmt.Errorf("%w: question %d is not current (current=%d)", ErrInvalidTransition, record.QuestionIndex, session.CurrentIndex)
	}
	for _, existing := range session.Answers {
		if existing.QuestionIndex == record.QuestionIndex && !existing.Skipped {
			return nil, fmt.Errorf("%w: question %d already answered", ErrInvalidTransition, record.QuestionIndex)
		}
	}

	record.RecordedAt = time.Now().UTC()
	session.Answers = append(session.Answers, record)
	session.CurrentIndex++
	session.UpdatedAt = record.RecordedAt

	eventType := EventAnswerRecorded
	if record.Skipped {
		eventType = EventAnswerSkipped
	}

	completed := session.CurrentIndex >= len(session.Questions)
	if completed {
		if err := s.advance(session, interview.StatusCompleted); err != nil {
			return nil, err
		}
	}
	s.store.Put(session)

	overall := 0.0
	if record.Score != nil {
		overall = record.Score.Overall
	}
	s.hub.Publish(Event{
		Type:          eventType,
		SessionID:     session.ID,
		QuestionIndex: record.QuestionIndex,
		OverallScore:  overall,
		Status:        string(session.Status),
	})
	if completed {
		log.Printf("[session] completed id=%s answers=%d", session.ID, len(session.Answers))
		s.hub.Publish(Event{
			Type:      EventSessionCompleted,
			SessionID: session.ID,
			Status:    string(session.Status),
		})
	}
	return session.Clone(), nil
}

// SkipCurrent records a skipped marker for the current question and advances
// exactly like RecordAnswer. The skipped record carries no score and is
// excluded from aggregation.
func (s *Service) SkipCurrent(ctx context.Context, id string) (*interview.AnswerRecord, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	record := interview.AnswerRecord{
		QuestionIndex: session.CurrentIndex,
		Skipped:       true,
	}
	updated, err := s.RecordAnswer(ctx, id, record)
	if err != nil {
		return nil, err
	}
	stored := updated.Answers[len(updated.Answers)-1]
	return &stored, nil
}

// StoreFeedback atomically caches the computed feedback on a completed
// session and moves it to feedback_ready. Recomputation replaces the cache
// in place.
func (s *Service) StoreFeedback(ctx context.Context, id string, feedback *interview.SessionFeedback) error {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.load(id)
	if err != nil {
		return err
	}
	// Recomputation replaces the cache without a transition.
	if session.Status != interview.StatusFeedbackReady {
		if err := s.advance(session, interview.StatusFeedbackReady); err != nil {
			return fmt.Errorf("feedback requires a completed session: %w", err)
		}
	}

	session.Feedback = feedback
	session.UpdatedAt = time.Now().UTC()
	s.store.Put(session)

	s.hub.Publish(Event{
		Type:      EventFeedbackReady,
		SessionID: session.ID,
		Status:    string(session.Status),
	})
	return nil
}

// PruneExpired drops expired sessions; intended for periodic housekeeping by
// the embedding application.
func (s *Service) PruneExpired() int {
	return s.store.PruneExpired()
}
