package interview

import "time"

// Status tracks the forward-only lifecycle of a rehearsal session.
type Status string

const (
	StatusCreated       Status = "created"
	StatusInProgress    Status = "in_progress"
	StatusCompleted     Status = "completed"
	StatusFeedbackReady Status = "feedback_ready"
)

var statusOrder = map[Status]int{
	StatusCreated:       0,
	StatusInProgress:    1,
	StatusCompleted:     2,
	StatusFeedbackReady: 3,
}

// CanAdvanceTo reports whether next is a legal forward transition.
// Backward transitions are never permitted.
func (s Status) CanAdvanceTo(next Status) bool {
	cur, ok := statusOrder[s]
	if !ok {
		return false
	}
	n, ok := statusOrder[next]
	if !ok {
		return false
	}
	return n == cur+1
}

// Session captures one rehearsal run: the generated question list, the
// candidate's answers and, once completed, the cached feedback. It is owned
// exclusively by the session service and mutated only through it.
type Session struct {
	ID              string           `json:"id"`
	Role            string           `json:"role"`
	ExperienceLevel string           `json:"experienceLevel"`
	Questions       []Question       `json:"questions"`
	CurrentIndex    int              `json:"currentIndex"`
	Status          Status           `json:"status"`
	Answers         []AnswerRecord   `json:"answers"`
	Feedback        *SessionFeedback `json:"feedback,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Clone returns a point-in-time snapshot safe to read and encode while the
// original keeps mutating. Nested pointers are shared: answer metrics and
// feedback are immutable once recorded.
func (s *Session) Clone() *Session {
	c := *s
	c.Questions = append([]Question(nil), s.Questions...)
	c.Answers = append([]AnswerRecord(nil), s.Answers...)
	return &c
}

// Progress summarizes how far a session has advanced.
type Progress struct {
	SessionID          string  `json:"sessionId"`
	TotalQuestions     int     `json:"totalQuestions"`
	CompletedResponses int     `json:"completedResponses"`
	CurrentIndex       int     `json:"currentIndex"`
	ProgressPercentage float64 `json:"progressPercentage"`
	IsCompleted        bool    `json:"isCompleted"`
	RemainingQuestions int     `json:"remainingQuestions"`
}

// Progress computes the snapshot for the session's current state.
func (s *Session) Progress() Progress {
	total := len(s.Questions)
	done := len(s.Answers)
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total) * 100
	}
	remaining := total - done
	if remaining < 0 {
		remaining = 0
	}
	return Progress{
		SessionID:          s.ID,
		TotalQuestions:     total,
		CompletedResponses: done,
		CurrentIndex:       s.CurrentIndex,
		ProgressPercentage: pct,
		IsCompleted:        done >= total,
		RemainingQuestions: remaining,
	}
}
