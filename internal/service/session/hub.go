package session

import "sync"

// Event types pushed to live subscribers.
const (
	EventAnswerRecorded   = "answer_recorded"
	EventAnswerSkipped    = "answer_skipped"
	EventSessionCompleted = "session_completed"
	EventFeedbackReady    = "feedback_ready"
)

// Event is one progress notification for a session.
type Event struct {
	Type          string  `json:"type"`
	SessionID     string  `json:"sessionId"`
	QuestionIndex int     `json:"questionIndex,omitempty"`
	OverallScore  float64 `json:"overallScore,omitempty"`
	Status        string  `json:"status"`
}

// Hub fans session events out to live subscribers. Slow subscribers drop
// events rather than block answer recording.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers for one session's events. The returned cancel func
// must be called when the subscriber goes away.
func (h *Hub) Subscribe(sessionID string) (<-chan Event, func()) {
	ch := make(chan Event, 16)
	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan Event]struct{})
	}
	h.subs[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[sessionID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, sessionID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber of its session.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[ev.SessionID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
