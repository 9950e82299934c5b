package interview

import (
	"testing"
	"time"
)

func TestMemoryStorePutGetDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	store.Put(&Session{ID: "a", CreatedAt: time.Now()})

	got, ok := store.Get("a")
	if !ok || got.ID != "a" {
		t.Fatalf("Get: got %v ok=%v", got, ok)
	}

	store.Delete("a")
	if _, ok := store.Get("a"); ok {
		t.Fatal("deleted session still present")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	store.Put(&Session{ID: "old", CreatedAt: time.Now().Add(-2 * time.Minute)})
	store.Put(&Session{ID: "fresh", CreatedAt: time.Now()})

	if _, ok := store.Get("old"); ok {
		t.Fatal("expired session should read as absent")
	}
	if live := store.List(); len(live) != 1 || live[0].ID != "fresh" {
		t.Fatalf("List should only return live sessions: %v", live)
	}
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	store.Put(&Session{ID: "a", CreatedAt: time.Now().Add(-24 * time.Hour)})
	if _, ok := store.Get("a"); !ok {
		t.Fatal("ttl 0 should disable expiry")
	}
	if n := store.PruneExpired(); n != 0 {
		t.Fatalf("nothing should prune with ttl 0, got %d", n)
	}
}

func TestMemoryStorePruneExpired(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	store.Put(&Session{ID: "old1", CreatedAt: time.Now().Add(-time.Hour)})
	store.Put(&Session{ID: "old2", CreatedAt: time.Now().Add(-time.Hour)})
	store.Put(&Session{ID: "fresh", CreatedAt: time.Now()})

	if n := store.PruneExpired(); n != 2 {
		t.Fatalf("expected 2 pruned, got %d", n)
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Fatal("fresh session should survive the prune")
	}
}

func TestStatusAdvancesForwardOnly(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusCreated, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusFeedbackReady, true},
		{StatusCreated, StatusCompleted, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusFeedbackReady, StatusCompleted, false},
		{Status("bogus"), StatusInProgress, false},
	}
	for _, c := range cases {
		if got := c.from.CanAdvanceTo(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCloneIsIsolatedFromMutation(t *testing.T) {
	sess := &Session{
		ID:        "c",
		Questions: make([]Question, 3),
		Status:    StatusInProgress,
	}

	clone := sess.Clone()
	sess.Answers = append(sess.Answers, AnswerRecord{QuestionIndex: 0})
	sess.CurrentIndex = 1
	sess.Status = StatusCompleted

	if len(clone.Answers) != 0 || clone.CurrentIndex != 0 {
		t.Fatalf("clone saw later mutation: answers=%d index=%d", len(clone.Answers), clone.CurrentIndex)
	}
	if clone.Status != StatusInProgress {
		t.Fatalf("clone status mutated: %s", clone.Status)
	}
}

func TestProgressSnapshot(t *testing.T) {
	sess := &Session{
		ID:           "p",
		Questions:    make([]Question, 4),
		Answers:      make([]AnswerRecord, 1),
		CurrentIndex: 1,
	}

	p := sess.Progress()
	if p.TotalQuestions != 4 || p.CompletedResponses != 1 || p.RemainingQuestions != 3 {
		t.Fatalf("unexpected progress: %+v", p)
	}
	if p.ProgressPercentage != 25 {
		t.Fatalf("percentage: got %v want 25", p.ProgressPercentage)
	}
	if p.IsCompleted {
		t.Fatal("one of four answered should not be completed")
	}
}
