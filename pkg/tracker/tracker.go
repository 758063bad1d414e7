// Package tracker records learner session timing and problem activity for a
// rendered tutor. It is logging only: entries go to the structured logger on
// a flush ticker and once more when the session ends.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glenrsmithjr/teach/internal/logging"
)

const defaultFlushInterval = 10 * time.Second

// Problem is one attempted problem within a session.
type Problem struct {
	Name      string    `json:"name"`
	StartedAt time.Time `json:"startedAt"`
	Completed bool      `json:"completed"`
	Score     float64   `json:"score"`
	HintsUsed int       `json:"hintsUsed"`
}

// Tracker is one learner session. Preview mode disables all logging.
type Tracker struct {
	sessionUUID string
	userID      string
	preview     bool
	interval    time.Duration
	logger      *slog.Logger
	clock       func() time.Time

	mu       sync.Mutex
	start    time.Time
	end      time.Time
	problems []Problem

	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a tracker.
type Option func(*Tracker)

// WithLogger sets the destination logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithPreviewMode disables logging; the session still tracks state so the
// preview UI behaves normally.
func WithPreviewMode(preview bool) Option {
	return func(t *Tracker) { t.preview = preview }
}

// WithFlushInterval overrides the periodic flush cadence.
func WithFlushInterval(interval time.Duration) Option {
	return func(t *Tracker) {
		if interval > 0 {
			t.interval = interval
		}
	}
}

// WithClock injects a time source for tests.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// New starts a session for a user: a fresh session UUID, the start
// timestamp, and a background flush loop.
func New(userID string, opts ...Option) *Tracker {
	if userID == "" {
		userID = "anonymous"
	}
	t := &Tracker{
		sessionUUID: uuid.NewString(),
		userID:      userID,
		interval:    defaultFlushInterval,
		logger:      logging.NewNop(),
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.start = t.clock()

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.flushLoop(ctx)
	return t
}

// SessionUUID returns the session identifier.
func (t *Tracker) SessionUUID() string { return t.sessionUUID }

// StartProblem records the beginning of a problem attempt.
func (t *Tracker) StartProblem(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.end.IsZero() {
		return
	}
	t.problems = append(t.problems, Problem{Name: name, StartedAt: t.clock()})
}

// CompleteProblem marks the latest attempt of a problem finished.
func (t *Tracker) CompleteProblem(name string, score float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for idx := len(t.problems) - 1; idx >= 0; idx-- {
		if t.problems[idx].Name == name {
			t.problems[idx].Completed = true
			t.problems[idx].Score = score
			return
		}
	}
}

// RecordHint counts a hint used on the latest attempt of a problem.
func (t *Tracker) RecordHint(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for idx := len(t.problems) - 1; idx >= 0; idx-- {
		if t.problems[idx].Name == name {
			t.problems[idx].HintsUsed++
			return
		}
	}
}

// Elapsed returns how long the session has been running.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.end.IsZero() {
		return t.end.Sub(t.start)
	}
	return t.clock().Sub(t.start)
}

// EndSession stamps the end time, flushes a final log entry, and stops the
// flush loop. Safe to call once; later calls are no-ops.
func (t *Tracker) EndSession() {
	t.mu.Lock()
	if !t.end.IsZero() {
		t.mu.Unlock()
		return
	}
	t.end = t.clock()
	t.mu.Unlock()

	t.cancel()
	<-t.done
	t.flush("session ended")
}

func (t *Tracker) flushLoop(ctx context.Context) {
	defer close(t.done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.flush("session snapshot")
		}
	}
}

func (t *Tracker) flush(msg string) {
	if t.preview {
		return
	}
	t.mu.Lock()
	entry := []any{
		"sessionUUID", t.sessionUUID,
		"userId", t.userID,
		"sessionStartTime", t.start,
		"timestamp", t.clock(),
		"problems", len(t.problems),
	}
	if !t.end.IsZero() {
		entry = append(entry, "sessionEndTime", t.end)
	}
	t.mu.Unlock()
	t.logger.Info(msg, entry...)
}
