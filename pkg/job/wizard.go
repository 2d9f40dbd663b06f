package job

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formwizard/pkg/session"
)

// Task names used by the wizard.
const (
	CompletionTaskName     = "wizard:completed"
	SessionCleanupTaskName = "wizard:cleanup_sessions"
)

// DefaultCleanupSchedule runs the session cleanup every fifteen minutes.
const DefaultCleanupSchedule = "*/15 * * * *"

// Completion describes a step that emitted its complete signal.
type Completion struct {
	Wizard      string         `json:"wizard"`
	Step        string         `json:"step"`
	SessionID   string         `json:"session_id"`
	Values      map[string]any `json:"values,omitempty"`
	CompletedAt time.Time      `json:"completed_at"`
}

// Enqueuing is satisfied by *Enqueuer and *Manager.
type Enqueuing interface {
	Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) error
}

// EnqueueCompletion enqueues the completion task. A step completed twice in
// the same session within a minute is enqueued once.
func EnqueueCompletion(ctx context.Context, q Enqueuing, c Completion, opts ...EnqueueOption) error {
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}
	return q.Enqueue(ctx, CompletionTaskName, c, append(CompletionOptions(c), opts...)...)
}

// CompletionOptions are the enqueue options EnqueueCompletion uses for c.
func CompletionOptions(c Completion) []EnqueueOption {
	return []EnqueueOption{
		UniqueFor(time.Minute),
		UniqueKey(c.SessionID + ":" + c.Wizard + ":" + c.Step),
		Tags("wizard", c.Wizard),
	}
}

// CompletionTask hands completions to an application callback.
type CompletionTask struct {
	handle func(context.Context, Completion) error
}

// NewCompletionTask wraps fn. A returned error makes River retry the job.
func NewCompletionTask(fn func(context.Context, Completion) error) *CompletionTask {
	return &CompletionTask{handle: fn}
}

func (t *CompletionTask) Name() string { return CompletionTaskName }

func (t *CompletionTask) Handle(ctx context.Context, c Completion) error {
	if t.handle == nil {
		return nil
	}
	return t.handle(ctx, c)
}

// SessionCleanup removes expired sessions on a schedule.
type SessionCleanup struct {
	cleaner  session.Cleaner
	schedule string
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionCleanup creates the cleanup task. An empty schedule means
// DefaultCleanupSchedule.
func NewSessionCleanup(cleaner session.Cleaner, schedule string, logger *slog.Logger) *SessionCleanup {
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SessionCleanup{
		cleaner:  cleaner,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

func (t *SessionCleanup) Name() string     { return SessionCleanupTaskName }
func (t *SessionCleanup) Schedule() string { return t.schedule }

func (t *SessionCleanup) Handle(ctx context.Context) error {
	if t.cleaner == nil {
		return errors.New("job: session cleanup has no store")
	}
	n, err := t.cleaner.DeleteExpired(ctx, t.now())
	if err != nil {
		return err
	}
	if n > 0 {
		t.logger.InfoContext(ctx, "expired sessions removed", slog.Int64("count", n))
	}
	return nil
}
