// Package guard attempts construction of the emulator core exactly once and
// classifies the outcome.
//
// Construction runs inside a recover boundary. A core that crashes the
// process outright (for example a segmentation fault in native code) cannot
// be intercepted here; use an out-of-process constructor for that.
package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vertti/ndsdiag/pkg/core"
)

// Kind classifies an initialization attempt.
type Kind int

const (
	NotStarted Kind = iota
	Success
	FailedWithMessage
	FailedUnknown
)

func (k Kind) String() string {
	switch k {
	case NotStarted:
		return "not-started"
	case Success:
		return "success"
	case FailedWithMessage:
		return "failed"
	case FailedUnknown:
		return "failed-unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the terminal state of a guard.
type Outcome struct {
	Kind    Kind
	Message string // set for FailedWithMessage
}

// OK reports whether the core was constructed.
func (o Outcome) OK() bool {
	return o.Kind == Success
}

// ExitStatus maps the outcome to a process exit status.
func (o Outcome) ExitStatus() int {
	if o.OK() {
		return 0
	}
	return 1
}

// Guard wraps a core.Constructor. A Guard makes at most one attempt.
type Guard struct {
	Constructor core.Constructor
	Logger      *zap.Logger

	once    sync.Once
	outcome Outcome
}

// Outcome returns the recorded outcome, NotStarted before Attempt.
func (g *Guard) Outcome() Outcome {
	return g.outcome
}

// Attempt constructs the core on first call and returns the outcome. Later
// calls return the first outcome without constructing again.
func (g *Guard) Attempt(ctx context.Context, romPath string) Outcome {
	g.once.Do(func() {
		g.outcome = g.attempt(ctx, romPath)
	})
	return g.outcome
}

func (g *Guard) attempt(ctx context.Context, romPath string) (out Outcome) {
	log := g.Logger
	if log == nil {
		log = zap.NewNop()
	}

	defer func() {
		if r := recover(); r != nil {
			out = classifyPanic(r)
			log.Warn("core construction panicked", zap.Any("panic", r), zap.Stringer("outcome", out.Kind))
		}
	}()

	if g.Constructor == nil {
		return Outcome{Kind: FailedWithMessage, Message: "no core constructor configured"}
	}

	log.Debug("constructing core", zap.String("rom", romPath))
	c, err := g.Constructor.New(ctx, romPath)
	if err != nil {
		log.Debug("core construction failed", zap.Error(err))
		return classifyError(err)
	}
	if c == nil {
		return Outcome{Kind: FailedUnknown}
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to release core", zap.Error(err))
	}
	return Outcome{Kind: Success}
}

func classifyError(err error) Outcome {
	if errors.Is(err, core.ErrAbnormalTermination) {
		return Outcome{Kind: FailedUnknown}
	}
	if msg := err.Error(); msg != "" {
		return Outcome{Kind: FailedWithMessage, Message: msg}
	}
	return Outcome{Kind: FailedUnknown}
}

func classifyPanic(r any) Outcome {
	switch v := r.(type) {
	case error:
		return classifyError(v)
	case string:
		if v != "" {
			return Outcome{Kind: FailedWithMessage, Message: v}
		}
	}
	return Outcome{Kind: FailedUnknown}
}
