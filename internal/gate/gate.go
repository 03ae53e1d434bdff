package gate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"pluvio/internal/actuation"
	"pluvio/internal/domain"
	"pluvio/internal/intent"
)

// State is a command's position in the confirmation lifecycle:
// Classified -> {Executing | AwaitingConfirmation} -> {Completed | Cancelled | Expired}.
type State string

const (
	StateClassified           State = "classified"
	StateExecuting            State = "executing"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateCompleted            State = "completed"
	StateCancelled            State = "cancelled"
	StateExpired              State = "expired"
)

// PendingAction exists only between "confirmation requested" and its terminal
// transition (confirm, cancel, or session eviction).
type PendingAction struct {
	MessageID string
	SessionID string
	Intent    intent.ParsedIntent
	CreatedAt time.Time
}

// Outcome is the gate's answer to a submitted or confirmed command.
type Outcome struct {
	State        State
	MessageID    string
	Confirmation string
	Intent       intent.ParsedIntent
	Result       actuation.Result
}

// Gate decides whether a classified command executes immediately or waits for
// explicit confirmation. It guarantees at most one actuation call per
// classified command instance.
type Gate struct {
	mu      sync.Mutex
	pending map[string]PendingAction
	ctrl    actuation.Controller
	source  domain.ActionSource
	now     func() time.Time
}

func New(ctrl actuation.Controller) *Gate {
	return &Gate{
		pending: make(map[string]PendingAction),
		ctrl:    ctrl,
		source:  domain.SourceAICommand,
		now:     time.Now,
	}
}

// SetClock overrides the gate's time source. Used by tests.
func (g *Gate) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
}

// Submit runs a freshly classified intent through the state machine. Intents
// with validation errors are rejected before any transition; confirmable
// intents park in AwaitingConfirmation without executing anything.
func (g *Gate) Submit(ctx context.Context, sessionID string, p intent.ParsedIntent) (Outcome, error) {
	if !p.Executable() {
		return Outcome{}, fmt.Errorf("%w: %v", domain.ErrValidation, p.ValidationErrors)
	}

	if p.RequiresConfirmation {
		id := uuid.New().String()
		g.mu.Lock()
		g.pending[id] = PendingAction{
			MessageID: id,
			SessionID: sessionID,
			Intent:    p,
			CreatedAt: g.now(),
		}
		g.mu.Unlock()
		return Outcome{
			State:        StateAwaitingConfirmation,
			MessageID:    id,
			Confirmation: intent.ConfirmationMessage(&p),
			Intent:       p,
		}, nil
	}

	result, err := g.execute(ctx, p)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{State: StateCompleted, Intent: p, Result: result}, nil
}

// Confirm executes the pending action for messageID. A second confirm for the
// same id finds no entry and returns a state error without re-executing: the
// entry is removed under the lock before actuation is invoked.
func (g *Gate) Confirm(ctx context.Context, messageID string) (Outcome, error) {
	g.mu.Lock()
	pa, ok := g.pending[messageID]
	if ok {
		delete(g.pending, messageID)
	}
	g.mu.Unlock()

	if !ok {
		return Outcome{}, fmt.Errorf("%w: message %s", domain.ErrState, messageID)
	}

	result, err := g.execute(ctx, pa.Intent)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{State: StateCompleted, MessageID: messageID, Intent: pa.Intent, Result: result}, nil
}

// Cancel discards the pending action without execution.
func (g *Gate) Cancel(messageID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.pending[messageID]; !ok {
		return fmt.Errorf("%w: message %s", domain.ErrState, messageID)
	}
	delete(g.pending, messageID)
	return nil
}

// EvictSession expires every pending action owned by sessionID. Wired to the
// conversation store's eviction sweep; an expired action never executes.
func (g *Gate) EvictSession(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, pa := range g.pending {
		if pa.SessionID == sessionID {
			delete(g.pending, id)
		}
	}
}

// Pending returns the stored action for messageID, if any.
func (g *Gate) Pending(messageID string) (PendingAction, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	pa, ok := g.pending[messageID]
	return pa, ok
}

// execute dispatches to the actuation layer. Called without the lock held so
// a slow controller cannot block unrelated commands.
func (g *Gate) execute(ctx context.Context, p intent.ParsedIntent) (actuation.Result, error) {
	switch p.Kind {
	case intent.KindStartZone:
		return g.ctrl.StartZone(ctx, p.Zone(), p.DurationSeconds(), g.source)
	case intent.KindStopZone:
		if p.IsStopAll() {
			return g.ctrl.StopAll(ctx, g.source)
		}
		return g.ctrl.StopZone(ctx, p.Zone(), g.source)
	case intent.KindSetRainDelay:
		hours, _ := p.Parameters[intent.ParamHours].(int)
		return g.ctrl.SetRainDelay(ctx, hours, g.source)
	case intent.KindClearRainDelay:
		return g.ctrl.ClearRainDelay(ctx, g.source)
	case intent.KindCreateSchedule:
		startTime, _ := p.Parameters[intent.ParamTime].(string)
		days, _ := p.Parameters[intent.ParamDays].([]int)
		return g.ctrl.CreateSchedule(ctx, p.Zone(), startTime, days, p.DurationSeconds(), g.source)
	default:
		return actuation.Result{}, fmt.Errorf("%w: intent %s is not actuatable", domain.ErrValidation, p.Kind)
	}
}
