package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pluvio/internal/actuation"
	"pluvio/internal/contract"
	"pluvio/internal/conversation"
	"pluvio/internal/domain"
	"pluvio/internal/gate"
	"pluvio/internal/intent"
	"pluvio/internal/repository"
	"pluvio/internal/synthesis"
	"pluvio/internal/weather"
)

type chatService struct {
	store      *conversation.Store
	classifier *intent.Classifier
	gate       *gate.Gate
	plans      PlanService
	orch       *synthesis.Orchestrator
	provider   weather.Provider
	ctrl       actuation.Controller
	actionLog  repository.ActionLogRepo
	postalCode string
}

func NewChatService(
	store *conversation.Store,
	classifier *intent.Classifier,
	g *gate.Gate,
	plans PlanService,
	orch *synthesis.Orchestrator,
	provider weather.Provider,
	ctrl actuation.Controller,
	actionLog repository.ActionLogRepo,
	postalCode string,
) ChatService {
	return &chatService{
		store:      store,
		classifier: classifier,
		gate:       g,
		plans:      plans,
		orch:       orch,
		provider:   provider,
		ctrl:       ctrl,
		actionLog:  actionLog,
		postalCode: postalCode,
	}
}

func (s *chatService) HandleMessage(ctx context.Context, sessionID, text string) (*contract.ChatResponse, error) {
	parsed := s.classifier.Parse(text)
	s.store.AddTurn(domain.RoleUser, text, string(parsed.Kind), sessionID)

	var (
		resp *contract.ChatResponse
		err  error
	)
	switch {
	case parsed.Kind == intent.KindUnknown:
		resp, err = s.handleFreeform(ctx, sessionID, text)
	case len(parsed.ValidationErrors) > 0:
		resp = &contract.ChatResponse{
			ResponseType: contract.ResponseAnswer,
			Answer:       "I can't run that: " + strings.Join(parsed.ValidationErrors, "; "),
			Intent:       parsed.Kind,
			Parameters:   parsed.Parameters,
		}
	case parsed.Kind == intent.KindGetStatus:
		resp, err = s.handleStatus(ctx, parsed)
	default:
		resp, err = s.handleCommand(ctx, sessionID, parsed)
	}
	if err != nil {
		// Record an assistant turn even on failure so the transcript stays
		// paired user/assistant and context windows never split an exchange.
		s.store.AddTurn(domain.RoleAssistant, "Sorry, I couldn't complete that request.", "", sessionID)
		return nil, err
	}

	s.store.AddTurn(domain.RoleAssistant, assistantText(resp), "", sessionID)
	return resp, nil
}

// handleCommand routes a valid actuation command through the confirmation
// gate.
func (s *chatService) handleCommand(ctx context.Context, sessionID string, parsed intent.ParsedIntent) (*contract.ChatResponse, error) {
	outcome, err := s.gate.Submit(ctx, sessionID, parsed)
	if err != nil {
		return nil, err
	}

	if outcome.State == gate.StateAwaitingConfirmation {
		return &contract.ChatResponse{
			ResponseType:         contract.ResponseModification,
			ConfirmationMessage:  outcome.Confirmation,
			MessageID:            outcome.MessageID,
			RequiresConfirmation: true,
			Intent:               parsed.Kind,
			Parameters:           parsed.Parameters,
		}, nil
	}

	s.logAction(ctx, outcome)
	return &contract.ChatResponse{
		ResponseType: contract.ResponseModification,
		Answer:       commandAnswer(outcome),
		Intent:       parsed.Kind,
		Parameters:   parsed.Parameters,
	}, nil
}

// handleFreeform sends unclassified text to the generation backend, which
// answers it or returns a direct-change plan, optionally with a compensated
// alternative.
func (s *chatService) handleFreeform(ctx context.Context, sessionID, text string) (*contract.ChatResponse, error) {
	view, err := s.plans.Current(ctx)
	if err != nil {
		return nil, err
	}

	// A question about the yard should not die because the forecast fetch
	// failed; generation copes with missing weather.
	var forecast *domain.Forecast
	if f, err := s.provider.Forecast(ctx, s.postalCode); err == nil {
		forecast = f
	}

	reply, err := s.orch.DirectChange(ctx, text, view.Plan, forecast, s.store.FormatForContext(sessionID))
	if err != nil {
		return nil, err
	}

	if reply.ResponseType == synthesis.ResponseAnswer {
		return &contract.ChatResponse{
			ResponseType: contract.ResponseAnswer,
			Answer:       reply.Answer,
			Intent:       intent.KindUnknown,
		}, nil
	}

	if err := s.plans.ApplyChange(ctx, reply, "user"); err != nil {
		return nil, err
	}
	return &contract.ChatResponse{
		ResponseType:         contract.ResponseModification,
		Answer:               reply.Answer,
		FollowUpQuestion:     reply.FollowUpQuestion,
		DirectChangeSchedule: reply.DirectChange,
		CompensatedSchedule:  reply.Compensated,
		Intent:               intent.KindUnknown,
	}, nil
}

func (s *chatService) handleStatus(ctx context.Context, parsed intent.ParsedIntent) (*contract.ChatResponse, error) {
	snap, err := s.ctrl.Status(ctx)
	if err != nil {
		return nil, err
	}
	return &contract.ChatResponse{
		ResponseType: contract.ResponseAnswer,
		Answer:       formatStatus(snap),
		Intent:       parsed.Kind,
	}, nil
}

func (s *chatService) ConfirmPending(ctx context.Context, sessionID, messageID string) (*contract.ChatResponse, error) {
	outcome, err := s.gate.Confirm(ctx, messageID)
	if err != nil {
		if errors.Is(err, domain.ErrState) {
			return &contract.ChatResponse{
				ResponseType: contract.ResponseAnswer,
				Answer:       "There's no pending action to confirm; it may have expired.",
			}, nil
		}
		return nil, err
	}

	s.logAction(ctx, outcome)
	resp := &contract.ChatResponse{
		ResponseType: contract.ResponseModification,
		Answer:       commandAnswer(outcome),
		Intent:       outcome.Intent.Kind,
		Parameters:   outcome.Intent.Parameters,
	}
	s.store.AddTurn(domain.RoleAssistant, resp.Answer, "", sessionID)
	return resp, nil
}

func (s *chatService) CancelPending(ctx context.Context, sessionID, messageID string) (*contract.ChatResponse, error) {
	if err := s.gate.Cancel(messageID); err != nil {
		if errors.Is(err, domain.ErrState) {
			return &contract.ChatResponse{
				ResponseType: contract.ResponseAnswer,
				Answer:       "There's no pending action to cancel.",
			}, nil
		}
		return nil, err
	}
	resp := &contract.ChatResponse{
		ResponseType: contract.ResponseAnswer,
		Answer:       "Okay, I won't do that.",
	}
	s.store.AddTurn(domain.RoleAssistant, resp.Answer, "", sessionID)
	return resp, nil
}

// logAction records a completed actuation with its source tag. Logging is
// best-effort; a failed insert never fails the command.
func (s *chatService) logAction(ctx context.Context, outcome gate.Outcome) {
	if s.actionLog == nil || outcome.State != gate.StateCompleted {
		return
	}
	_ = s.actionLog.Append(ctx, &repository.ActionEntry{
		ID:        uuid.New().String(),
		Action:    describeIntent(outcome.Intent),
		Source:    domain.SourceAICommand,
		OK:        outcome.Result.OK,
		Message:   outcome.Result.Message,
		CreatedAt: time.Now().UTC(),
	})
}

func describeIntent(p intent.ParsedIntent) string {
	var b strings.Builder
	b.WriteString(string(p.Kind))
	for _, key := range []string{intent.ParamZone, intent.ParamTarget, intent.ParamDuration, intent.ParamHours, intent.ParamTime, intent.ParamDays} {
		if v, ok := p.Parameters[key]; ok {
			fmt.Fprintf(&b, " %s=%v", key, v)
		}
	}
	return b.String()
}
