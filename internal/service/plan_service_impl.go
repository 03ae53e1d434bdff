package service

import (
	"context"
	"fmt"
	"sync"

	"pluvio/internal/actuation"
	"pluvio/internal/contract"
	"pluvio/internal/db"
	"pluvio/internal/domain"
	"pluvio/internal/repository"
	"pluvio/internal/schedule"
	"pluvio/internal/synthesis"
	"pluvio/internal/weather"
)

// planService is the single logical owner of the plan. The mutex is the
// per-plan critical section; concurrent synthesis and user-command paths
// contend for it, so no caller ever observes an interleaved partial state.
type planService struct {
	mu sync.Mutex

	repo       repository.PlanRepo
	uow        db.UnitOfWork
	orch       *synthesis.Orchestrator
	provider   weather.Provider
	ctrl       actuation.Controller
	postalCode string
}

func NewPlanService(repo repository.PlanRepo, uow db.UnitOfWork, orch *synthesis.Orchestrator, provider weather.Provider, ctrl actuation.Controller, postalCode string) *planService {
	return &planService{
		repo:       repo,
		uow:        uow,
		orch:       orch,
		provider:   provider,
		ctrl:       ctrl,
		postalCode: postalCode,
	}
}

func (s *planService) Current(ctx context.Context) (*contract.PlanView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.repo.LoadActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return &contract.PlanView{System: domain.SystemEnabled}, nil
	}

	system := domain.SystemEnabled
	if snap, err := s.ctrl.Status(ctx); err == nil && snap.System != "" {
		system = snap.System
	}

	view := &contract.PlanView{
		Plan:       active.Plan,
		DailyUsage: make(map[string]float64, len(active.Plan.Schedule)),
		System:     system,
	}
	for i := range active.Plan.Schedule {
		day := &active.Plan.Schedule[i]
		usage := schedule.DailyUsage(day, system)
		view.DailyUsage[day.Day] = usage
		view.TotalUsage += usage
	}

	if cands, err := s.repo.LoadCandidates(ctx); err == nil && cands != nil {
		view.HasPending = true
		view.FollowUp = cands.FollowUp
	}
	return view, nil
}

func (s *planService) Regenerate(ctx context.Context, transcript string) (*domain.WateringSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.repo.LoadActive(ctx)
	if err != nil {
		return nil, err
	}
	var prior *domain.WateringSchedule
	if active != nil {
		prior = active.Plan
	}

	forecast, err := s.provider.Forecast(ctx, s.postalCode)
	if err != nil {
		return nil, err
	}

	plan, err := s.orch.Synthesize(ctx, prior, forecast, transcript, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveActive(ctx, plan, forecast.Daily); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) ApplyChange(ctx context.Context, reply *synthesis.ChangeReply, user string) error {
	if reply.ResponseType != synthesis.ResponseModification || reply.DirectChange == nil {
		return fmt.Errorf("%w: reply carries no plan modification", domain.ErrSchema)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.repo.LoadActive(ctx)
	if err != nil {
		return err
	}

	now := s.orch.LocalNow()
	next := reply.DirectChange.Clone()
	var assumed []domain.ForecastDay
	if active != nil {
		schedule.StampAdjustments(active.Plan, next, user, now)
		assumed = active.AssumedForecast
	}

	// Promote the direct change and store any compensated alternative in a
	// single transaction so a crash never leaves a half-applied choice.
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanRepo(tx)
		if err := repo.SaveActive(ctx, next, assumed); err != nil {
			return err
		}
		if reply.Compensated == nil {
			return repo.ClearCandidates(ctx)
		}
		comp := reply.Compensated.Clone()
		if active != nil {
			schedule.StampAdjustments(active.Plan, comp, user, now)
		}
		return repo.SaveCandidates(ctx, &repository.Candidates{
			Compensated: comp,
			Direct:      next,
			FollowUp:    reply.FollowUpQuestion,
		})
	})
}

func (s *planService) AcceptCompensation(ctx context.Context, user string) (*domain.WateringSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cands, err := s.repo.LoadCandidates(ctx)
	if err != nil {
		return nil, err
	}
	if cands == nil {
		return nil, fmt.Errorf("%w: no compensation on offer", domain.ErrState)
	}
	chosen := cands.Compensated
	if chosen == nil {
		// A proactive proposal stores only a direct candidate.
		chosen = cands.Direct
	}

	// The candidate was built at proposal time; re-check it against the
	// clock at acceptance so a late confirmation cannot install a plan
	// whose window has already passed.
	now := s.orch.LocalNow()
	chosen = chosen.Clone()
	if err := schedule.ValidateStructure(chosen, now); err != nil {
		return nil, fmt.Errorf("%w: pending plan no longer starts today", domain.ErrTiming)
	}
	schedule.PruneElapsed(chosen, now)

	active, err := s.repo.LoadActive(ctx)
	if err != nil {
		return nil, err
	}
	var assumed []domain.ForecastDay
	if active != nil {
		assumed = active.AssumedForecast
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanRepo(tx)
		if err := repo.SaveActive(ctx, chosen, assumed); err != nil {
			return err
		}
		return repo.ClearCandidates(ctx)
	})
	if err != nil {
		return nil, err
	}
	return chosen, nil
}

func (s *planService) DeclineCompensation(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ClearCandidates(ctx)
}

func (s *planService) CancelEvent(ctx context.Context, day string, eventIndex int, canceled bool, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.repo.LoadActive(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return fmt.Errorf("%w: no active plan", domain.ErrState)
	}

	daily := active.Plan.FindDay(day)
	if daily == nil {
		return fmt.Errorf("%w: no schedule for %s", domain.ErrState, day)
	}
	if eventIndex < 0 || eventIndex >= len(daily.Events) {
		return fmt.Errorf("%w: event %d out of range for %s", domain.ErrState, eventIndex, day)
	}

	event := &daily.Events[eventIndex]
	if schedule.Elapsed(day, event.StartTime, s.orch.LocalNow()) {
		return fmt.Errorf("%w: zone %d at %s on %s", domain.ErrTiming, event.ZoneID, event.StartTime, day)
	}

	// Toggling never deletes; the event stays for the audit timeline.
	event.IsCanceled = canceled
	return s.repo.SaveActive(ctx, active.Plan, active.AssumedForecast)
}

// Evaluate implements ProactiveService. A proposal is stored as a pending
// candidate, never silently applied; below threshold nothing is proposed.
func (s *planService) Evaluate(ctx context.Context) (*AdjustmentProposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.repo.LoadActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return &AdjustmentProposal{}, nil
	}

	forecast, err := s.provider.Forecast(ctx, s.postalCode)
	if err != nil {
		return nil, err
	}

	assessment := s.orch.EvaluateShift(active.AssumedForecast, forecast.Daily)
	if !assessment.Significant {
		return &AdjustmentProposal{Assessment: assessment}, nil
	}

	var reasons []string
	for _, r := range assessment.Reasons {
		reasons = append(reasons, r.Message)
	}
	proposed, err := s.orch.Synthesize(ctx, active.Plan, forecast, "", reasons)
	if err != nil {
		return nil, err
	}

	// Candidate replacement is a clear-then-insert pair; run it as one
	// transaction so a failure never drops the previous pending proposal.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanRepo(tx)
		return repo.SaveCandidates(ctx, &repository.Candidates{
			Direct:   proposed,
			FollowUp: "The forecast changed since this plan was made. Apply the adjusted plan?",
		})
	})
	if err != nil {
		return nil, err
	}
	return &AdjustmentProposal{Assessment: assessment, Proposed: proposed}, nil
}

var (
	_ PlanService      = (*planService)(nil)
	_ ProactiveService = (*planService)(nil)
)
