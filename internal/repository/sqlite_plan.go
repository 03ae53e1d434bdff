package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pluvio/internal/db"
	"pluvio/internal/domain"
)

// SQLitePlanRepo implements PlanRepo over a DBTX, so the same code serves
// both plain connections and transactions.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(dbtx db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: dbtx}
}

func (r *SQLitePlanRepo) SaveActive(ctx context.Context, plan *domain.WateringSchedule, assumed []domain.ForecastDay) error {
	scheduleJSON, err := json.Marshal(plan.Schedule)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	forecastJSON, err := json.Marshal(assumed)
	if err != nil {
		return fmt.Errorf("encoding assumed forecast: %w", err)
	}

	query := `INSERT INTO plans (id, reasoning, schedule_json, assumed_forecast_json, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			reasoning = excluded.reasoning,
			schedule_json = excluded.schedule_json,
			assumed_forecast_json = excluded.assumed_forecast_json,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		plan.Reasoning,
		string(scheduleJSON),
		string(forecastJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving active plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) LoadActive(ctx context.Context) (*ActivePlan, error) {
	query := `SELECT reasoning, schedule_json, assumed_forecast_json, updated_at FROM plans WHERE id = 1`
	row := r.db.QueryRowContext(ctx, query)

	var reasoning, scheduleJSON, forecastJSON, updatedAt string
	if err := row.Scan(&reasoning, &scheduleJSON, &forecastJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading active plan: %w", err)
	}

	out := &ActivePlan{Plan: &domain.WateringSchedule{Reasoning: reasoning}}
	if err := json.Unmarshal([]byte(scheduleJSON), &out.Plan.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}
	if err := json.Unmarshal([]byte(forecastJSON), &out.AssumedForecast); err != nil {
		return nil, fmt.Errorf("decoding assumed forecast: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		out.UpdatedAt = t
	}
	return out, nil
}

func (r *SQLitePlanRepo) SaveCandidates(ctx context.Context, c *Candidates) error {
	if err := r.ClearCandidates(ctx); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if err := r.insertCandidate(ctx, "direct", c.Direct, c.FollowUp, now); err != nil {
		return err
	}
	if c.Compensated != nil {
		if err := r.insertCandidate(ctx, "compensated", c.Compensated, c.FollowUp, now); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLitePlanRepo) insertCandidate(ctx context.Context, kind string, plan *domain.WateringSchedule, followUp, createdAt string) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding %s candidate: %w", kind, err)
	}
	query := `INSERT INTO plan_candidates (kind, plan_json, follow_up, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, kind, string(data), followUp, createdAt); err != nil {
		return fmt.Errorf("inserting %s candidate: %w", kind, err)
	}
	return nil
}

func (r *SQLitePlanRepo) LoadCandidates(ctx context.Context) (*Candidates, error) {
	query := `SELECT kind, plan_json, follow_up, created_at FROM plan_candidates`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}
	defer rows.Close()

	var out *Candidates
	for rows.Next() {
		var kind, planJSON, followUp, createdAt string
		if err := rows.Scan(&kind, &planJSON, &followUp, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		if out == nil {
			out = &Candidates{FollowUp: followUp}
			if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
				out.CreatedAt = t
			}
		}
		var plan domain.WateringSchedule
		if err := json.Unmarshal([]byte(planJSON), &plan); err != nil {
			return nil, fmt.Errorf("decoding %s candidate: %w", kind, err)
		}
		switch kind {
		case "direct":
			out.Direct = &plan
		case "compensated":
			out.Compensated = &plan
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}
	return out, nil
}

func (r *SQLitePlanRepo) ClearCandidates(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_candidates`); err != nil {
		return fmt.Errorf("clearing candidates: %w", err)
	}
	return nil
}
