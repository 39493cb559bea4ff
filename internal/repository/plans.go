package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

const planColumns = `id, name, code, price_cents, duration_days, max_entries, lifecycle`

func scanPlan(row pgx.Row) (*model.TicketPlan, error) {
	var p model.TicketPlan
	var lifecycle string
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &p.PriceCents, &p.DurationDays, &p.MaxEntries, &lifecycle); err != nil {
		return nil, err
	}
	p.Lifecycle = model.Lifecycle(lifecycle)
	return &p, nil
}

func getPlan(ctx context.Context, q querier, planID string, activeOnly bool) (*model.TicketPlan, error) {
	query := `SELECT ` + planColumns + ` FROM ticket_plans WHERE id = $1`
	if activeOnly {
		query += ` AND lifecycle = 'active'`
	}
	p, err := scanPlan(q.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

// PlanRepository handles persistence for the ticket plan catalog.
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository constructs a PlanRepository.
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

// List returns the active plans ordered by price.
func (r *PlanRepository) List(ctx context.Context) ([]model.TicketPlan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+planColumns+` FROM ticket_plans WHERE lifecycle = 'active' ORDER BY price_cents, code`,
	)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []model.TicketPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// Create adds a plan to the catalog. Codes are unique.
func (r *PlanRepository) Create(ctx context.Context, req model.CreatePlanRequest) (*model.TicketPlan, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate plan id: %w", err)
	}
	p := &model.TicketPlan{
		ID:           id.String(),
		Name:         req.Name,
		Code:         req.Code,
		PriceCents:   req.PriceCents,
		DurationDays: req.DurationDays,
		MaxEntries:   req.MaxEntries,
		Lifecycle:    model.LifecycleActive,
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO ticket_plans (id, name, code, price_cents, duration_days, max_entries, lifecycle)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Code, p.PriceCents, p.DurationDays, p.MaxEntries, string(p.Lifecycle),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: plan code %q already exists", ErrConflict, req.Code)
		}
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	return p, nil
}

// Deactivate retires a plan. Tickets already issued from it are unaffected.
func (r *PlanRepository) Deactivate(ctx context.Context, id string) (*model.TicketPlan, error) {
	p, err := scanPlan(r.db.QueryRow(ctx,
		`UPDATE ticket_plans SET lifecycle = 'deactivated' WHERE id = $1 RETURNING `+planColumns,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("deactivate plan: %w", err)
	}
	return p, nil
}
