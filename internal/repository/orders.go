package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

const defaultCurrency = "EUR"

// OrderRepository handles ticket purchases and their payment confirmations.
type OrderRepository struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewOrderRepository constructs an OrderRepository.
func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create opens a pending order that snapshots the plan price.
func (r *OrderRepository) Create(ctx context.Context, userID string, req model.CreateOrderRequest) (*model.Order, error) {
	plan, err := getPlan(ctx, r.db, req.PlanID, true)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}
	o := &model.Order{
		ID:         id.String(),
		UserID:     userID,
		PlanID:     plan.ID,
		CenterID:   req.CenterID,
		PriceCents: plan.PriceCents,
		Currency:   defaultCurrency,
		Status:     model.OrderPending,
		CreatedAt:  r.now(),
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO orders (id, user_id, plan_id, center_id, price_cents, currency, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.UserID, o.PlanID, o.CenterID, o.PriceCents, o.Currency, string(o.Status), o.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: center %s", ErrNotFound, o.CenterID)
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

// ConfirmPayment records a provider confirmation and grants the ordered plan.
// The payment row is unique per order and per provider reference, so a
// replayed confirmation inserts nothing and returns ErrPaymentProcessed
// without crediting entries a second time.
func (r *OrderRepository) ConfirmPayment(ctx context.Context, c model.PaymentConfirmation) (*model.Grant, error) {
	var grant *model.Grant
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		now := r.now()

		var o model.Order
		var status string
		err := tx.QueryRow(ctx,
			`SELECT id, user_id, plan_id, center_id, price_cents, currency, status, created_at
			 FROM orders WHERE id = $1 FOR UPDATE`,
			c.OrderID,
		).Scan(&o.ID, &o.UserID, &o.PlanID, &o.CenterID, &o.PriceCents, &o.Currency, &status, &o.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock order: %w", err)
		}
		o.Status = model.OrderStatus(status)

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate payment id: %w", err)
		}
		p := model.Payment{
			ID:                id.String(),
			OrderID:           o.ID,
			Provider:          c.Provider,
			ProviderReference: c.ProviderReference,
			CreatedAt:         now,
		}
		tag, err := tx.Exec(ctx,
			`INSERT INTO payments (id, order_id, provider, provider_reference, created_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT DO NOTHING`,
			p.ID, p.OrderID, p.Provider, p.ProviderReference, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		if tag.RowsAffected() == 0 || o.Status == model.OrderPaid {
			return ErrPaymentProcessed
		}

		if _, err := tx.Exec(ctx, `UPDATE orders SET status = 'paid' WHERE id = $1`, o.ID); err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		o.Status = model.OrderPaid

		// The plan may have been retired after checkout; the customer paid for it.
		plan, err := getPlan(ctx, tx, o.PlanID, false)
		if err != nil {
			return err
		}
		ticket, accumulated, err := grantPlan(ctx, tx, o.UserID, o.CenterID, plan, now)
		if err != nil {
			return err
		}
		grant = &model.Grant{Order: o, Ticket: *ticket, Accumulated: accumulated}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grant, nil
}
