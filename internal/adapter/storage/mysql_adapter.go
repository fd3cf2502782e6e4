package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

//go:embed schema.sql
var schemaSQL string

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// Migrate applies the order schema. Statements are idempotent.
func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// CreateOrder writes the order row and its line items in one transaction so
// an order is never visible with a partial item list.
func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, created_at)
		VALUES (?, ?)`,
		order.ID, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert order: %v", domain.ErrStoreUnavailable, err)
	}

	for i, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, item_id, quantity)
			VALUES (?, ?, ?, ?)`,
			order.ID, i, item.ItemID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("%w: insert order item %d: %v", domain.ErrStoreUnavailable, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit order: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, created_at
		FROM orders WHERE id = ?`, orderID,
	).Scan(&order.ID, &order.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query order: %v", domain.ErrStoreUnavailable, err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT item_id, quantity
		FROM order_items WHERE order_id = ?
		ORDER BY position`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query order items: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	order.Items = []domain.LineItem{}
	for rows.Next() {
		var li domain.LineItem
		if err := rows.Scan(&li.ItemID, &li.Quantity); err != nil {
			return nil, fmt.Errorf("%w: scan order item: %v", domain.ErrStoreUnavailable, err)
		}
		order.Items = append(order.Items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate order items: %v", domain.ErrStoreUnavailable, err)
	}

	return &order, nil
}
