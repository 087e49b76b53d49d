package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nickthelegend/molfi-sub001/internal/types"
)

// PostgresOrderStore implements OrderStore using PostgreSQL
type PostgresOrderStore struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStore creates a new PostgreSQL-backed order store
func NewPostgresOrderStore(cfg PostgresConfig) (*PostgresOrderStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPostgresPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &PostgresOrderStore{pool: pool}, nil
}

func (s *PostgresOrderStore) Save(order *types.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO orders (order_id, trader_id, agent_id, pair, order_type, side, price, size, filled, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (order_id) DO UPDATE SET
			filled = EXCLUDED.filled,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query,
		order.ID, order.TraderID, order.AgentID, order.Pair,
		int(order.OrderType), int(order.Side),
		order.Price, order.Size, order.Filled, int(order.Status),
		order.TimeStamp, time.Now(),
	)

	return err
}

func (s *PostgresOrderStore) Get(orderID uint64) (*types.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := selectOrders + ` WHERE order_id = $1`

	row := s.pool.QueryRow(ctx, query, orderID)
	order, err := scanOrder(row)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("order %d not found", orderID)
	}
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *PostgresOrderStore) Remove(orderID uint64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `DELETE FROM orders WHERE order_id = $1`
	_, err := s.pool.Exec(ctx, query, orderID)
	return err
}

func (s *PostgresOrderStore) GetAll() []*types.Order {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := selectOrders + ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return []*types.Order{}
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (s *PostgresOrderStore) GetByAgent(agentID string) []*types.Order {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := selectOrders + ` WHERE agent_id = $1 ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, agentID)
	if err != nil {
		return []*types.Order{}
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (s *PostgresOrderStore) GetBySide(side types.SideType) []*types.Order {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := selectOrders + ` WHERE side = $1 ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, int(side))
	if err != nil {
		return []*types.Order{}
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (s *PostgresOrderStore) Close() error {
	s.pool.Close()
	return nil
}

const selectOrders = `
	SELECT order_id, trader_id, agent_id, pair, order_type, side, price, size, filled, status, created_at
	FROM orders
`

// scanOrder scans a single row into an order, converting the SMALLINT enum
// columns back to their typed values
func scanOrder(row pgx.Row) (*types.Order, error) {
	var order types.Order
	var orderType, side, status int

	err := row.Scan(
		&order.ID, &order.TraderID, &order.AgentID, &order.Pair,
		&orderType, &side,
		&order.Price, &order.Size, &order.Filled, &status,
		&order.TimeStamp,
	)
	if err != nil {
		return nil, err
	}

	order.OrderType = types.OrderType(orderType)
	order.Side = types.SideType(side)
	order.Status = types.StatusType(status)
	return &order, nil
}

// scanOrders is a helper to scan multiple order rows
func scanOrders(rows pgx.Rows) []*types.Order {
	var orders []*types.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			continue
		}
		orders = append(orders, order)
	}

	return orders
}
