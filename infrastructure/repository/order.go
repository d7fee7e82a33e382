package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/order-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-forecast-api/internal/domain"
)

const (
	ordersTable = "orders o"
)

type OrderRepository interface {
	// ListOrderRows returns every order joined with its product price and
	// its contact→customer linkage, ordered by order date ascending.
	// Rows keep a nil CustomerID when the contact has no customer.
	ListOrderRows() ([]*domain.OrderRow, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) ListOrderRows() ([]*domain.OrderRow, error) {
	query, args, err := squirrel.
		Select(
			"o.order_date",
			"o.quantity",
			"p.selling_price",
			"ct.customer_id",
		).
		From(ordersTable).
		LeftJoin("products p ON p.product_id = o.product_id").
		LeftJoin("contacts ct ON ct.contact_id = o.contact_id").
		OrderBy("o.order_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building order list query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.OrderRow, 0)
	for rows.Next() {
		order := &domain.OrderRow{}

		var (
			sellingPrice sql.NullFloat64
			customerID   sql.NullInt64
		)

		err := rows.Scan(
			&order.OrderDate,
			&order.Quantity,
			&sellingPrice,
			&customerID,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}

		if sellingPrice.Valid {
			order.SellingPrice = &sellingPrice.Float64
		}
		if customerID.Valid {
			order.CustomerID = &customerID.Int64
		}

		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}
