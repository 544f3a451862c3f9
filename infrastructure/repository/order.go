package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-intelligence-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
)

const (
	ordersTable     = "orders o"
	orderItemsTable = "order_items oi"
)

type OrderRepository interface {
	ListOrders() ([]*domain.Order, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

// ListOrders retorna todos os pedidos com os itens de linha anexados.
// Datas nulas viram o zero de time.Time (data ausente).
func (r *orderRepository) ListOrders() ([]*domain.Order, error) {
	ordersSQL, ordersArgs, err := squirrel.
		Select("o.id, o.customer_id, o.order_date, o.status, o.total_amount, o.currency, o.deleted").
		From(ordersTable).
		OrderBy("o.order_date ASC NULLS FIRST, o.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ordersSQL, ordersArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	ordersByID := make(map[string]*domain.Order)

	for rows.Next() {
		order := &domain.Order{}
		var orderDate sql.NullTime

		if err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&orderDate,
			&order.Status,
			&order.TotalAmount,
			&order.Currency,
			&order.Deleted,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o pedido: %w", err)
		}

		order.OrderDate = orderDate.Time

		orders = append(orders, order)
		ordersByID[order.ID] = order
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	if err := r.attachItems(ordersByID); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) attachItems(ordersByID map[string]*domain.Order) error {
	if len(ordersByID) == 0 {
		return nil
	}

	itemsSQL, itemsArgs, err := squirrel.
		Select("oi.order_id, oi.product_id, oi.quantity, oi.unit_price").
		From(orderItemsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(itemsSQL, itemsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		item := &domain.OrderItem{}

		if err := rows.Scan(
			&orderID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
		); err != nil {
			return fmt.Errorf("erro ao deserializar o item do pedido: %w", err)
		}

		if order, ok := ordersByID[orderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return nil
}
