package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-intelligence-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
)

const paymentsTable = "payments p"

type PaymentRepository interface {
	ListPayments() ([]*domain.Payment, error)
}

type paymentRepository struct {
	conn *postgres.Connection
}

func NewPaymentRepository(conn *postgres.Connection) PaymentRepository {
	return &paymentRepository{
		conn: conn,
	}
}

func (r *paymentRepository) ListPayments() ([]*domain.Payment, error) {
	paymentsSQL, paymentsArgs, err := squirrel.
		Select("p.id, p.customer_id, p.order_id, p.amount, p.currency, p.due_date, p.paid_date, p.status, p.deleted, p.created_at").
		From(paymentsTable).
		OrderBy("p.created_at ASC, p.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(paymentsSQL, paymentsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		payment := &domain.Payment{}
		var dueDate, paidDate sql.NullTime

		if err := rows.Scan(
			&payment.ID,
			&payment.CustomerID,
			&payment.OrderID,
			&payment.Amount,
			&payment.Currency,
			&dueDate,
			&paidDate,
			&payment.Status,
			&payment.Deleted,
			&payment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o pagamento: %w", err)
		}

		payment.DueDate = dueDate.Time
		if paidDate.Valid {
			paid := paidDate.Time
			payment.PaidDate = &paid
		}

		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return payments, nil
}
