package domain

import (
	"time"
)

// PaymentStatus representa o status de um pagamento
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCollected PaymentStatus = "collected"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment representa um pagamento (parcela) vinculado a um cliente e,
// opcionalmente, a um pedido
type Payment struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	OrderID    *string       `json:"order_id,omitempty"`
	Amount     float64       `json:"amount"`
	Currency   string        `json:"currency"`
	DueDate    time.Time     `json:"due_date"`
	PaidDate   *time.Time    `json:"paid_date,omitempty"`
	Status     PaymentStatus `json:"status"`
	Deleted    bool          `json:"deleted"`
	CreatedAt  time.Time     `json:"created_at"`
}

// EffectiveDate retorna a data de pagamento quando existir, com fallback
// para a data de criação do registro
func (p *Payment) EffectiveDate() time.Time {
	if p.PaidDate != nil && !p.PaidDate.IsZero() {
		return *p.PaidDate
	}
	return p.CreatedAt
}
