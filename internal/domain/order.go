package domain

import (
	"time"
)

// OrderStatus representa o status de um pedido
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusInvoiced  OrderStatus = "invoiced"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem representa um item de linha de um pedido
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order representa um pedido de venda do cliente
type Order struct {
	ID          string       `json:"id"`
	CustomerID  string       `json:"customer_id"`
	OrderDate   time.Time    `json:"order_date"`
	Status      OrderStatus  `json:"status"`
	TotalAmount float64      `json:"total_amount"`
	Currency    string       `json:"currency"`
	Items       []*OrderItem `json:"items,omitempty"`
	Deleted     bool         `json:"deleted"`
}

// QuoteStatus representa o status de um orçamento
type QuoteStatus string

const (
	QuoteStatusPrepared QuoteStatus = "prepared"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// Quote representa um orçamento emitido para o cliente
type Quote struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customer_id"`
	QuoteDate   time.Time   `json:"quote_date"`
	Status      QuoteStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	Currency    string      `json:"currency"`
	Deleted     bool        `json:"deleted"`
}
