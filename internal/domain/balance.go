package domain

import (
	"time"
)

// BalanceStatus classifica o saldo corrente do cliente
type BalanceStatus string

const (
	// BalanceStatusReceivable indica saldo devedor: o cliente deve à empresa
	BalanceStatusReceivable BalanceStatus = "receivable"
	// BalanceStatusPayable indica crédito do cliente junto à empresa
	BalanceStatusPayable BalanceStatus = "payable"
	BalanceStatusSettled BalanceStatus = "settled"
)

// RiskLevel classifica o score composto de risco de cobrança
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// RiskFactors detalha os fatores ponderados que compõem o score de risco
type RiskFactors struct {
	OverdueCount     int     `json:"overdue_count"`
	AverageDelayDays float64 `json:"average_delay_days"`
	OverdueRatio     float64 `json:"overdue_ratio"`
	BalanceRatio     float64 `json:"balance_ratio"`
}

// RiskAnalysis é o score composto de risco de cobrança de um cliente,
// sempre limitado ao intervalo [0,100]
type RiskAnalysis struct {
	RiskScore int         `json:"risk_score"`
	RiskLevel RiskLevel   `json:"risk_level"`
	Factors   RiskFactors `json:"factors"`
}

// CustomerBalance é a conta-corrente derivada de um cliente.
//
// Convenção de sinal: balance = pedidos − pagamentos. Saldo positivo significa
// que o cliente deve à empresa (receivable); negativo, crédito do cliente
// (payable). A mesma convenção vale para o status e para a análise de risco.
type CustomerBalance struct {
	CustomerID       string        `json:"customer_id"`
	CustomerName     string        `json:"customer_name"`
	TotalOrders      float64       `json:"total_orders"`
	TotalPayments    float64       `json:"total_payments"`
	Balance          float64       `json:"balance"`
	Status           BalanceStatus `json:"status"`
	OverduePayments  []*Payment    `json:"overdue_payments"`
	UpcomingPayments []*Payment    `json:"upcoming_payments"`
	OverdueSum       float64       `json:"overdue_sum"`
	UpcomingSum      float64       `json:"upcoming_sum"`
	Risk             *RiskAnalysis `json:"risk"`
}

// BalancesSummary consolida a posição de todos os clientes
type BalancesSummary struct {
	ReferenceDate   time.Time `json:"reference_date"`
	TotalReceivable float64   `json:"total_receivable"`
	TotalPayable    float64   `json:"total_payable"`
	NetBalance      float64   `json:"net_balance"`
	LowRiskCount    int       `json:"low_risk_count"`
	MediumRiskCount int       `json:"medium_risk_count"`
	HighRiskCount   int       `json:"high_risk_count"`
	OverdueSum      float64   `json:"overdue_sum"`
	OverdueCount    int       `json:"overdue_count"`
	UpcomingSum     float64   `json:"upcoming_sum"`
	UpcomingCount   int       `json:"upcoming_count"`
}
