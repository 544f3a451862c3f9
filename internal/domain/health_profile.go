package domain

import (
	"time"
)

// CustomerHealthProfile agrega a saúde financeira e de relacionamento de um
// cliente. É derivado a cada chamada do motor e nunca persistido.
type CustomerHealthProfile struct {
	CustomerID             string     `json:"customer_id"`
	CustomerName           string     `json:"customer_name"`
	TotalDebt              float64    `json:"total_debt"`
	FinancialRiskScore     int        `json:"financial_risk_score"`
	EngagementScore        int        `json:"engagement_score"`
	LastOrderDate          *time.Time `json:"last_order_date,omitempty"`
	OrderFrequencyDays     float64    `json:"order_frequency_days"`
	PredictedNextOrderDate *time.Time `json:"predicted_next_order_date,omitempty"`
	DaysSinceLastPayment   int        `json:"days_since_last_payment"`
	DaysSinceLastContact   int        `json:"days_since_last_contact"`
}
