package domain

// MonthlyForecast projeta a receita do mês corrente a partir do run-rate e
// dos orçamentos quentes (pipeline)
type MonthlyForecast struct {
	Period       string  `json:"period"` // Período no formato mm-yyyy
	CurrentTotal float64 `json:"current_total"`
	PendingHot   float64 `json:"pending_hot"`
	RunRate      float64 `json:"run_rate"`
	Realistic    float64 `json:"realistic"`
	Optimistic   float64 `json:"optimistic"`
}
