package profiling

// riskRule é uma regra nomeada do score de risco financeiro. As regras são
// avaliadas em ordem e somam pontos quando o predicado vale; o total é
// limitado ao intervalo [0,100].
type riskRule struct {
	name    string
	points  int
	applies func(m *customerMetrics) bool
}

func (s *Service) riskRules() []riskRule {
	scoring := s.scoring

	return []riskRule{
		{
			name:   "divida-acima-do-limite-baixo",
			points: 20,
			applies: func(m *customerMetrics) bool {
				return m.debt > scoring.DebtLowThreshold
			},
		},
		{
			name:   "divida-acima-do-limite-alto",
			points: 20,
			applies: func(m *customerMetrics) bool {
				return m.debt > scoring.DebtHighThreshold
			},
		},
		{
			name:   "divida-sem-pagamento-ha-muito-tempo",
			points: 40,
			applies: func(m *customerMetrics) bool {
				return m.debt > 0 && m.daysSinceLastPayment > scoring.PaymentSilenceLong
			},
		},
		{
			name:   "divida-sem-pagamento-recente",
			points: 20,
			applies: func(m *customerMetrics) bool {
				return m.debt > 0 &&
					m.daysSinceLastPayment > scoring.PaymentSilenceMedium &&
					m.daysSinceLastPayment <= scoring.PaymentSilenceLong
			},
		},
	}
}

// financialRiskScore avalia as regras de risco em ordem e soma os pontos
func (s *Service) financialRiskScore(metrics *customerMetrics) int {
	score := 0
	for _, rule := range s.riskRules() {
		if rule.applies(metrics) {
			score += rule.points
		}
	}

	return clampScore(score)
}

// engagementStep é um degrau da função de engajamento por recência de contato
type engagementStep struct {
	maxDays int
	score   int
}

var engagementSteps = []engagementStep{
	{maxDays: 15, score: 90},
	{maxDays: 30, score: 70},
	{maxDays: 60, score: 40},
}

// engagementScore é uma função degrau dos dias desde o último contato
func (s *Service) engagementScore(metrics *customerMetrics) int {
	for _, step := range engagementSteps {
		if metrics.daysSinceLastContact < step.maxDays {
			return step.score
		}
	}

	return 15
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
