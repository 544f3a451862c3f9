package balancing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-intelligence-api/internal/config"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Reporting: config.Reporting{
			Currency: "BRL",
			Rates:    map[string]float64{"USD": 5.0},
		},
		Balance: config.Balance{
			SettledTolerance:   100,
			UpcomingWindowDays: 7,
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestService_CustomerBalances_StatusDoSaldo(t *testing.T) {
	now := date(2026, time.March, 15)

	tests := []struct {
		name            string
		orderTotal      float64
		paymentAmount   float64
		paymentStatus   domain.PaymentStatus
		expectedBalance float64
		expectedStatus  domain.BalanceStatus
	}{
		{
			name:            "Cliente devedor - saldo positivo acima da tolerância",
			orderTotal:      5000,
			paymentAmount:   1000,
			paymentStatus:   domain.PaymentStatusCollected,
			expectedBalance: 4000,
			expectedStatus:  domain.BalanceStatusReceivable,
		},
		{
			name:            "Cliente com crédito - pagamentos acima dos pedidos",
			orderTotal:      1000,
			paymentAmount:   1500,
			paymentStatus:   domain.PaymentStatusCollected,
			expectedBalance: -500,
			expectedStatus:  domain.BalanceStatusPayable,
		},
		{
			name:            "Saldo dentro da tolerância - quitado",
			orderTotal:      1000,
			paymentAmount:   950,
			paymentStatus:   domain.PaymentStatusCollected,
			expectedBalance: 50,
			expectedStatus:  domain.BalanceStatusSettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(testConfig())

			snapshot := &domain.Snapshot{
				Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
				Orders: []*domain.Order{
					{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.February, 1), Status: domain.OrderStatusInvoiced, TotalAmount: tt.orderTotal, Currency: "BRL"},
				},
				Payments: []*domain.Payment{
					{ID: "P1", CustomerID: "C1", Amount: tt.paymentAmount, Currency: "BRL", Status: tt.paymentStatus, PaidDate: timePtr(date(2026, time.February, 10)), CreatedAt: date(2026, time.February, 1)},
				},
			}

			balances := service.CustomerBalances(snapshot, now)

			require.Len(t, balances, 1)
			assert.Equal(t, tt.expectedBalance, balances[0].Balance)
			assert.Equal(t, tt.expectedStatus, balances[0].Status)
		})
	}
}

func TestService_CustomerBalances_ParticaoDeParcelas(t *testing.T) {
	now := date(2026, time.March, 15)
	service := NewService(testConfig())

	snapshot := &domain.Snapshot{
		Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
		Orders: []*domain.Order{
			{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.January, 1), Status: domain.OrderStatusInvoiced, TotalAmount: 10000, Currency: "BRL"},
		},
		Payments: []*domain.Payment{
			// Vencida há 10 dias
			{ID: "P1", CustomerID: "C1", Amount: 2000, Currency: "BRL", Status: domain.PaymentStatusOverdue, DueDate: date(2026, time.March, 5), CreatedAt: date(2026, time.January, 1)},
			// Vence em 3 dias
			{ID: "P2", CustomerID: "C1", Amount: 1500, Currency: "BRL", Status: domain.PaymentStatusPending, DueDate: date(2026, time.March, 18), CreatedAt: date(2026, time.January, 1)},
			// Vence hoje: ainda a vencer
			{ID: "P3", CustomerID: "C1", Amount: 500, Currency: "BRL", Status: domain.PaymentStatusPending, DueDate: date(2026, time.March, 15), CreatedAt: date(2026, time.January, 1)},
			// Vence em 30 dias: fora da janela
			{ID: "P4", CustomerID: "C1", Amount: 3000, Currency: "BRL", Status: domain.PaymentStatusPending, DueDate: date(2026, time.April, 14), CreatedAt: date(2026, time.January, 1)},
			// Já recebida: fora da partição
			{ID: "P5", CustomerID: "C1", Amount: 1000, Currency: "BRL", Status: domain.PaymentStatusCollected, PaidDate: timePtr(date(2026, time.February, 1)), CreatedAt: date(2026, time.January, 1)},
			// Cancelada: não conta em nada
			{ID: "P6", CustomerID: "C1", Amount: 9999, Currency: "BRL", Status: domain.PaymentStatusCancelled, DueDate: date(2026, time.March, 1), CreatedAt: date(2026, time.January, 1)},
		},
	}

	balances := service.CustomerBalances(snapshot, now)

	require.Len(t, balances, 1)
	balance := balances[0]

	require.Len(t, balance.OverduePayments, 1)
	assert.Equal(t, "P1", balance.OverduePayments[0].ID)
	assert.Equal(t, 2000.0, balance.OverdueSum)

	require.Len(t, balance.UpcomingPayments, 2)
	assert.Equal(t, "P2", balance.UpcomingPayments[0].ID)
	assert.Equal(t, "P3", balance.UpcomingPayments[1].ID)
	assert.Equal(t, 2000.0, balance.UpcomingSum)

	// Saldo considera todas as parcelas não canceladas: 10000 - 8000
	assert.Equal(t, 2000.0, balance.Balance)
}

func TestService_CustomerBalances_RiscoDeCobranca(t *testing.T) {
	now := date(2026, time.March, 15)
	service := NewService(testConfig())

	t.Run("Fatores ponderados com tetos individuais", func(t *testing.T) {
		snapshot := &domain.Snapshot{
			Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
			Orders: []*domain.Order{
				{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.January, 1), Status: domain.OrderStatusInvoiced, TotalAmount: 10000, Currency: "BRL"},
			},
			Payments: []*domain.Payment{
				// Duas parcelas vencidas, atrasos de 20 e 10 dias
				{ID: "P1", CustomerID: "C1", Amount: 2000, Currency: "BRL", Status: domain.PaymentStatusOverdue, DueDate: date(2026, time.February, 23), CreatedAt: date(2026, time.January, 1)},
				{ID: "P2", CustomerID: "C1", Amount: 3000, Currency: "BRL", Status: domain.PaymentStatusOverdue, DueDate: date(2026, time.March, 5), CreatedAt: date(2026, time.January, 1)},
			},
		}

		balances := service.CustomerBalances(snapshot, now)

		require.Len(t, balances, 1)
		risk := balances[0].Risk
		require.NotNil(t, risk)

		assert.Equal(t, 2, risk.Factors.OverdueCount)
		assert.Equal(t, 15.0, risk.Factors.AverageDelayDays)
		assert.Equal(t, 50.0, risk.Factors.OverdueRatio)
		assert.Equal(t, 50.0, risk.Factors.BalanceRatio)

		// 2*10=20 + atraso médio saturado em 30 + 50*0.25=12.5 + 50*0.15=7.5
		assert.Equal(t, 70, risk.RiskScore)
		assert.Equal(t, domain.RiskLevelHigh, risk.RiskLevel)
	})

	t.Run("Cliente quitado sem parcelas vencidas - risco baixo", func(t *testing.T) {
		snapshot := &domain.Snapshot{
			Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
			Orders: []*domain.Order{
				{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.January, 1), Status: domain.OrderStatusInvoiced, TotalAmount: 1000, Currency: "BRL"},
			},
			Payments: []*domain.Payment{
				{ID: "P1", CustomerID: "C1", Amount: 1000, Currency: "BRL", Status: domain.PaymentStatusCollected, PaidDate: timePtr(date(2026, time.January, 20)), CreatedAt: date(2026, time.January, 1)},
			},
		}

		balances := service.CustomerBalances(snapshot, now)

		require.Len(t, balances, 1)
		assert.Equal(t, domain.BalanceStatusSettled, balances[0].Status)
		assert.Equal(t, 0, balances[0].Risk.RiskScore)
		assert.Equal(t, domain.RiskLevelLow, balances[0].Risk.RiskLevel)
	})

	t.Run("Exposição de saldo só pesa para devedores", func(t *testing.T) {
		// Cliente com crédito e uma parcela vencida: balanceRatio aparece nos
		// fatores mas não soma no score
		snapshot := &domain.Snapshot{
			Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
			Orders: []*domain.Order{
				{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.January, 1), Status: domain.OrderStatusInvoiced, TotalAmount: 1000, Currency: "BRL"},
			},
			Payments: []*domain.Payment{
				{ID: "P1", CustomerID: "C1", Amount: 2000, Currency: "BRL", Status: domain.PaymentStatusCollected, PaidDate: timePtr(date(2026, time.January, 20)), CreatedAt: date(2026, time.January, 1)},
				{ID: "P2", CustomerID: "C1", Amount: 100, Currency: "BRL", Status: domain.PaymentStatusOverdue, DueDate: date(2026, time.March, 10), CreatedAt: date(2026, time.January, 1)},
			},
		}

		balances := service.CustomerBalances(snapshot, now)

		require.Len(t, balances, 1)
		assert.Equal(t, domain.BalanceStatusPayable, balances[0].Status)

		risk := balances[0].Risk
		assert.Equal(t, 110.0, risk.Factors.BalanceRatio)
		// 1*10 + 5*2 + 10*0.25 = 22.5, sem a parcela do saldo
		assert.Equal(t, 23, risk.RiskScore)
		assert.Equal(t, domain.RiskLevelLow, risk.RiskLevel)
	})
}

func TestService_Summary(t *testing.T) {
	now := date(2026, time.March, 15)
	service := NewService(testConfig())

	balances := []*domain.CustomerBalance{
		{
			CustomerID: "C1", Balance: 4000, Status: domain.BalanceStatusReceivable,
			OverduePayments: []*domain.Payment{{ID: "P1"}}, OverdueSum: 2000,
			UpcomingPayments: []*domain.Payment{{ID: "P2"}, {ID: "P3"}}, UpcomingSum: 1500,
			Risk: &domain.RiskAnalysis{RiskScore: 75, RiskLevel: domain.RiskLevelHigh},
		},
		{
			CustomerID: "C2", Balance: -500, Status: domain.BalanceStatusPayable,
			Risk: &domain.RiskAnalysis{RiskScore: 10, RiskLevel: domain.RiskLevelLow},
		},
		{
			CustomerID: "C3", Balance: 20, Status: domain.BalanceStatusSettled,
			Risk: &domain.RiskAnalysis{RiskScore: 45, RiskLevel: domain.RiskLevelMedium},
		},
	}

	summary := service.Summary(balances, now)

	assert.Equal(t, now, summary.ReferenceDate)
	assert.Equal(t, 4000.0, summary.TotalReceivable)
	assert.Equal(t, 500.0, summary.TotalPayable)
	assert.Equal(t, 3500.0, summary.NetBalance)
	assert.Equal(t, 1, summary.LowRiskCount)
	assert.Equal(t, 1, summary.MediumRiskCount)
	assert.Equal(t, 1, summary.HighRiskCount)
	assert.Equal(t, 2000.0, summary.OverdueSum)
	assert.Equal(t, 1, summary.OverdueCount)
	assert.Equal(t, 1500.0, summary.UpcomingSum)
	assert.Equal(t, 2, summary.UpcomingCount)
}
