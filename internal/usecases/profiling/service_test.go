package profiling

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
			Rates:    map[string]float64{"USD": 5.0, "EUR": 6.0},
		},
		Scoring: config.Scoring{
			DebtLowThreshold:      1000,
			DebtHighThreshold:     10000,
			PaymentSilenceMedium:  30,
			PaymentSilenceLong:    60,
			CriticalRiskThreshold: 70,
			NoDateSentinelDays:    999,
			DefaultOrderFrequency: 30,
		},
		Actions: config.Actions{
			MaxActions:          10,
			StockCriticalLevel:  5,
			ReorderWindowLower:  1.1,
			ReorderWindowUpper:  1.5,
			RelationshipSilence: 60,
			MinOrderHistory:     3,
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestService_BuildProfiles_RiscoFinanceiro(t *testing.T) {
	now := date(2026, time.March, 15)

	tests := []struct {
		name          string
		snapshot      *domain.Snapshot
		expectedRisk  int
		expectedDebt  float64
	}{
		{
			name: "Cliente com dívida alta e silêncio longo - soma das quatro regras",
			snapshot: &domain.Snapshot{
				Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
				Orders: []*domain.Order{
					{ID: "O1", CustomerID: "C1", OrderDate: date(2025, time.November, 10), Status: domain.OrderStatusInvoiced, TotalAmount: 100000, Currency: "BRL"},
				},
			},
			// dívida > 1000 (+20), > 10000 (+20), sem pagamento há mais de 60 dias (+40)
			expectedRisk: 80,
			expectedDebt: 100000,
		},
		{
			name: "Cliente com dívida baixa e pagamento recente - risco zero",
			snapshot: &domain.Snapshot{
				Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
				Orders: []*domain.Order{
					{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.March, 1), Status: domain.OrderStatusInvoiced, TotalAmount: 500, Currency: "BRL"},
				},
				Payments: []*domain.Payment{
					{ID: "P1", CustomerID: "C1", Amount: 200, Currency: "BRL", Status: domain.PaymentStatusCollected, PaidDate: timePtr(date(2026, time.March, 10)), CreatedAt: date(2026, time.March, 1)},
				},
			},
			expectedRisk: 0,
			expectedDebt: 300,
		},
		{
			name: "Cliente com dívida média e silêncio entre 30 e 60 dias",
			snapshot: &domain.Snapshot{
				Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
				Orders: []*domain.Order{
					{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.January, 1), Status: domain.OrderStatusInvoiced, TotalAmount: 5000, Currency: "BRL"},
				},
				Payments: []*domain.Payment{
					{ID: "P1", CustomerID: "C1", Amount: 1000, Currency: "BRL", Status: domain.PaymentStatusCollected, PaidDate: timePtr(date(2026, time.February, 1)), CreatedAt: date(2026, time.January, 1)},
				},
			},
			// dívida 4000 > 1000 (+20), silêncio de 42 dias (+20)
			expectedRisk: 40,
			expectedDebt: 4000,
		},
		{
			name: "Pedidos cancelados e excluídos não geram dívida",
			snapshot: &domain.Snapshot{
				Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
				Orders: []*domain.Order{
					{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.January, 1), Status: domain.OrderStatusCancelled, TotalAmount: 50000, Currency: "BRL"},
					{ID: "O2", CustomerID: "C1", OrderDate: date(2026, time.January, 2), Status: domain.OrderStatusInvoiced, TotalAmount: 30000, Currency: "BRL", Deleted: true},
				},
			},
			// nenhum pedido qualificado: dívida zerada
			expectedRisk: 0,
			expectedDebt: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(testConfig())

			profiles := service.BuildProfiles(tt.snapshot, now)

			require.Len(t, profiles, 1)
			assert.Equal(t, tt.expectedRisk, profiles[0].FinancialRiskScore)
			assert.Equal(t, tt.expectedDebt, profiles[0].TotalDebt)
		})
	}
}

func TestService_BuildProfiles_Engajamento(t *testing.T) {
	now := date(2026, time.March, 15)

	tests := []struct {
		name          string
		meetingDate   time.Time
		expectedScore int
	}{
		{
			name:          "Contato há menos de 15 dias",
			meetingDate:   date(2026, time.March, 5),
			expectedScore: 90,
		},
		{
			name:          "Contato entre 15 e 30 dias",
			meetingDate:   date(2026, time.February, 20),
			expectedScore: 70,
		},
		{
			name:          "Contato entre 30 e 60 dias",
			meetingDate:   date(2026, time.February, 1),
			expectedScore: 40,
		},
		{
			name:          "Contato há mais de 60 dias",
			meetingDate:   date(2025, time.December, 1),
			expectedScore: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(testConfig())

			snapshot := &domain.Snapshot{
				Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
				Meetings: []*domain.Meeting{
					{ID: "M1", CustomerID: "C1", MeetingDate: tt.meetingDate, Status: domain.MeetingStatusDone},
				},
			}

			profiles := service.BuildProfiles(snapshot, now)

			require.Len(t, profiles, 1)
			assert.Equal(t, tt.expectedScore, profiles[0].EngagementScore)
		})
	}
}

func TestService_BuildProfiles_PrevisaoDeProximoPedido(t *testing.T) {
	now := date(2026, time.March, 15)
	service := NewService(testConfig())

	t.Run("Intervalo médio entre pedidos consecutivos", func(t *testing.T) {
		snapshot := &domain.Snapshot{
			Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
			Orders: []*domain.Order{
				// Fora de ordem de propósito: o serviço ordena por data
				{ID: "O2", CustomerID: "C1", OrderDate: date(2026, time.January, 31), Status: domain.OrderStatusDelivered, TotalAmount: 100, Currency: "BRL"},
				{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.January, 1), Status: domain.OrderStatusDelivered, TotalAmount: 100, Currency: "BRL"},
				{ID: "O3", CustomerID: "C1", OrderDate: date(2026, time.March, 2), Status: domain.OrderStatusDelivered, TotalAmount: 100, Currency: "BRL"},
			},
		}

		profiles := service.BuildProfiles(snapshot, now)

		require.Len(t, profiles, 1)
		// Intervalos de 30 dias: (30 + 30) / 2
		assert.Equal(t, 30.0, profiles[0].OrderFrequencyDays)
		require.NotNil(t, profiles[0].PredictedNextOrderDate)
		assert.Equal(t, date(2026, time.April, 1), *profiles[0].PredictedNextOrderDate)
	})

	t.Run("Pedido único usa frequência padrão", func(t *testing.T) {
		snapshot := &domain.Snapshot{
			Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
			Orders: []*domain.Order{
				{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.March, 1), Status: domain.OrderStatusDelivered, TotalAmount: 100, Currency: "BRL"},
			},
		}

		profiles := service.BuildProfiles(snapshot, now)

		require.Len(t, profiles, 1)
		assert.Equal(t, 30.0, profiles[0].OrderFrequencyDays)
		require.NotNil(t, profiles[0].PredictedNextOrderDate)
		assert.Equal(t, date(2026, time.March, 31), *profiles[0].PredictedNextOrderDate)
	})

	t.Run("Pedidos sem data ficam fora do janelamento", func(t *testing.T) {
		snapshot := &domain.Snapshot{
			Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
			Orders: []*domain.Order{
				{ID: "O1", CustomerID: "C1", Status: domain.OrderStatusInvoiced, TotalAmount: 100, Currency: "BRL"},
			},
		}

		profiles := service.BuildProfiles(snapshot, now)

		require.Len(t, profiles, 1)
		assert.Nil(t, profiles[0].LastOrderDate)
		assert.Nil(t, profiles[0].PredictedNextOrderDate)
		assert.Equal(t, 0.0, profiles[0].OrderFrequencyDays)
		// Sem data conhecida cai no sentinela de recência
		assert.Equal(t, 999, profiles[0].DaysSinceLastPayment)
	})
}

func TestService_BuildProfiles_ClientesExcluidos(t *testing.T) {
	now := date(2026, time.March, 15)
	service := NewService(testConfig())

	snapshot := &domain.Snapshot{
		Customers: []*domain.Customer{
			{ID: "C1", Name: "Ótica Central"},
			{ID: "C2", Name: "Ótica Excluída", Deleted: true},
			{ID: "C3", Name: "Ótica do Norte"},
		},
	}

	profiles := service.BuildProfiles(snapshot, now)

	require.Len(t, profiles, 2)
	// Ordem de inserção do snapshot preservada
	assert.Equal(t, "C1", profiles[0].CustomerID)
	assert.Equal(t, "C3", profiles[1].CustomerID)
}

func TestService_BuildProfiles_ConversaoDeMoeda(t *testing.T) {
	now := date(2026, time.March, 15)
	service := NewService(testConfig())

	snapshot := &domain.Snapshot{
		Customers: []*domain.Customer{{ID: "C1", Name: "Ótica Central"}},
		Orders: []*domain.Order{
			{ID: "O1", CustomerID: "C1", OrderDate: date(2026, time.March, 1), Status: domain.OrderStatusInvoiced, TotalAmount: 1000, Currency: "USD"},
		},
		Payments: []*domain.Payment{
			{ID: "P1", CustomerID: "C1", Amount: 500, Currency: "EUR", Status: domain.PaymentStatusCollected, PaidDate: timePtr(date(2026, time.March, 10)), CreatedAt: date(2026, time.March, 1)},
		},
	}

	profiles := service.BuildProfiles(snapshot, now)

	require.Len(t, profiles, 1)
	// 1000 USD * 5.0 - 500 EUR * 6.0 = 5000 - 3000
	assert.Equal(t, 2000.0, profiles[0].TotalDebt)
}
