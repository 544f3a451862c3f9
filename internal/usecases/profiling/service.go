package profiling

import (
	"sort"
	"time"

	"github.com/vfg2006/crm-intelligence-api/internal/config"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
	"github.com/vfg2006/crm-intelligence-api/pkg/currency"
	"github.com/vfg2006/crm-intelligence-api/pkg/utils"
)

// Service implementa as interfaces Profiler e ActionGenerator. Todas as
// operações são puras: recebem o snapshot e a data de referência e devolvem
// estruturas recém-alocadas, sem estado entre chamadas.
type Service struct {
	scoring   config.Scoring
	actions   config.Actions
	converter *currency.Converter
}

// NewService cria uma nova instância do serviço de perfis e ações
func NewService(cfg *config.Config) Intelligencer {
	return &Service{
		scoring:   cfg.Scoring,
		actions:   cfg.Actions,
		converter: currency.NewConverter(cfg.Reporting.Currency, cfg.Reporting.Rates),
	}
}

// customerMetrics acumula as medidas intermediárias de um cliente antes da
// pontuação e da geração de ações
type customerMetrics struct {
	customer             *domain.Customer
	orderCount           int
	totalInvoiced        float64
	totalCollected       float64
	debt                 float64
	lastOrderDate        *time.Time
	daysSinceLastOrder   int
	daysSinceLastPayment int
	daysSinceLastContact int
	orderFrequency       float64
	predictedNextOrder   *time.Time
}

// BuildProfiles constrói um perfil de saúde para cada cliente ativo,
// na ordem de inserção do snapshot
func (s *Service) BuildProfiles(snapshot *domain.Snapshot, now time.Time) []*domain.CustomerHealthProfile {
	customers := snapshot.ActiveCustomers()
	profiles := make([]*domain.CustomerHealthProfile, 0, len(customers))

	for _, customer := range customers {
		metrics := s.collectMetrics(snapshot, customer, now)
		profiles = append(profiles, s.toProfile(metrics))
	}

	return profiles
}

// collectMetrics agrega pedidos, pagamentos e reuniões de um cliente.
// Datas zeradas são tratadas como ausentes: ficam fora do janelamento
// temporal e caem no sentinela de recência.
func (s *Service) collectMetrics(snapshot *domain.Snapshot, customer *domain.Customer, now time.Time) *customerMetrics {
	sentinel := s.scoring.NoDateSentinelDays

	metrics := &customerMetrics{
		customer:             customer,
		daysSinceLastOrder:   sentinel,
		daysSinceLastPayment: sentinel,
		daysSinceLastContact: sentinel,
	}

	orders := snapshot.QualifyingOrders(customer.ID)
	metrics.orderCount = len(orders)

	datedOrders := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		metrics.totalInvoiced += s.converter.Convert(order.TotalAmount, order.Currency)
		if !order.OrderDate.IsZero() {
			datedOrders = append(datedOrders, order)
		}
	}

	sort.SliceStable(datedOrders, func(i, j int) bool {
		return datedOrders[i].OrderDate.Before(datedOrders[j].OrderDate)
	})

	if len(datedOrders) > 0 {
		last := datedOrders[len(datedOrders)-1].OrderDate
		metrics.lastOrderDate = &last
		metrics.daysSinceLastOrder = utils.DaysBetween(last, now)
	}

	// Intervalo médio entre pedidos consecutivos; fallback fixo quando há
	// menos de dois pedidos datados
	if len(datedOrders) >= 2 {
		totalGap := 0
		for i := 1; i < len(datedOrders); i++ {
			totalGap += utils.DaysBetween(datedOrders[i-1].OrderDate, datedOrders[i].OrderDate)
		}
		metrics.orderFrequency = float64(totalGap) / float64(len(datedOrders)-1)
	} else if len(datedOrders) == 1 {
		metrics.orderFrequency = s.scoring.DefaultOrderFrequency
	}

	if metrics.lastOrderDate != nil && metrics.orderFrequency > 0 {
		predicted := metrics.lastOrderDate.AddDate(0, 0, int(metrics.orderFrequency))
		metrics.predictedNextOrder = &predicted
	}

	var lastPayment time.Time
	for _, payment := range snapshot.QualifyingPayments(customer.ID) {
		metrics.totalCollected += s.converter.Convert(payment.Amount, payment.Currency)

		effective := payment.EffectiveDate()
		if !effective.IsZero() && effective.After(lastPayment) {
			lastPayment = effective
		}
	}
	if !lastPayment.IsZero() {
		metrics.daysSinceLastPayment = utils.DaysBetween(lastPayment, now)
	}

	// Sem pedidos qualificados não há dívida a reportar, mesmo que existam
	// pagamentos avulsos registrados
	metrics.debt = metrics.totalInvoiced - metrics.totalCollected
	if metrics.orderCount == 0 {
		metrics.debt = 0
	}

	var lastMeeting time.Time
	for _, meeting := range snapshot.CustomerMeetings(customer.ID) {
		if !meeting.MeetingDate.IsZero() && meeting.MeetingDate.After(lastMeeting) {
			lastMeeting = meeting.MeetingDate
		}
	}
	if !lastMeeting.IsZero() {
		metrics.daysSinceLastContact = utils.DaysBetween(lastMeeting, now)
	}

	return metrics
}

// toProfile converte as métricas intermediárias no perfil publicado
func (s *Service) toProfile(metrics *customerMetrics) *domain.CustomerHealthProfile {
	return &domain.CustomerHealthProfile{
		CustomerID:             metrics.customer.ID,
		CustomerName:           metrics.customer.Name,
		TotalDebt:              utils.RoundWithTwoDecimalPlace(metrics.debt),
		FinancialRiskScore:     s.financialRiskScore(metrics),
		EngagementScore:        s.engagementScore(metrics),
		LastOrderDate:          metrics.lastOrderDate,
		OrderFrequencyDays:     utils.RoundWithTwoDecimalPlace(metrics.orderFrequency),
		PredictedNextOrderDate: metrics.predictedNextOrder,
		DaysSinceLastPayment:   metrics.daysSinceLastPayment,
		DaysSinceLastContact:   metrics.daysSinceLastContact,
	}
}
