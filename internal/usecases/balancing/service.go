// Package balancing deriva a conta-corrente por cliente, as parcelas
// vencidas e a vencer e o score composto de risco de cobrança.
package balancing

import (
	"math"
	"time"

	"github.com/vfg2006/crm-intelligence-api/internal/config"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
	"github.com/vfg2006/crm-intelligence-api/pkg/currency"
	"github.com/vfg2006/crm-intelligence-api/pkg/utils"
)

// Balancer calcula a posição financeira por cliente e o consolidado geral
type Balancer interface {
	CustomerBalances(snapshot *domain.Snapshot, now time.Time) []*domain.CustomerBalance
	Summary(balances []*domain.CustomerBalance, now time.Time) *domain.BalancesSummary
}

// Service implementa a interface Balancer como função pura do snapshot e da
// data de referência
type Service struct {
	balance   config.Balance
	converter *currency.Converter
}

// NewService cria uma nova instância do serviço de conta-corrente
func NewService(cfg *config.Config) *Service {
	return &Service{
		balance:   cfg.Balance,
		converter: currency.NewConverter(cfg.Reporting.Currency, cfg.Reporting.Rates),
	}
}

// CustomerBalances devolve uma conta-corrente por cliente ativo, na ordem de
// inserção do snapshot
func (s *Service) CustomerBalances(snapshot *domain.Snapshot, now time.Time) []*domain.CustomerBalance {
	customers := snapshot.ActiveCustomers()
	balances := make([]*domain.CustomerBalance, 0, len(customers))

	for _, customer := range customers {
		balances = append(balances, s.customerBalance(snapshot, customer, now))
	}

	return balances
}

func (s *Service) customerBalance(snapshot *domain.Snapshot, customer *domain.Customer, now time.Time) *domain.CustomerBalance {
	totalOrders := 0.0
	for _, order := range snapshot.QualifyingOrders(customer.ID) {
		totalOrders += s.converter.Convert(order.TotalAmount, order.Currency)
	}

	totalPayments := 0.0
	overdue := make([]*domain.Payment, 0)
	upcoming := make([]*domain.Payment, 0)
	overdueSum := 0.0
	upcomingSum := 0.0
	totalDelayDays := 0

	for _, payment := range snapshot.QualifyingPayments(customer.ID) {
		normalized := s.converter.Convert(payment.Amount, payment.Currency)
		totalPayments += normalized

		// Particiona apenas parcelas pendentes (não recebidas) com data de
		// vencimento conhecida
		if payment.Status == domain.PaymentStatusCollected || payment.DueDate.IsZero() {
			continue
		}

		daysUntilDue := utils.DaysBetween(now, payment.DueDate)
		switch {
		case daysUntilDue < 0:
			overdue = append(overdue, payment)
			overdueSum += normalized
			totalDelayDays += -daysUntilDue
		case daysUntilDue <= s.balance.UpcomingWindowDays:
			upcoming = append(upcoming, payment)
			upcomingSum += normalized
		}
	}

	// balance = pedidos − pagamentos: positivo significa que o cliente deve
	balance := totalOrders - totalPayments

	status := domain.BalanceStatusSettled
	if math.Abs(balance) >= s.balance.SettledTolerance {
		if balance > 0 {
			status = domain.BalanceStatusReceivable
		} else {
			status = domain.BalanceStatusPayable
		}
	}

	averageDelay := 0.0
	if len(overdue) > 0 {
		averageDelay = float64(totalDelayDays) / float64(len(overdue))
	}

	return &domain.CustomerBalance{
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		TotalOrders:      utils.RoundWithTwoDecimalPlace(totalOrders),
		TotalPayments:    utils.RoundWithTwoDecimalPlace(totalPayments),
		Balance:          utils.RoundWithTwoDecimalPlace(balance),
		Status:           status,
		OverduePayments:  overdue,
		UpcomingPayments: upcoming,
		OverdueSum:       utils.RoundWithTwoDecimalPlace(overdueSum),
		UpcomingSum:      utils.RoundWithTwoDecimalPlace(upcomingSum),
		Risk: s.riskAnalysis(
			len(overdue), averageDelay, overdueSum, totalOrders, balance, status,
		),
	}
}

// riskAnalysis compõe o score de risco de cobrança por fatores ponderados,
// cada um com teto próprio, limitado a 100
func (s *Service) riskAnalysis(
	overdueCount int,
	averageDelayDays float64,
	overdueSum float64,
	totalOrders float64,
	balance float64,
	status domain.BalanceStatus,
) *domain.RiskAnalysis {
	overdueRatio := 0.0
	balanceRatio := 0.0
	if totalOrders > 0 {
		overdueRatio = overdueSum / totalOrders * 100
		balanceRatio = math.Abs(balance) / totalOrders * 100
	}

	score := 0.0
	score += capFloat(float64(overdueCount)*10, 30)
	score += capFloat(averageDelayDays*2, 30)
	score += capFloat(overdueRatio*0.25, 25)

	// A exposição de saldo só pesa enquanto o cliente está devendo
	if status == domain.BalanceStatusReceivable {
		score += capFloat(balanceRatio*0.15, 15)
	}

	if score > 100 {
		score = 100
	}

	riskScore := int(math.Round(score))

	level := domain.RiskLevelHigh
	switch {
	case riskScore <= 30:
		level = domain.RiskLevelLow
	case riskScore <= 60:
		level = domain.RiskLevelMedium
	}

	return &domain.RiskAnalysis{
		RiskScore: riskScore,
		RiskLevel: level,
		Factors: domain.RiskFactors{
			OverdueCount:     overdueCount,
			AverageDelayDays: utils.RoundWithTwoDecimalPlace(averageDelayDays),
			OverdueRatio:     utils.RoundWithTwoDecimalPlace(overdueRatio),
			BalanceRatio:     utils.RoundWithTwoDecimalPlace(balanceRatio),
		},
	}
}

// Summary consolida as contas-correntes de todos os clientes
func (s *Service) Summary(balances []*domain.CustomerBalance, now time.Time) *domain.BalancesSummary {
	summary := &domain.BalancesSummary{
		ReferenceDate: now,
	}

	for _, balance := range balances {
		switch balance.Status {
		case domain.BalanceStatusReceivable:
			summary.TotalReceivable += balance.Balance
		case domain.BalanceStatusPayable:
			summary.TotalPayable += math.Abs(balance.Balance)
		}

		if balance.Risk != nil {
			switch balance.Risk.RiskLevel {
			case domain.RiskLevelLow:
				summary.LowRiskCount++
			case domain.RiskLevelMedium:
				summary.MediumRiskCount++
			case domain.RiskLevelHigh:
				summary.HighRiskCount++
			}
		}

		summary.OverdueSum += balance.OverdueSum
		summary.OverdueCount += len(balance.OverduePayments)
		summary.UpcomingSum += balance.UpcomingSum
		summary.UpcomingCount += len(balance.UpcomingPayments)
	}

	summary.TotalReceivable = utils.RoundWithTwoDecimalPlace(summary.TotalReceivable)
	summary.TotalPayable = utils.RoundWithTwoDecimalPlace(summary.TotalPayable)
	summary.NetBalance = utils.RoundWithTwoDecimalPlace(summary.TotalReceivable - summary.TotalPayable)
	summary.OverdueSum = utils.RoundWithTwoDecimalPlace(summary.OverdueSum)
	summary.UpcomingSum = utils.RoundWithTwoDecimalPlace(summary.UpcomingSum)

	return summary
}

func capFloat(value, limit float64) float64 {
	if value > limit {
		return limit
	}
	return value
}
