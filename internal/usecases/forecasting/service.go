// Package forecasting deriva a projeção de receita do mês corrente a partir
// dos pedidos fechados e dos orçamentos quentes.
package forecasting

import (
	"time"

	"github.com/vfg2006/crm-intelligence-api/internal/config"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
	"github.com/vfg2006/crm-intelligence-api/pkg/currency"
	"github.com/vfg2006/crm-intelligence-api/pkg/utils"
)

// Forecaster projeta a receita do mês corrente
type Forecaster interface {
	MonthlyForecast(snapshot *domain.Snapshot, now time.Time) *domain.MonthlyForecast
}

// Service implementa a interface Forecaster como função pura do snapshot e
// da data de referência
type Service struct {
	forecast  config.Forecast
	converter *currency.Converter
}

// NewService cria uma nova instância do serviço de projeção
func NewService(cfg *config.Config) *Service {
	return &Service{
		forecast:  cfg.Forecast,
		converter: currency.NewConverter(cfg.Reporting.Currency, cfg.Reporting.Rates),
	}
}

// MonthlyForecast calcula o run-rate do mês e as projeções realista e
// otimista. O divisor é o dia do mês corrente, sempre >= 1.
func (s *Service) MonthlyForecast(snapshot *domain.Snapshot, now time.Time) *domain.MonthlyForecast {
	currentTotal := s.currentMonthTotal(snapshot, now)
	pendingHot := s.hotQuotesTotal(snapshot, now)

	daysElapsed := now.Day()
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()

	runRate := currentTotal / float64(daysElapsed)
	projectedMonth := runRate * float64(daysInMonth)

	return &domain.MonthlyForecast{
		Period:       now.Format("01-2006"),
		CurrentTotal: utils.RoundWithTwoDecimalPlace(currentTotal),
		PendingHot:   utils.RoundWithTwoDecimalPlace(pendingHot),
		RunRate:      utils.RoundWithTwoDecimalPlace(runRate),
		Realistic:    utils.RoundWithTwoDecimalPlace(projectedMonth + pendingHot*s.forecast.RealisticWeight),
		Optimistic:   utils.RoundWithTwoDecimalPlace(projectedMonth + pendingHot*s.forecast.OptimisticWeight),
	}
}

// currentMonthTotal soma os pedidos qualificados do mês calendário corrente
func (s *Service) currentMonthTotal(snapshot *domain.Snapshot, now time.Time) float64 {
	total := 0.0

	for _, order := range snapshot.Orders {
		if order == nil || order.Deleted || order.Status == domain.OrderStatusCancelled {
			continue
		}
		if order.OrderDate.IsZero() {
			continue
		}
		if order.OrderDate.Year() == now.Year() && order.OrderDate.Month() == now.Month() {
			total += s.converter.Convert(order.TotalAmount, order.Currency)
		}
	}

	return total
}

// hotQuotesTotal soma os orçamentos preparados emitidos na janela recente
func (s *Service) hotQuotesTotal(snapshot *domain.Snapshot, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -s.forecast.HotQuoteWindowDays)
	total := 0.0

	for _, quote := range snapshot.Quotes {
		if quote == nil || quote.Deleted || quote.Status != domain.QuoteStatusPrepared {
			continue
		}
		if quote.QuoteDate.IsZero() || quote.QuoteDate.Before(cutoff) || quote.QuoteDate.After(now) {
			continue
		}
		total += s.converter.Convert(quote.TotalAmount, quote.Currency)
	}

	return total
}
