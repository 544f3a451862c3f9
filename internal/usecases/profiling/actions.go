package profiling

import (
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/crm-intelligence-api/internal/domain"
)

// GenerateDailyActions varre os perfis de todos os clientes ativos e o
// estoque dos produtos, ranqueia os candidatos por sortScore decrescente e
// corta no máximo configurado. Empates preservam a ordem de inserção
// (ordenação estável).
func (s *Service) GenerateDailyActions(snapshot *domain.Snapshot, now time.Time) []*domain.SmartAction {
	candidates := make([]*domain.SmartAction, 0)

	for _, customer := range snapshot.ActiveCustomers() {
		metrics := s.collectMetrics(snapshot, customer, now)
		candidates = append(candidates, s.customerActions(metrics)...)
	}

	candidates = append(candidates, s.stockActions(snapshot)...)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SortScore > candidates[j].SortScore
	})

	if s.actions.MaxActions > 0 && len(candidates) > s.actions.MaxActions {
		candidates = candidates[:s.actions.MaxActions]
	}

	return candidates
}

// customerActions emite os candidatos de um cliente a partir das métricas já
// agregadas
func (s *Service) customerActions(metrics *customerMetrics) []*domain.SmartAction {
	actions := make([]*domain.SmartAction, 0)

	customer := metrics.customer
	risk := s.financialRiskScore(metrics)

	// Risco crítico de cobrança: agir imediatamente
	if risk >= s.scoring.CriticalRiskThreshold {
		actions = append(actions, &domain.SmartAction{
			ID:       fmt.Sprintf("financial-%s", customer.ID),
			Category: domain.ActionCategoryFinancial,
			Priority: domain.ActionPriorityHigh,
			Message: fmt.Sprintf(
				"Cobrança urgente: %s tem dívida de %.2f e nenhum pagamento há %d dias",
				customer.Name, metrics.debt, metrics.daysSinceLastPayment,
			),
			CustomerID: customer.ID,
			SortScore:  90 + float64(risk-s.scoring.CriticalRiskThreshold)/3,
		})
	}

	// Lembrete de pagamento: dívida em aberto sem atingir o limiar crítico
	if risk < s.scoring.CriticalRiskThreshold && metrics.debt > 0 &&
		metrics.daysSinceLastPayment > s.scoring.PaymentSilenceMedium {
		actions = append(actions, &domain.SmartAction{
			ID:       fmt.Sprintf("reminder-%s", customer.ID),
			Category: domain.ActionCategoryFinancial,
			Priority: domain.ActionPriorityMedium,
			Message: fmt.Sprintf(
				"Enviar lembrete de pagamento para %s (%.2f em aberto)",
				customer.Name, metrics.debt,
			),
			CustomerID: customer.ID,
			SortScore:  60 + capFloat(float64(metrics.daysSinceLastPayment)/10, 15),
		})
	}

	// Relacionamento esquecido: bom histórico de compras, silêncio longo e
	// risco financeiro aceitável
	if metrics.orderCount > s.actions.MinOrderHistory &&
		metrics.daysSinceLastContact > s.actions.RelationshipSilence &&
		risk < 50 {
		actions = append(actions, &domain.SmartAction{
			ID:       fmt.Sprintf("relationship-%s", customer.ID),
			Category: domain.ActionCategoryRelationship,
			Priority: domain.ActionPriorityMedium,
			Message: fmt.Sprintf(
				"Retomar contato com %s: %d dias sem reunião",
				customer.Name, metrics.daysSinceLastContact,
			),
			CustomerID: customer.ID,
			SortScore:  50 + capFloat(float64(metrics.daysSinceLastContact)/10, 15),
		})
	}

	// Janela de recompra: dias desde o último pedido dentro da janela em
	// torno do intervalo médio do cliente
	if metrics.lastOrderDate != nil && metrics.orderFrequency > 0 {
		elapsed := float64(metrics.daysSinceLastOrder)
		lower := metrics.orderFrequency * s.actions.ReorderWindowLower
		upper := metrics.orderFrequency * s.actions.ReorderWindowUpper

		if elapsed >= lower && elapsed <= upper {
			actions = append(actions, &domain.SmartAction{
				ID:       fmt.Sprintf("sales-%s", customer.ID),
				Category: domain.ActionCategorySales,
				Priority: domain.ActionPriorityMedium,
				Message: fmt.Sprintf(
					"Oferecer orçamento para %s: janela de recompra aberta (pedido médio a cada %.0f dias)",
					customer.Name, metrics.orderFrequency,
				),
				CustomerID: customer.ID,
				SortScore:  65,
			})
		}
	}

	return actions
}

// stockActions emite um alerta para cada produto já vendido alguma vez cujo
// estoque esteja no nível crítico
func (s *Service) stockActions(snapshot *domain.Snapshot) []*domain.SmartAction {
	soldProducts := make(map[string]bool)
	for _, order := range snapshot.Orders {
		if order == nil || order.Deleted || order.Status == domain.OrderStatusCancelled {
			continue
		}
		for _, item := range order.Items {
			if item != nil && item.ProductID != "" {
				soldProducts[item.ProductID] = true
			}
		}
	}

	actions := make([]*domain.SmartAction, 0)
	for _, product := range snapshot.Products {
		if product == nil || !soldProducts[product.ID] {
			continue
		}

		if product.StockQuantity <= s.actions.StockCriticalLevel {
			actions = append(actions, &domain.SmartAction{
				ID:       fmt.Sprintf("stock-%s", product.ID),
				Category: domain.ActionCategoryStock,
				Priority: domain.ActionPriorityHigh,
				Message: fmt.Sprintf(
					"Repor estoque de %s: restam %d unidades",
					product.Name, product.StockQuantity,
				),
				ProductID: product.ID,
				SortScore: 85,
			})
		}
	}

	return actions
}

func capFloat(value, limit float64) float64 {
	if value > limit {
		return limit
	}
	return value
}
