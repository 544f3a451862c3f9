package domain

// ActionCategory classifica uma ação recomendada
type ActionCategory string

const (
	ActionCategoryFinancial    ActionCategory = "financial"
	ActionCategorySales        ActionCategory = "sales"
	ActionCategoryRelationship ActionCategory = "relationship"
	ActionCategoryStock        ActionCategory = "stock"
)

// ActionPriority indica a urgência de uma ação recomendada
type ActionPriority string

const (
	ActionPriorityHigh   ActionPriority = "high"
	ActionPriorityMedium ActionPriority = "medium"
	ActionPriorityLow    ActionPriority = "low"
)

// SmartAction é uma intervenção recomendada pelo motor. O ID é determinístico
// (categoria + id do cliente ou produto) para evitar duplicidade entre chamadas.
type SmartAction struct {
	ID         string         `json:"id"`
	Category   ActionCategory `json:"category"`
	Priority   ActionPriority `json:"priority"`
	Message    string         `json:"message"`
	CustomerID string         `json:"customer_id,omitempty"`
	ProductID  string         `json:"product_id,omitempty"`
	SortScore  float64        `json:"sort_score"`
}
