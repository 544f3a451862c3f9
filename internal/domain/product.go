package domain

// Product representa um produto do catálogo com o estoque atual
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
}
