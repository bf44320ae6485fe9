package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
// Quantity inicial es opcional; si es mayor que cero se registra como un
// movimiento de entrada, no como asignación directa.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	CategoryID  string           `json:"category_id,omitempty"`
	SalePrice   decimal.Decimal  `json:"sale_price"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	Quantity    int64            `json:"quantity,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. No incluye Quantity:
// las existencias solo cambian vía movimientos de stock.
type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	CategoryID  string           `json:"category_id,omitempty"`
	SalePrice   decimal.Decimal  `json:"sale_price"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Quantity    int64           `json:"quantity"`
}
