package dto

import "github.com/shopspring/decimal"

// CreateSaleRequest body para POST /api/sales. El total no viaja en el
// request: siempre se deriva de las líneas.
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id"`
	Items      []SaleItemRequest `json:"items"`
}

// SaleItemRequest línea solicitada (producto, cantidad).
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// SaleItemResponse línea persistida con su precio histórico.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con líneas para POST /api/sales y GET /api/sales/:id.
type SaleResponse struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name,omitempty"`
	Total        decimal.Decimal    `json:"total"`
	Date         string             `json:"date"`
	Items        []SaleItemResponse `json:"items"`
}
