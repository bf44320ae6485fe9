package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea de venta. UnitPrice es el precio histórico
// capturado al momento de la venta; no sigue cambios posteriores del precio
// vivo del producto.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}
