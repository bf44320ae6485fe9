package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity es la existencia viva (on-hand); se muta únicamente a través del
// ledger de stock, nunca por asignación directa en otros casos de uso.
type Product struct {
	ID          string
	UserID      string
	CategoryID  string // vacío si no está categorizado
	Name        string
	Description string
	SalePrice   decimal.Decimal // precio de venta vigente
	CostPrice   decimal.Decimal // costo unitario (opcional, cero si no se conoce)
	Quantity    int64           // existencias; nunca negativa
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
