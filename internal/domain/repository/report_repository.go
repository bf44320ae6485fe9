package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult agregados de ventas de un período.
type SalesSummaryResult struct {
	SaleCount int64
	Revenue   decimal.Decimal
	UnitsSold int64
}

// TopProductResult un producto ordenado por ingresos en el período.
type TopProductResult struct {
	ProductID   string
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal
}

// InventorySummaryResult valoración del inventario a la fecha.
type InventorySummaryResult struct {
	ProductCount int64
	UnitsOnHand  int64
	CostValue    decimal.Decimal // Σ quantity × cost_price
	RetailValue  decimal.Decimal // Σ quantity × sale_price
}

// ReportRepository consultas de solo lectura para el tablero de reportes.
// Este módulo no muta nada: lee filas que el núcleo garantiza consistentes.
type ReportRepository interface {
	SalesSummary(ctx context.Context, userID string, from, to time.Time) (*SalesSummaryResult, error)
	TopProducts(ctx context.Context, userID string, from, to time.Time, limit int) ([]TopProductResult, error)
	InventorySummary(ctx context.Context, userID string) (*InventorySummaryResult, error)
}
