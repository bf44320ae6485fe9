package dto

import "github.com/shopspring/decimal"

// DashboardResponse tablero de reportes: ventas del período + inventario actual.
type DashboardResponse struct {
	From        string            `json:"from"`
	To          string            `json:"to"`
	SaleCount   int64             `json:"sale_count"`
	Revenue     decimal.Decimal   `json:"revenue"`
	UnitsSold   int64             `json:"units_sold"`
	TopProducts []TopProductDTO   `json:"top_products"`
	Inventory   InventorySummaryDTO `json:"inventory"`
}

// TopProductDTO producto destacado por ingresos.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// InventorySummaryDTO valoración del inventario a hoy.
type InventorySummaryDTO struct {
	ProductCount int64           `json:"product_count"`
	UnitsOnHand  int64           `json:"units_on_hand"`
	CostValue    decimal.Decimal `json:"cost_value"`
	RetailValue  decimal.Decimal `json:"retail_value"`
}
