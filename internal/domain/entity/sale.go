package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta. Total es derivado (suma de las
// líneas), nunca lo aporta el cliente. Una venta solo tiene dos estados:
// existe (stock ya debitado) o no existe (cancelada, stock restaurado).
type Sale struct {
	ID         string
	UserID     string
	CustomerID string
	Total      decimal.Decimal
	CreatedAt  time.Time
}
