package entity

import "time"

// Direcciones de movimiento de stock.
const (
	MovementIn  = "in"  // entrada
	MovementOut = "out" // salida
)

// StockMovement representa un movimiento de stock. El historial es append-only:
// un movimiento nunca se edita ni se borra; una reversión es un movimiento nuevo.
// Invariante del ledger: para cada producto,
// quantity = Σ(movimientos in) − Σ(movimientos out) después de cada commit.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // in | out
	Quantity  int64  // siempre positiva; el signo lo da Type
	Reason    string // texto libre: venta, reversión, ajuste, compra...
	CreatedAt time.Time
}
