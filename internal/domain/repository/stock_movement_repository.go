package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para el historial
// de movimientos. El historial es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// SumByProduct devuelve la suma con signo del ledger del producto
	// (Σ in − Σ out). Debe coincidir con products.quantity tras cada commit.
	SumByProduct(productID string) (int64, error)
}
