package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// Quantity se actualiza solo vía UpdateQuantity, y solo desde el ledger de
// stock dentro de una transacción; Update no toca existencias.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(userID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE).
	// Serializa el leer-verificar-escribir de existencias entre requests
	// concurrentes sobre el mismo producto. Solo tiene sentido dentro de una tx.
	GetForUpdate(userID, id string) (*entity.Product, error)
	UpdateQuantity(id string, quantity int64) error
	Update(product *entity.Product) error
	ListByUser(userID, search string, limit, offset int) ([]*entity.Product, error)
	Delete(userID, id string) error
}
