package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para la taxonomía de productos.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(userID, id string) (*entity.Category, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Category, error)
	ListByParent(userID, parentID string) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(userID, id string) error
}
