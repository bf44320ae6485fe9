package repository

import "github.com/tu-usuario/ventas-pro/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// Toda lectura/escritura filtra por dueño en el propio SQL (WHERE user_id = ...);
// un recurso de otro usuario se comporta como inexistente.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(userID, id string) (*entity.Customer, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(userID, id string) error
}
