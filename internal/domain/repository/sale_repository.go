package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// CreateItems inserta todas las líneas en un solo lote, después de que la
	// validación de la venta completa haya pasado.
	CreateItems(items []*entity.SaleItem) error
	UpdateTotal(id string, total decimal.Decimal) error
	GetByID(userID, id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Sale, error)
	// Delete elimina la cabecera y sus líneas.
	Delete(id string) error
}
