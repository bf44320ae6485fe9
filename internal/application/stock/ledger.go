package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// Ledger es el dueño del invariante "products.quantity == suma con signo de
// stock_movements del producto". Aplica exactamente un cambio de existencias
// y lo registra, como unidad atómica: si cualquiera de los dos efectos falla,
// la transacción completa se revierte.
type Ledger struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewLedger construye el ledger. productRepo y movementRepo son los
// repositorios fuera de transacción, usados solo para lecturas.
func NewLedger(txRunner TxRunner, productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *Ledger {
	return &Ledger{txRunner: txRunner, productRepo: productRepo, movementRepo: movementRepo}
}

// ApplyMovement aplica un movimiento (in/out) de forma transaccional y
// devuelve el producto con sus existencias refrescadas. El caller no debe
// confiar en una copia del producto previa a la operación.
func (l *Ledger) ApplyMovement(ctx context.Context, userID string, in dto.ApplyMovementRequest) (*dto.ProductResponse, error) {
	// Violaciones de contrato: se rechazan antes de tocar almacenamiento.
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementIn && in.Type != entity.MovementOut {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now()
	var updated *entity.Product
	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		p, err := l.ApplyInTx(productRepo, movementRepo, userID, in.ProductID, in.Type, in.Quantity, in.Reason, now)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// ApplyInTx ejecuta el movimiento usando los repositorios proporcionados
// (misma transacción del caller). Es el único camino por el que cambia
// products.quantity en toda la aplicación; el caso de uso de ventas lo invoca
// por línea dentro de su propia transacción.
//
// Bloquea la fila del producto (SELECT FOR UPDATE) antes de verificar
// suficiencia: dos salidas concurrentes sobre el mismo producto se serializan
// y nunca dejan existencias negativas.
func (l *Ledger) ApplyInTx(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	userID, productID, movementType string,
	quantity int64,
	reason string,
	now time.Time,
) (*entity.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if movementType != entity.MovementIn && movementType != entity.MovementOut {
		return nil, domain.ErrInvalidInput
	}

	product, err := productRepo.GetForUpdate(userID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	newQty := product.Quantity
	if movementType == entity.MovementIn {
		newQty += quantity
	} else {
		if product.Quantity < quantity {
			return nil, &domain.InsufficientStockError{ProductName: product.Name}
		}
		newQty -= quantity
	}

	if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      movementType,
		Quantity:  quantity,
		Reason:    reason,
		CreatedAt: now,
	}
	if err := movementRepo.Create(mov); err != nil {
		return nil, err
	}

	product.Quantity = newQty
	product.UpdatedAt = now
	return product, nil
}

// ListMovements devuelve el historial de un producto (más reciente primero).
func (l *Ledger) ListMovements(ctx context.Context, userID, productID string, limit, offset int) ([]*dto.MovementResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	product, err := l.productRepo.GetByID(userID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := l.movementRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, &dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		SalePrice:   p.SalePrice,
		CostPrice:   p.CostPrice,
		Quantity:    p.Quantity,
	}
}
