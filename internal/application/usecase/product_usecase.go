package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/application/stock"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
	"github.com/tu-usuario/ventas-pro/pkg/textnorm"
)

// ProductUseCase CRUD del catálogo. Nunca escribe existencias directamente:
// el stock inicial de un producto nuevo entra como movimiento del ledger.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	ledger       *stock.Ledger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, ledger *stock.Ledger) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, ledger: ledger}
}

// Create crea un producto con existencias cero y, si el request trae cantidad
// inicial, la registra como movimiento de entrada.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := textnorm.Clean(in.Name)
	if name == "" || in.SalePrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	cost := decimal.Zero
	if in.CostPrice != nil {
		if in.CostPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		cost = *in.CostPrice
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(userID, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Name:        name,
		Description: in.Description,
		SalePrice:   in.SalePrice,
		CostPrice:   cost,
		Quantity:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if in.Quantity > 0 {
		return uc.ledger.ApplyMovement(ctx, userID, dto.ApplyMovementRequest{
			ProductID: product.ID,
			Type:      entity.MovementIn,
			Quantity:  in.Quantity,
			Reason:    "Initial stock",
		})
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza el producto. Quantity no se toca aquí: solo cambia vía ledger.
func (uc *ProductUseCase) Update(userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	name := textnorm.Clean(in.Name)
	if name == "" || in.SalePrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" && in.CategoryID != product.CategoryID {
		category, err := uc.categoryRepo.GetByID(userID, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	product.Name = name
	product.Description = in.Description
	product.CategoryID = in.CategoryID
	product.SalePrice = in.SalePrice
	if in.CostPrice != nil {
		if in.CostPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del catálogo. Las líneas de venta históricas
// conservan su precio capturado; sus reversiones de stock se omiten.
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(userID, id)
}

// List lista productos del usuario, con búsqueda opcional por nombre.
func (uc *ProductUseCase) List(userID, search string, limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByUser(userID, textnorm.Clean(search), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
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
