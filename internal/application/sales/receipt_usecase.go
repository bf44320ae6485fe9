package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// ReceiptUseCase genera la representación PDF del recibo de una venta.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// GetReceiptPDF resuelve la venta con sus líneas y devuelve los bytes del PDF.
func (uc *ReceiptUseCase) GetReceiptPDF(ctx context.Context, userID, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(userID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(userID, sale.CustomerID)
	if err != nil {
		return nil, err
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	lines := make([]ReceiptItem, 0, len(items))
	for _, item := range items {
		name := "(producto eliminado)"
		if product, _ := uc.productRepo.GetByID(userID, item.ProductID); product != nil {
			name = product.Name
		}
		lines = append(lines, ReceiptItem{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
		})
	}
	return uc.generator.GenerateReceiptPDF(ctx, sale, customer, lines)
}
