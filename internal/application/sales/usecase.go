package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// SaleUseCase orquesta la creación y cancelación de ventas multi-línea como
// unidades todo-o-nada que mantienen el stock consistente. Una venta tiene
// exactamente dos estados: existe (stock ya debitado) o no existe (cancelada,
// stock restaurado); no hay estados intermedios visibles.
type SaleUseCase struct {
	txRunner     TxRunner
	ledger       StockLedger
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
	}
}

// CreateSale crea la venta: valida las líneas contra el stock vivo, captura el
// precio vigente de cada producto como precio histórico, calcula el total y
// debita el ledger por línea, todo dentro de una sola transacción. Si
// cualquier paso falla no queda venta, ni líneas, ni movimientos.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	// Cliente del usuario (solo lectura, fuera de la tx).
	customer, err := uc.customerRepo.GetByID(userID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrInvalidCustomer
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale
	var items []*entity.SaleItem
	productNames := make(map[string]string)

	err = uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Cabecera con total provisional cero; el total real se fija al
		// cerrar el cálculo de todas las líneas.
		sale = &entity.Sale{
			ID:         saleID,
			UserID:     userID,
			CustomerID: in.CustomerID,
			Total:      decimal.Zero,
			CreatedAt:  now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// 2) Validar cada línea en el orden recibido. GetForUpdate bloquea la
		// fila del producto, así la verificación de suficiencia y el débito
		// posterior ocurren bajo el mismo lock.
		total := decimal.Zero
		for _, line := range in.Items {
			product, err := productRepo.GetForUpdate(userID, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrInvalidProduct
			}
			if line.Quantity > product.Quantity {
				return &domain.InsufficientStockError{ProductName: product.Name}
			}
			// Precio histórico: el vigente del producto en este instante.
			unitPrice := product.SalePrice
			total = total.Add(unitPrice.Mul(decimal.NewFromInt(line.Quantity)))
			productNames[product.ID] = product.Name
			items = append(items, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
			})
		}

		// 3) Las líneas se insertan en un solo lote después del bucle: una
		// falla a mitad de validación no ha creado ninguna fila de línea.
		if err := saleRepo.CreateItems(items); err != nil {
			return err
		}
		if err := saleRepo.UpdateTotal(saleID, total); err != nil {
			return err
		}
		sale.Total = total

		// 4) Débito del ledger por línea, referenciando la venta.
		for _, item := range items {
			if _, err := uc.ledger.ApplyInTx(
				productRepo, movementRepo,
				userID, item.ProductID, entity.MovementOut,
				item.Quantity, fmt.Sprintf("Sale #%s", saleID), now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, customer.Name, items, productNames), nil
}

// CancelSale revierte y elimina una venta en una sola transacción: por cada
// línea cuyo producto todavía exista se aplica un movimiento de entrada por la
// misma cantidad, y después se borran líneas y cabecera. Las líneas de
// productos ya eliminados del catálogo se omiten en la restauración, pero la
// venta se elimina igual.
func (uc *SaleUseCase) CancelSale(ctx context.Context, userID, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(userID, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		items, err := saleRepo.GetItemsBySaleID(saleID)
		if err != nil {
			return err
		}
		for _, item := range items {
			_, err := uc.ledger.ApplyInTx(
				productRepo, movementRepo,
				userID, item.ProductID, entity.MovementIn,
				item.Quantity, fmt.Sprintf("Reversal - Sale #%s", saleID), now,
			)
			if errors.Is(err, domain.ErrNotFound) {
				// Producto eliminado del catálogo: no hay fila que restaurar.
				continue
			}
			if err != nil {
				return err
			}
		}
		return saleRepo.Delete(saleID)
	})
}

// GetSale devuelve la venta con sus líneas y asociaciones resueltas.
func (uc *SaleUseCase) GetSale(ctx context.Context, userID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(userID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(userID, sale.CustomerID); customer != nil {
		customerName = customer.Name
	}
	productNames := make(map[string]string, len(items))
	for _, item := range items {
		if product, _ := uc.productRepo.GetByID(userID, item.ProductID); product != nil {
			productNames[item.ProductID] = product.Name
		}
	}
	return toSaleResponse(sale, customerName, items, productNames), nil
}

// ListSales lista cabeceras de venta del usuario (más reciente primero).
func (uc *SaleUseCase) ListSales(ctx context.Context, userID string, limit, offset int) ([]*dto.SaleResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.saleRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, &dto.SaleResponse{
			ID:         s.ID,
			CustomerID: s.CustomerID,
			Total:      s.Total,
			Date:       s.CreatedAt.Format("2006-01-02"),
		})
	}
	return out, nil
}

func toSaleResponse(sale *entity.Sale, customerName string, items []*entity.SaleItem, productNames map[string]string) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:           sale.ID,
		CustomerID:   sale.CustomerID,
		CustomerName: customerName,
		Total:        sale.Total,
		Date:         sale.CreatedAt.Format("2006-01-02"),
		Items:        make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: productNames[item.ProductID],
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
		})
	}
	return resp
}
