package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de catálogo, ledger y ventas. Toda la creación/cancelación de
// una venta vive dentro de un solo RunSales: o se confirma completa o no
// queda nada.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockLedger puerto hacia el ledger de stock. ApplyInTx ejecuta un
// movimiento usando los repositorios del caller (misma transacción); si
// retorna error (ej: stock insuficiente) el caller hace rollback.
type StockLedger interface {
	ApplyInTx(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		userID, productID, movementType string,
		quantity int64,
		reason string,
		now time.Time,
	) (*entity.Product, error)
}

// ReceiptItem línea ya resuelta para la representación PDF del recibo.
type ReceiptItem struct {
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// ReceiptPDFGenerator genera el recibo de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, items []ReceiptItem) ([]byte, error)
}
