package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

const topProductsLimit = 5

// ReportUseCase arma el tablero de reportes a partir de consultas de solo
// lectura. No muta nada: lee filas que el núcleo mantiene consistentes.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Dashboard agrega ventas del período [from, to] e inventario actual.
func (uc *ReportUseCase) Dashboard(ctx context.Context, userID string, from, to time.Time) (*dto.DashboardResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	summary, err := uc.repo.SalesSummary(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.TopProducts(ctx, userID, from, to, topProductsLimit)
	if err != nil {
		return nil, err
	}
	inventory, err := uc.repo.InventorySummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		From:      from.Format("2006-01-02"),
		To:        to.Format("2006-01-02"),
		SaleCount: summary.SaleCount,
		Revenue:   summary.Revenue,
		UnitsSold: summary.UnitsSold,
		Inventory: dto.InventorySummaryDTO{
			ProductCount: inventory.ProductCount,
			UnitsOnHand:  inventory.UnitsOnHand,
			CostValue:    inventory.CostValue,
			RetailValue:  inventory.RetailValue,
		},
		TopProducts: make([]dto.TopProductDTO, 0, len(top)),
	}
	for _, p := range top {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductDTO{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			UnitsSold:   p.UnitsSold,
			Revenue:     p.Revenue,
		})
	}
	return resp, nil
}
