package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para el tablero.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesSummary agregados de ventas del usuario en el período [from, to].
func (r *ReportRepo) SalesSummary(ctx context.Context, userID string, from, to time.Time) (*repository.SalesSummaryResult, error) {
	query := `
		SELECT COUNT(DISTINCT s.id),
		       COALESCE(SUM(si.quantity * si.unit_price), 0),
		       COALESCE(SUM(si.quantity), 0)
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		WHERE s.user_id = $1 AND s.created_at BETWEEN $2 AND $3`
	var res repository.SalesSummaryResult
	err := r.q.QueryRow(ctx, query, userID, from, to).
		Scan(&res.SaleCount, &res.Revenue, &res.UnitsSold)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &res, nil
}

// TopProducts productos del período ordenados por ingresos. Incluye productos
// ya eliminados del catálogo (quedan con el nombre histórico vacío).
func (r *ReportRepo) TopProducts(ctx context.Context, userID string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT si.product_id,
		       COALESCE(p.name, ''),
		       COALESCE(SUM(si.quantity), 0),
		       COALESCE(SUM(si.quantity * si.unit_price), 0) AS revenue
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		LEFT JOIN products p ON p.id = si.product_id
		WHERE s.user_id = $1 AND s.created_at BETWEEN $2 AND $3
		GROUP BY si.product_id, p.name
		ORDER BY revenue DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, userID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// InventorySummary valoración del inventario actual del usuario.
func (r *ReportRepo) InventorySummary(ctx context.Context, userID string) (*repository.InventorySummaryResult, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(quantity * cost_price), 0),
		       COALESCE(SUM(quantity * sale_price), 0)
		FROM products
		WHERE user_id = $1`
	var res repository.InventorySummaryResult
	err := r.q.QueryRow(ctx, query, userID).
		Scan(&res.ProductCount, &res.UnitsOnHand, &res.CostValue, &res.RetailValue)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	return &res, nil
}
