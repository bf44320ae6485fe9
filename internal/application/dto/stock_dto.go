package dto

import "time"

// ApplyMovementRequest body para POST /api/stock/movements.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // in | out
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

// MovementResponse un movimiento del historial.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
