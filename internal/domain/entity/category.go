package entity

import "time"

// MaxCategoryLevel profundidad máxima de la taxonomía de productos.
const MaxCategoryLevel = 4

// Category representa un nodo de la taxonomía de productos (hasta cuatro niveles).
// Level 1 es raíz; un hijo siempre tiene Level = Level del padre + 1.
type Category struct {
	ID        string
	UserID    string
	ParentID  string // vacío si es raíz
	Name      string
	Level     int // 1..4
	CreatedAt time.Time
	UpdatedAt time.Time
}
