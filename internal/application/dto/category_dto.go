package dto

// CreateCategoryRequest body para POST /api/categories.
// ParentID vacío crea una categoría raíz (nivel 1).
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// UpdateCategoryRequest body para PUT /api/categories/:id. Solo renombra;
// mover un nodo de padre no está soportado.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
}
