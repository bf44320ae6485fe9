package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
	"github.com/tu-usuario/ventas-pro/pkg/textnorm"
)

// CategoryUseCase CRUD de la taxonomía de productos (hasta cuatro niveles).
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. Sin ParentID es raíz (nivel 1); con ParentID el
// nivel es el del padre + 1, y colgar de un nodo de nivel 4 es inválido.
func (uc *CategoryUseCase) Create(userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := textnorm.Clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	level := 1
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(userID, in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if parent.Level >= entity.MaxCategoryLevel {
			return nil, domain.ErrInvalidInput
		}
		level = parent.Level + 1
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		ParentID:  in.ParentID,
		Name:      name,
		Level:     level,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría del usuario.
func (uc *CategoryUseCase) GetByID(userID, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(userID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	name := textnorm.Clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	category.Name = name
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría sin hijos.
func (uc *CategoryUseCase) Delete(userID, id string) error {
	category, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	children, err := uc.repo.ListByParent(userID, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(userID, id)
}

// List lista categorías del usuario.
func (uc *CategoryUseCase) List(userID string, limit, offset int) ([]*dto.CategoryResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Children lista los hijos directos de una categoría.
func (uc *CategoryUseCase) Children(userID, id string) ([]*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByParent(userID, id)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:       c.ID,
		ParentID: c.ParentID,
		Name:     c.Name,
		Level:    c.Level,
	}
}
