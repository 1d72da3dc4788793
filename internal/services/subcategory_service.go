// internal/services/subcategory_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/eterials/menu-backend/internal/models"
	"github.com/eterials/menu-backend/internal/utils"
)

type SubcategoryService struct {
	db *gorm.DB
}

type CreateSubcategoryRequest struct {
	Name        string        `json:"nombre" validate:"required,min=1,max=150"`
	Description string        `json:"descripcion,omitempty"`
	CategoryID  models.FlexID `json:"categoria_id"`
	Kind        string        `json:"tipo,omitempty"`
	Icon        string        `json:"icono,omitempty"`
	SortOrder   int           `json:"orden,omitempty"`
}

type UpdateSubcategoryRequest struct {
	Name        *string          `json:"nombre,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string          `json:"descripcion,omitempty"`
	CategoryID  *models.FlexID   `json:"categoria_id,omitempty"`
	Kind        *string          `json:"tipo,omitempty"`
	Icon        *string          `json:"icono,omitempty"`
	SortOrder   *int             `json:"orden,omitempty"`
	Active      *models.FlexBool `json:"activa,omitempty"`
}

func NewSubcategoryService(db *gorm.DB) *SubcategoryService {
	return &SubcategoryService{db: db}
}

func (s *SubcategoryService) CreateSubcategory(req *CreateSubcategoryRequest) (*models.Subcategory, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("El nombre es requerido")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("El nombre es requerido")
	}
	if req.CategoryID.Value == nil {
		return nil, NewValidationError("La categoría es requerida")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID.Value).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return nil, NewValidationError("La categoría %d no existe", *req.CategoryID.Value)
	}

	icon := req.Icon
	if icon == "" {
		icon = DetectCategoryIcon(name)
	}

	subcategory := &models.Subcategory{
		Name:        name,
		Description: req.Description,
		CategoryID:  *req.CategoryID.Value,
		Kind:        req.Kind,
		Icon:        icon,
		SortOrder:   req.SortOrder,
		Active:      true,
	}

	if err := s.db.Create(subcategory).Error; err != nil {
		return nil, fmt.Errorf("failed to create subcategory: %w", err)
	}
	return subcategory, nil
}

func (s *SubcategoryService) GetSubcategory(id uint) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	if err := s.db.First(&subcategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Subcategoría no encontrada"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &subcategory, nil
}

// ListSubcategories filters by category when categoryID is non-nil.
func (s *SubcategoryService) ListSubcategories(categoryID *uint, includeInactive bool) ([]models.Subcategory, error) {
	query := s.db.Model(&models.Subcategory{}).Order("orden ASC, nombre ASC")
	if categoryID != nil {
		query = query.Where("categoria_id = ?", *categoryID)
	}
	if !includeInactive {
		query = query.Where("activa = ?", true)
	}

	var subcategories []models.Subcategory
	if err := query.Find(&subcategories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subcategories: %w", err)
	}
	return subcategories, nil
}

func (s *SubcategoryService) UpdateSubcategory(id uint, req *UpdateSubcategoryRequest) (*models.Subcategory, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("Datos de subcategoría inválidos")
	}

	subcategory, err := s.GetSubcategory(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewValidationError("El nombre no puede estar vacío")
		}
		updates["nombre"] = name
	}
	if req.Description != nil {
		updates["descripcion"] = *req.Description
	}
	if req.CategoryID != nil {
		if req.CategoryID.Value == nil {
			return nil, NewValidationError("La categoría es requerida")
		}
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID.Value).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if count == 0 {
			return nil, NewValidationError("La categoría %d no existe", *req.CategoryID.Value)
		}
		updates["categoria_id"] = *req.CategoryID.Value
	}
	if req.Kind != nil {
		updates["tipo"] = *req.Kind
	}
	if req.Icon != nil {
		updates["icono"] = *req.Icon
	}
	if req.SortOrder != nil {
		updates["orden"] = *req.SortOrder
	}
	if req.Active != nil {
		updates["activa"] = bool(*req.Active)
	}

	if len(updates) == 0 {
		return subcategory, nil
	}

	if err := s.db.Model(subcategory).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update subcategory: %w", err)
	}
	return s.GetSubcategory(id)
}

// DeleteSubcategory refuses while products still reference the
// subcategory.
func (s *SubcategoryService) DeleteSubcategory(id uint) error {
	subcategory, err := s.GetSubcategory(id)
	if err != nil {
		return err
	}

	var products int64
	if err := s.db.Model(&models.Product{}).Where("subcategoria_id = ?", id).Count(&products).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if products > 0 {
		return &ConflictError{
			Message: fmt.Sprintf("La subcategoría %q tiene %d producto(s) asociado(s).", subcategory.Name, products),
			Details: map[string]interface{}{"productos": products},
		}
	}

	if err := s.db.Delete(subcategory).Error; err != nil {
		return fmt.Errorf("failed to delete subcategory: %w", err)
	}
	return nil
}
