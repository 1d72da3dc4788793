// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/eterials/menu-backend/internal/models"
	"github.com/eterials/menu-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name        string `json:"nombre" validate:"required,min=1,max=150"`
	Description string `json:"descripcion,omitempty"`
	Icon        string `json:"icono,omitempty"`
	Code        string `json:"codigo,omitempty"`
	SortOrder   int    `json:"orden,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string          `json:"nombre,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string          `json:"descripcion,omitempty"`
	Icon        *string          `json:"icono,omitempty"`
	Code        *string          `json:"codigo,omitempty"`
	SortOrder   *int             `json:"orden,omitempty"`
	Active      *models.FlexBool `json:"activa,omitempty"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("El nombre es requerido")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("El nombre es requerido")
	}

	icon := req.Icon
	if icon == "" {
		icon = DetectCategoryIcon(name)
	}

	code := req.Code
	if code == "" {
		code = GenerateCategoryCode(name)
	}
	code = s.uniqueCode(code)

	category := &models.Category{
		Code:        code,
		Title:       name,
		Description: req.Description,
		Icon:        icon,
		SortOrder:   req.SortOrder,
		Active:      true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// uniqueCode appends a numeric suffix while the generated code collides
// with an existing category.
func (s *CategoryService) uniqueCode(code string) string {
	var count int64
	s.db.Model(&models.Category{}).Where("codigo = ?", code).Count(&count)
	if count == 0 {
		return code
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%02d", code, i)
		var n int64
		s.db.Model(&models.Category{}).Where("codigo = ?", candidate).Count(&n)
		if n == 0 {
			return candidate
		}
	}
}

func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Categoría no encontrada"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// ListCategories returns active categories ordered for display. With
// includeInactive it returns everything.
func (s *CategoryService) ListCategories(includeInactive bool) ([]models.Category, error) {
	query := s.db.Model(&models.Category{}).Order("orden ASC, titulo ASC")
	if !includeInactive {
		query = query.Where("activa = ?", true)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(id uint, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("Datos de categoría inválidos")
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewValidationError("El nombre no puede estar vacío")
		}
		updates["titulo"] = name
	}
	if req.Description != nil {
		updates["descripcion"] = *req.Description
	}
	if req.Icon != nil {
		updates["icono"] = *req.Icon
	}
	if req.Code != nil {
		updates["codigo"] = *req.Code
	}
	if req.SortOrder != nil {
		updates["orden"] = *req.SortOrder
	}
	if req.Active != nil {
		updates["activa"] = bool(*req.Active)
	}

	if len(updates) == 0 {
		return category, nil
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return s.GetCategory(id)
}

// DeleteCategoryStrict refuses to delete a category that still has
// dependent products or subcategories.
func (s *CategoryService) DeleteCategoryStrict(id uint) error {
	category, err := s.GetCategory(id)
	if err != nil {
		return err
	}

	products, subcategories, err := s.dependentCounts(s.db, id)
	if err != nil {
		return err
	}

	if products > 0 || subcategories > 0 {
		var parts []string
		if products > 0 {
			parts = append(parts, fmt.Sprintf("%d producto(s)", products))
		}
		if subcategories > 0 {
			parts = append(parts, fmt.Sprintf("%d subcategoría(s)", subcategories))
		}
		return &ConflictError{
			Message: fmt.Sprintf("La categoría %q tiene %s asociada(s).", category.Title, strings.Join(parts, " y ")),
			Details: map[string]interface{}{
				"productos":     products,
				"subcategorias": subcategories,
			},
		}
	}

	if err := s.db.Delete(category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// DeleteCategoryCascading removes the category, hard-deletes its
// subcategories and leaves dependent products uncategorized. Products are
// never deleted.
func (s *CategoryService) DeleteCategoryCascading(id uint) (productsReassigned int64, subcategoriesDeleted int64, err error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return 0, 0, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		products, subcategories, err := s.dependentCounts(tx, id)
		if err != nil {
			return err
		}
		productsReassigned = products
		subcategoriesDeleted = subcategories

		if err := tx.Where("categoria_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete subcategories: %w", err)
		}

		if err := tx.Model(&models.Product{}).Where("categoria_id = ?", id).
			Updates(map[string]interface{}{"categoria_id": nil, "subcategoria_id": nil}).Error; err != nil {
			return fmt.Errorf("failed to detach products: %w", err)
		}

		if err := tx.Delete(category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		return nil
	})

	return productsReassigned, subcategoriesDeleted, err
}

func (s *CategoryService) dependentCounts(tx *gorm.DB, id uint) (products, subcategories int64, err error) {
	if err = tx.Model(&models.Product{}).Where("categoria_id = ?", id).Count(&products).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count products: %w", err)
	}
	if err = tx.Model(&models.Subcategory{}).Where("categoria_id = ?", id).Count(&subcategories).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count subcategories: %w", err)
	}
	return products, subcategories, nil
}

// PreviewIcon reports the icon and code that would be auto-assigned to a
// category name, without creating anything.
func (s *CategoryService) PreviewIcon(name string) (icon, code string, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", NewValidationError("Nombre requerido")
	}
	return DetectCategoryIcon(name), GenerateCategoryCode(name), nil
}
