// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/eterials/menu-backend/internal/models"
	"github.com/eterials/menu-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name             string             `json:"nombre" validate:"required,min=1,max=100"`
	Description      string             `json:"descripcion,omitempty" validate:"omitempty,max=500"`
	Price            models.FlexFloat   `json:"precio"`
	CategoryID       models.FlexID      `json:"categoria_id,omitempty"`
	SubcategoryID    models.FlexID      `json:"subcategoria_id,omitempty"`
	ImageURL         string             `json:"imagen_url,omitempty"`
	PrepTime         string             `json:"tiempo_preparacion,omitempty"`
	PrepInstructions string             `json:"instrucciones_preparacion,omitempty"`
	KitchenNotes     string             `json:"notas_cocina,omitempty"`
	Kind             models.ProductKind `json:"tipo_producto,omitempty"`
}

type UpdateProductRequest struct {
	Name             *string             `json:"nombre,omitempty" validate:"omitempty,min=1,max=100"`
	Description      *string             `json:"descripcion,omitempty" validate:"omitempty,max=500"`
	Price            *models.FlexFloat   `json:"precio,omitempty"`
	CategoryID       *models.FlexID      `json:"categoria_id,omitempty"`
	SubcategoryID    *models.FlexID      `json:"subcategoria_id,omitempty"`
	ImageURL         *string             `json:"imagen_url,omitempty"`
	PrepTime         *string             `json:"tiempo_preparacion,omitempty"`
	PrepInstructions *string             `json:"instrucciones_preparacion,omitempty"`
	KitchenNotes     *string             `json:"notas_cocina,omitempty"`
	Available        *models.FlexBool    `json:"disponible,omitempty"`
	Active           *models.FlexBool    `json:"activo,omitempty"`
	Kind             *models.ProductKind `json:"tipo_producto,omitempty"`
}

type ProductFilter struct {
	CategoryID    *uint
	SubcategoryID *uint
	OnlyActive    bool
	OnlyAvailable bool
	Search        string
}

type ProductStats struct {
	Total         int64 `json:"total"`
	Active        int64 `json:"activos"`
	Available     int64 `json:"disponibles"`
	Uncategorized int64 `json:"sin_categoria"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("El nombre es requerido")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("El nombre es requerido")
	}

	price := float64(req.Price)
	if price <= 0 {
		return nil, NewValidationError("El precio debe ser mayor que cero")
	}

	if err := s.checkParents(req.CategoryID.Value, req.SubcategoryID.Value); err != nil {
		return nil, err
	}

	normalized := models.NormalizeName(name)
	if existing, err := s.findByNormalizedName(normalized, 0); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, duplicateProductError(existing)
	}

	kind := req.Kind
	if kind == "" {
		kind = models.ProductKindSimple
	}
	if kind != models.ProductKindSimple && kind != models.ProductKindPrepared {
		return nil, NewValidationError("Tipo de producto inválido: %s", kind)
	}

	product := &models.Product{
		Name:             name,
		NameNormalized:   normalized,
		Description:      strings.TrimSpace(req.Description),
		Price:            price,
		CategoryID:       req.CategoryID.Value,
		SubcategoryID:    req.SubcategoryID.Value,
		ImageURL:         req.ImageURL,
		PrepTime:         req.PrepTime,
		PrepInstructions: req.PrepInstructions,
		KitchenNotes:     req.KitchenNotes,
		Available:        true,
		Active:           true,
		Kind:             kind,
	}

	if err := s.db.Create(product).Error; err != nil {
		// The unique index on the normalized name is the source of truth;
		// a concurrent insert between the pre-check and here lands on it.
		if isUniqueViolation(err) {
			if existing, ferr := s.findByNormalizedName(normalized, 0); ferr == nil && existing != nil {
				return nil, duplicateProductError(existing)
			}
			return nil, &ConflictError{Message: fmt.Sprintf("Ya existe un producto con el nombre %q", name)}
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return s.GetProduct(product.ID)
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Subcategory").Preload("Ingredients").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Producto no encontrado"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) ListProducts(filter ProductFilter) ([]models.Product, error) {
	query := s.db.Model(&models.Product{}).
		Preload("Category").Preload("Subcategory").
		Order("nombre ASC")

	if filter.CategoryID != nil {
		query = query.Where("categoria_id = ?", *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		query = query.Where("subcategoria_id = ?", *filter.SubcategoryID)
	}
	if filter.OnlyActive {
		query = query.Where("activo = ?", true)
	}
	if filter.OnlyAvailable {
		query = query.Where("disponible = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + models.NormalizeName(search) + "%"
		query = query.Where("nombre_normalizado LIKE ? OR descripcion LIKE ?", like, like)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *ProductService) UpdateProduct(id uint, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("Datos de producto inválidos")
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewValidationError("El nombre no puede estar vacío")
		}
		normalized := models.NormalizeName(name)
		if normalized != product.NameNormalized {
			if existing, err := s.findByNormalizedName(normalized, id); err != nil {
				return nil, err
			} else if existing != nil {
				return nil, duplicateProductError(existing)
			}
		}
		updates["nombre"] = name
		updates["nombre_normalizado"] = normalized
	}
	if req.Description != nil {
		updates["descripcion"] = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		price := float64(*req.Price)
		if price < 0 {
			return nil, NewValidationError("El precio no puede ser negativo")
		}
		updates["precio"] = price
	}

	categoryID := product.CategoryID
	subcategoryID := product.SubcategoryID
	if req.CategoryID != nil {
		categoryID = req.CategoryID.Value
		updates["categoria_id"] = req.CategoryID.Value
	}
	if req.SubcategoryID != nil {
		subcategoryID = req.SubcategoryID.Value
		updates["subcategoria_id"] = req.SubcategoryID.Value
	}
	if req.CategoryID != nil || req.SubcategoryID != nil {
		if err := s.checkParents(categoryID, subcategoryID); err != nil {
			return nil, err
		}
	}

	if req.ImageURL != nil {
		updates["imagen_url"] = *req.ImageURL
	}
	if req.PrepTime != nil {
		updates["tiempo_preparacion"] = *req.PrepTime
	}
	if req.PrepInstructions != nil {
		updates["instrucciones_preparacion"] = *req.PrepInstructions
	}
	if req.KitchenNotes != nil {
		updates["notas_cocina"] = *req.KitchenNotes
	}
	if req.Available != nil {
		updates["disponible"] = bool(*req.Available)
	}
	if req.Active != nil {
		updates["activo"] = bool(*req.Active)
	}
	if req.Kind != nil {
		if *req.Kind != models.ProductKindSimple && *req.Kind != models.ProductKindPrepared {
			return nil, NewValidationError("Tipo de producto inválido: %s", *req.Kind)
		}
		updates["tipo_producto"] = *req.Kind
	}

	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Message: "Ya existe un producto con ese nombre"}
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(id)
}

// DeleteProduct removes the product and its ingredients in one
// transaction.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete ingredients: %w", err)
		}
		if err := tx.Delete(product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// ToggleAvailability flips the quick kitchen-facing availability flag.
func (s *ProductService) ToggleAvailability(id uint) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(product).Update("disponible", !product.Available).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle availability: %w", err)
	}
	return s.GetProduct(id)
}

func (s *ProductService) GetStats() (*ProductStats, error) {
	stats := &ProductStats{}

	if err := s.db.Model(&models.Product{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	s.db.Model(&models.Product{}).Where("activo = ?", true).Count(&stats.Active)
	s.db.Model(&models.Product{}).Where("disponible = ?", true).Count(&stats.Available)
	s.db.Model(&models.Product{}).Where("categoria_id IS NULL").Count(&stats.Uncategorized)

	return stats, nil
}

func (s *ProductService) findByNormalizedName(normalized string, excludeID uint) (*models.Product, error) {
	query := s.db.Where("nombre_normalizado = ?", normalized)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// checkParents validates the category and subcategory references and
// their consistency with each other.
func (s *ProductService) checkParents(categoryID, subcategoryID *uint) error {
	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *categoryID).Count(&count).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if count == 0 {
			return NewValidationError("La categoría %d no existe", *categoryID)
		}
	}

	if subcategoryID != nil {
		var subcategory models.Subcategory
		if err := s.db.First(&subcategory, *subcategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("La subcategoría %d no existe", *subcategoryID)
			}
			return fmt.Errorf("database error: %w", err)
		}
		if categoryID != nil && subcategory.CategoryID != *categoryID {
			return NewValidationError("La subcategoría no pertenece a la categoría indicada")
		}
	}

	return nil
}

func duplicateProductError(existing *models.Product) *ConflictError {
	return &ConflictError{
		Message: fmt.Sprintf("Ya existe un producto con el nombre %q", existing.Name),
		Details: map[string]interface{}{
			"producto_existente": map[string]interface{}{
				"id":     existing.ID,
				"nombre": existing.Name,
				"precio": existing.Price,
			},
		},
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
