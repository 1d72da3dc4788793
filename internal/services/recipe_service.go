// internal/services/recipe_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/eterials/menu-backend/internal/models"
	"github.com/eterials/menu-backend/internal/utils"
)

// RecipeService manages the ingredient lists hanging off prepared
// products.
type RecipeService struct {
	db *gorm.DB
}

type CreateIngredientRequest struct {
	Name     string           `json:"nombre" validate:"required,min=1,max=100"`
	Quantity string           `json:"cantidad,omitempty"`
	Unit     string           `json:"unidad,omitempty"`
	Cost     models.FlexFloat `json:"costo,omitempty"`
	Required *models.FlexBool `json:"obligatorio,omitempty"`
}

type UpdateIngredientRequest struct {
	Name     *string           `json:"nombre,omitempty" validate:"omitempty,min=1,max=100"`
	Quantity *string           `json:"cantidad,omitempty"`
	Unit     *string           `json:"unidad,omitempty"`
	Cost     *models.FlexFloat `json:"costo,omitempty"`
	Required *models.FlexBool  `json:"obligatorio,omitempty"`
	Active   *models.FlexBool  `json:"activo,omitempty"`
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func (s *RecipeService) AddIngredient(productID uint, req *CreateIngredientRequest) (*models.Ingredient, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("El nombre del ingrediente es requerido")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("El nombre del ingrediente es requerido")
	}

	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}

	cost := float64(req.Cost)
	if cost < 0 {
		return nil, NewValidationError("El costo no puede ser negativo")
	}

	required := true
	if req.Required != nil {
		required = bool(*req.Required)
	}

	ingredient := &models.Ingredient{
		ProductID: productID,
		Name:      name,
		Quantity:  strings.TrimSpace(req.Quantity),
		Unit:      strings.TrimSpace(req.Unit),
		Cost:      cost,
		Required:  required,
		Active:    true,
	}

	if err := s.db.Create(ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *RecipeService) GetIngredient(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Ingrediente no encontrado"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &ingredient, nil
}

func (s *RecipeService) ListIngredients(productID uint) ([]models.Ingredient, error) {
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}

	var ingredients []models.Ingredient
	err := s.db.Where("producto_id = ?", productID).
		Order("obligatorio DESC, nombre ASC").
		Find(&ingredients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *RecipeService) UpdateIngredient(id uint, req *UpdateIngredientRequest) (*models.Ingredient, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("Datos de ingrediente inválidos")
	}

	ingredient, err := s.GetIngredient(id)
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
	if req.Quantity != nil {
		updates["cantidad"] = strings.TrimSpace(*req.Quantity)
	}
	if req.Unit != nil {
		updates["unidad"] = strings.TrimSpace(*req.Unit)
	}
	if req.Cost != nil {
		cost := float64(*req.Cost)
		if cost < 0 {
			return nil, NewValidationError("El costo no puede ser negativo")
		}
		updates["costo"] = cost
	}
	if req.Required != nil {
		updates["obligatorio"] = bool(*req.Required)
	}
	if req.Active != nil {
		updates["activo"] = bool(*req.Active)
	}

	if len(updates) == 0 {
		return ingredient, nil
	}

	if err := s.db.Model(ingredient).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	return s.GetIngredient(id)
}

func (s *RecipeService) DeleteIngredient(id uint) error {
	ingredient, err := s.GetIngredient(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(ingredient).Error; err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	return nil
}

// RecipeCost sums the cost of a product's active ingredients.
func (s *RecipeService) RecipeCost(productID uint) (float64, error) {
	if err := s.requireProduct(productID); err != nil {
		return 0, err
	}

	var total float64
	err := s.db.Model(&models.Ingredient{}).
		Where("producto_id = ? AND activo = ?", productID, true).
		Select("COALESCE(SUM(costo), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum ingredient costs: %w", err)
	}
	return total, nil
}

func (s *RecipeService) requireProduct(productID uint) error {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return &NotFoundError{Message: "Producto no encontrado"}
	}
	return nil
}
