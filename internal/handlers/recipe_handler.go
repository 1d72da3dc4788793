// internal/handlers/recipe_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type RecipeHandler struct {
	recipes *services.RecipeService
}

func NewRecipeHandler(recipes *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) List(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ingredients, err := h.recipes.ListIngredients(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	cost, err := h.recipes.RecipeCost(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"ingredientes": ingredients,
		"costo_receta": cost,
	})
}

func (h *RecipeHandler) Create(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	ingredient, err := h.recipes.AddIngredient(productID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Ingrediente agregado", ingredient)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	ingredientID, ok := parseIDParam(c, "ingredienteID")
	if !ok {
		return
	}

	var req services.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	ingredient, err := h.recipes.UpdateIngredient(ingredientID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ingrediente actualizado", ingredient)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	ingredientID, ok := parseIDParam(c, "ingredienteID")
	if !ok {
		return
	}

	if err := h.recipes.DeleteIngredient(ingredientID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ingrediente eliminado", nil)
}
