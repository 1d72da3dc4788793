// internal/handlers/category_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.Query("incluir_inactivas"))
	categories, err := h.categories.ListCategories(includeInactive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categories.GetCategory(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	category, err := h.categories.CreateCategory(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Categoría creada", category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	category, err := h.categories.UpdateCategory(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Categoría actualizada", category)
}

// Delete refuses while dependents exist unless ?forzar=true, which
// cascades.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	force, _ := strconv.ParseBool(c.Query("forzar"))
	if !force {
		if err := h.categories.DeleteCategoryStrict(id); err != nil {
			respondServiceError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Categoría eliminada", nil)
		return
	}

	products, subcategories, err := h.categories.DeleteCategoryCascading(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Categoría eliminada", gin.H{
		"productos_desvinculados":   products,
		"subcategorias_eliminadas": subcategories,
	})
}

// PreviewIcon reports the icon and code that a category name would get.
func (h *CategoryHandler) PreviewIcon(c *gin.Context) {
	var req struct {
		Name string `json:"nombre"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	icon, code, err := h.categories.PreviewIcon(req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"icono":  icon,
		"codigo": code,
	})
}
