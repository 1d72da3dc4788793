// internal/handlers/subcategory_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type SubcategoryHandler struct {
	subcategories *services.SubcategoryService
}

func NewSubcategoryHandler(subcategories *services.SubcategoryService) *SubcategoryHandler {
	return &SubcategoryHandler{subcategories: subcategories}
}

func (h *SubcategoryHandler) List(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("categoria_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "categoria_id inválido", nil)
			return
		}
		id := uint(v)
		categoryID = &id
	}

	includeInactive, _ := strconv.ParseBool(c.Query("incluir_inactivas"))
	subcategories, err := h.subcategories.ListSubcategories(categoryID, includeInactive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", subcategories)
}

func (h *SubcategoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	subcategory, err := h.subcategories.GetSubcategory(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", subcategory)
}

func (h *SubcategoryHandler) Create(c *gin.Context) {
	var req services.CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	subcategory, err := h.subcategories.CreateSubcategory(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Subcategoría creada", subcategory)
}

func (h *SubcategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	subcategory, err := h.subcategories.UpdateSubcategory(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Subcategoría actualizada", subcategory)
}

func (h *SubcategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.subcategories.DeleteSubcategory(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Subcategoría eliminada", nil)
}
