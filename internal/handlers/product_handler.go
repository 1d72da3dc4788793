// internal/handlers/product_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/models"
	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// productView adds the resolved parent names the admin panel renders.
func productView(p *models.Product) gin.H {
	return gin.H{
		"id":                        p.ID,
		"codigo":                    p.Code,
		"nombre":                    p.Name,
		"descripcion":               p.Description,
		"precio":                    p.Price,
		"categoria_id":              p.CategoryID,
		"categoria_nombre":          p.CategoryName(),
		"subcategoria_id":           p.SubcategoryID,
		"subcategoria_nombre":       p.SubcategoryName(),
		"imagen_url":                p.ImageURL,
		"tiempo_preparacion":        p.PrepTime,
		"instrucciones_preparacion": p.PrepInstructions,
		"notas_cocina":              p.KitchenNotes,
		"disponible":                p.Available,
		"activo":                    p.Active,
		"tipo_producto":             p.Kind,
		"ingredientes":              p.Ingredients,
		"fecha_creacion":            p.CreatedAt,
		"fecha_actualizacion":       p.UpdatedAt,
	}
}

func productViews(products []models.Product) []gin.H {
	views := make([]gin.H, 0, len(products))
	for i := range products {
		views = append(views, productView(&products[i]))
	}
	return views
}

func (h *ProductHandler) List(c *gin.Context) {
	filter := services.ProductFilter{Search: c.Query("buscar")}
	filter.OnlyActive, _ = strconv.ParseBool(c.DefaultQuery("solo_activos", "false"))
	filter.OnlyAvailable, _ = strconv.ParseBool(c.DefaultQuery("solo_disponibles", "false"))

	products, err := h.products.ListProducts(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", productViews(products))
}

// ListByCategory serves the admin panel's category tab.
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "categoriaID")
	if !ok {
		return
	}

	products, err := h.products.ListProducts(services.ProductFilter{CategoryID: &id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", productViews(products))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.products.GetProduct(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", productView(product))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	product, err := h.products.CreateProduct(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Producto creado", productView(product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	product, err := h.products.UpdateProduct(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Producto actualizado", productView(product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Producto eliminado", nil)
}

func (h *ProductHandler) ToggleAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.products.ToggleAvailability(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Disponibilidad actualizada", productView(product))
}

func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.products.GetStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", stats)
}
