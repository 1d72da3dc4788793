// internal/handlers/import_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type ImportHandler struct {
	excel *services.ExcelService
}

func NewImportHandler(excel *services.ExcelService) *ImportHandler {
	return &ImportHandler{excel: excel}
}

// Template streams the import workbook with headers and an example row.
func (h *ImportHandler) Template(c *gin.Context) {
	f, err := h.excel.BuildTemplate()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="plantilla_productos.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		respondServiceError(c, err)
	}
}

// Import processes an uploaded workbook and reports per-row results.
func (h *ImportHandler) Import(c *gin.Context) {
	file, err := c.FormFile("archivo")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "No se envió ningún archivo", nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "No se pudo abrir el archivo", nil)
		return
	}
	defer src.Close()

	result, err := h.excel.ImportProducts(src)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Importación finalizada", result)
}
