// internal/handlers/qr_handler.go
package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
)

type QRHandler struct {
	qr *services.QRService
}

func NewQRHandler(qr *services.QRService) *QRHandler {
	return &QRHandler{qr: qr}
}

// TableQR streams the PNG QR code for a table.
func (h *QRHandler) TableQR(c *gin.Context) {
	table := c.Param("mesa")
	size, _ := strconv.Atoi(c.DefaultQuery("tamano", "256"))

	png, err := h.qr.GenerateTableQR(table, size)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=qr-mesa-%s.png", table))
	c.Data(200, "image/png", png)
}
