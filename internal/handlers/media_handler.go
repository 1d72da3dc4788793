// internal/handlers/media_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type MediaHandler struct {
	storage *services.StorageService
}

func NewMediaHandler(storage *services.StorageService) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// UploadImage stores a product image and returns its public URL.
func (h *MediaHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("imagen")
	if err != nil {
		// Some panel forms post the file under "archivo".
		file, err = c.FormFile("archivo")
	}
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "No se envió ningún archivo", nil)
		return
	}

	stored, err := h.storage.SaveImage(file, "productos")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"url":     stored.URL,
		"archivo": stored.FileName,
	})
}
