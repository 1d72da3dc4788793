// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/utils"
)

// AuthRequired protects staff routes with a Bearer JWT.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Autenticación requerida", nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Formato de autorización inválido", nil)
			c.Abort()
			return
		}

		claims, err := utils.ValidateStaffToken(parts[1], jwtSecret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Token inválido o expirado", nil)
			c.Abort()
			return
		}

		c.Set("staff_user", claims.Username)
		c.Set("staff_role", claims.Role)
		c.Next()
	}
}
