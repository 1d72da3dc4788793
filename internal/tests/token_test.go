// internal/tests/token_test.go
package tests

import (
	"time"

	"github.com/eterials/menu-backend/internal/utils"
)

func generateTestToken(username, secret string) (string, error) {
	return utils.GenerateStaffToken(username, "staff", secret, time.Hour)
}
