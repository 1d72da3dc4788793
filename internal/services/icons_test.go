// internal/services/icons_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCategoryIcon(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Bebidas", "🍷"},
		{"CERVEZAS", "🍺"},
		{"Postres", "🧁"},
		{"Pizzas artesanales", "🍕"},
		{"Café de origen", "☕"},
		{"Algo totalmente desconocido", "🍽️"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectCategoryIcon(tt.name), "name %q", tt.name)
	}
}

func TestGenerateCategoryCode(t *testing.T) {
	assert.Equal(t, "BEBI", GenerateCategoryCode("Bebidas"))
	assert.Equal(t, "PLPR", GenerateCategoryCode("Platos Principales"))
	assert.Equal(t, "CAES", GenerateCategoryCode("Café Especial"))
	assert.Equal(t, "", GenerateCategoryCode("   "))
}
