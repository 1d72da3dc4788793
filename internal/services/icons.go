// internal/services/icons.go
package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Keyword table mapping category names to menu icons. Exact match wins,
// then substring, then per-word lookup.
var categoryIcons = map[string]string{
	// Entradas y aperitivos
	"entradas": "🍜", "entrada": "🍜", "aperitivos": "🍜", "aperitivo": "🍜",
	"antipasto": "🍜", "antipastos": "🍜", "bocadillos": "🍜", "bocadillo": "🍜",
	"tapas": "🍜", "tapa": "🍜", "picada": "🍜", "picadas": "🍜",

	// Platos principales
	"platos principales": "🍽️", "plato principal": "🍽️", "principales": "🍽️",
	"almuerzo": "🍽️", "almuerzos": "🍽️", "cena": "🍽️", "cenas": "🍽️",
	"comida": "🍽️", "comidas": "🍽️", "menu": "🍽️", "menú": "🍽️",
	"fuerte": "🍽️", "fuertes": "🍽️", "ejecutivo": "🍽️",

	// Postres y dulces
	"postres": "🧁", "postre": "🧁", "dulces": "🧁", "dulce": "🧁",
	"tortas": "🍰", "torta": "🍰", "pasteles": "🍰", "pastel": "🍰",
	"helados": "🍦", "helado": "🍦", "reposteria": "🧁", "repostería": "🧁",

	// Bebidas
	"bebidas": "🍷", "bebida": "🍷", "drinks": "🍷", "drink": "🍷",
	"cervezas": "🍺", "cerveza": "🍺", "vinos": "🍷", "vino": "🍷",
	"cocteles": "🍸", "coctel": "🍸", "cocktail": "🍸", "cocktails": "🍸",
	"jugos": "🧃", "jugo": "🧃", "refrescos": "🥤", "refresco": "🥤",
	"gaseosas": "🥤", "gaseosa": "🥤", "sodas": "🥤", "soda": "🥤",

	// Bebidas calientes
	"café": "☕", "cafe": "☕", "cafes": "☕", "coffee": "☕",
	"té": "🍵", "te": "🍵", "tes": "🍵", "tea": "🍵",
	"aromaticas": "🍵", "aromáticas": "🍵", "infusiones": "🍵", "infusion": "🍵",

	// Comida específica
	"pizza": "🍕", "pizzas": "🍕", "italiana": "🍕",
	"hamburguesas": "🍔", "hamburguesa": "🍔", "burger": "🍔", "burgers": "🍔",
	"sandwich": "🥪", "sándwich": "🥪", "sandwiches": "🥪",
	"tacos": "🌮", "taco": "🌮", "mexicana": "🌮",
	"sushi": "🍣", "japonesa": "🍣", "asiatica": "🍜", "asiática": "🍜",

	// Ensaladas y saludables
	"ensaladas": "🥗", "ensalada": "🥗", "saludables": "🥗", "saludable": "🥗",
	"light": "🥗", "vegetariana": "🥗", "vegana": "🌱", "veganas": "🌱",

	// Panadería y desayuno
	"panaderia": "🥖", "panadería": "🥖", "panes": "🍞", "pan": "🍞",
	"desayuno": "🥐", "desayunos": "🥐", "tostadas": "🍞", "croissant": "🥐",

	// Snacks
	"snacks": "🍿", "snack": "🍿", "mecato": "🍿", "mecatos": "🍿",
	"papas": "🍟", "fritas": "🍟", "nachos": "🧀", "chips": "🍿",

	// Carnes y proteínas
	"carnes": "🥩", "carne": "🥩", "parrilla": "🥩",
	"pollo": "🍗", "pollos": "🍗", "chicken": "🍗", "aves": "🍗",
	"pescado": "🐟", "pescados": "🐟", "mariscos": "🦐", "marisco": "🦐",

	// Especiales y promociones
	"promociones": "🎉", "promocion": "🎉", "promo": "🎉", "promos": "🎉",
	"especiales": "⭐", "especial": "⭐", "del dia": "⭐", "del día": "⭐",
	"combo": "🍽️", "combos": "🍽️",
}

const defaultCategoryIcon = "🍽️"

// DetectCategoryIcon picks an icon for a category name by keyword.
// Substring matching prefers the longest keyword so "pizzas artesanales"
// resolves through "pizzas" and not a shorter incidental hit.
func DetectCategoryIcon(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))

	if icon, ok := categoryIcons[n]; ok {
		return icon
	}

	best := ""
	for keyword := range categoryIcons {
		if len(keyword) < 4 {
			continue
		}
		if !strings.Contains(n, keyword) && !strings.Contains(keyword, n) {
			continue
		}
		if len(keyword) > len(best) || (len(keyword) == len(best) && keyword < best) {
			best = keyword
		}
	}
	if best != "" {
		return categoryIcons[best]
	}

	for _, word := range strings.Fields(n) {
		if icon, ok := categoryIcons[word]; ok {
			return icon
		}
	}

	return defaultCategoryIcon
}

// GenerateCategoryCode derives a short uppercase code from the category
// name: two letters per word for compound names, four for a single word.
func GenerateCategoryCode(name string) string {
	clean := stripAccents(strings.TrimSpace(name))
	words := strings.Fields(clean)
	if len(words) == 0 {
		return ""
	}

	if len(words) >= 2 {
		var b strings.Builder
		for _, word := range words[:2] {
			b.WriteString(strings.ToUpper(firstN(word, 2)))
		}
		return b.String()
	}

	return strings.ToUpper(firstN(words[0], 4))
}

func firstN(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
