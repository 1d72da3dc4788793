// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eterials/menu-backend/internal/models"
)

func TestCreateProductNormalizesAndTrims(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	product, err := svc.CreateProduct(&CreateProductRequest{
		Name:  "  Limonada Natural  ",
		Price: 8.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Limonada Natural", product.Name)
	assert.Equal(t, "limonada natural", product.NameNormalized)
	assert.True(t, product.Available)
	assert.True(t, product.Active)
	assert.Equal(t, models.ProductKindSimple, product.Kind)
}

func TestCreateProductRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	first, err := svc.CreateProduct(&CreateProductRequest{Name: "Limonada", Price: 8})
	require.NoError(t, err)

	_, err = svc.CreateProduct(&CreateProductRequest{Name: "  LIMONADA ", Price: 9})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	existing, ok := conflictErr.Details["producto_existente"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, first.ID, existing["id"])
}

func TestCreateProductPriceRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	var validationErr *ValidationError

	_, err := svc.CreateProduct(&CreateProductRequest{Name: "Agua", Price: 0})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateProduct(&CreateProductRequest{Name: "Agua", Price: -1})
	require.ErrorAs(t, err, &validationErr)

	product, err := svc.CreateProduct(&CreateProductRequest{Name: "Agua", Price: 3})
	require.NoError(t, err)

	// Updates allow a free price but never a negative one.
	zero := models.FlexFloat(0)
	_, err = svc.UpdateProduct(product.ID, &UpdateProductRequest{Price: &zero})
	require.NoError(t, err)

	negative := models.FlexFloat(-5)
	_, err = svc.UpdateProduct(product.ID, &UpdateProductRequest{Price: &negative})
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdateProductRenameChecksUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	_, err := svc.CreateProduct(&CreateProductRequest{Name: "Limonada", Price: 8})
	require.NoError(t, err)
	second, err := svc.CreateProduct(&CreateProductRequest{Name: "Naranjada", Price: 8})
	require.NoError(t, err)

	taken := "limonada"
	_, err = svc.UpdateProduct(second.ID, &UpdateProductRequest{Name: &taken})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	// Renaming to itself with different casing is allowed.
	sameName := "NARANJADA"
	updated, err := svc.UpdateProduct(second.ID, &UpdateProductRequest{Name: &sameName})
	require.NoError(t, err)
	assert.Equal(t, "NARANJADA", updated.Name)
}

func TestDeleteProductRemovesIngredients(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)
	recipes := NewRecipeService(db)

	product, err := products.CreateProduct(&CreateProductRequest{
		Name:  "Ajiaco",
		Price: 18,
		Kind:  models.ProductKindPrepared,
	})
	require.NoError(t, err)

	_, err = recipes.AddIngredient(product.ID, &CreateIngredientRequest{Name: "Pollo", Quantity: "200", Unit: "g"})
	require.NoError(t, err)
	_, err = recipes.AddIngredient(product.ID, &CreateIngredientRequest{Name: "Guascas"})
	require.NoError(t, err)

	require.NoError(t, products.DeleteProduct(product.ID))

	var count int64
	db.Model(&models.Ingredient{}).Where("producto_id = ?", product.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateProductValidatesParents(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)
	categories := NewCategoryService(db)
	subcategories := NewSubcategoryService(db)

	missing := uint(999)
	_, err := products.CreateProduct(&CreateProductRequest{
		Name:       "Ajiaco",
		Price:      18,
		CategoryID: models.FlexID{Value: &missing},
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	// Subcategory must belong to the given category.
	catA, err := categories.CreateCategory(&CreateCategoryRequest{Name: "Comidas"})
	require.NoError(t, err)
	catB, err := categories.CreateCategory(&CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	sub, err := subcategories.CreateSubcategory(&CreateSubcategoryRequest{
		Name:       "Sopas",
		CategoryID: models.FlexID{Value: &catA.ID},
	})
	require.NoError(t, err)

	_, err = products.CreateProduct(&CreateProductRequest{
		Name:          "Ajiaco",
		Price:         18,
		CategoryID:    models.FlexID{Value: &catB.ID},
		SubcategoryID: models.FlexID{Value: &sub.ID},
	})
	require.ErrorAs(t, err, &validationErr)
}

func TestRecipeCostSumsActiveIngredients(t *testing.T) {
	db := newTestDB(t)
	products := NewProductService(db)
	recipes := NewRecipeService(db)

	product, err := products.CreateProduct(&CreateProductRequest{Name: "Ajiaco", Price: 18})
	require.NoError(t, err)

	_, err = recipes.AddIngredient(product.ID, &CreateIngredientRequest{Name: "Pollo", Cost: 5})
	require.NoError(t, err)
	second, err := recipes.AddIngredient(product.ID, &CreateIngredientRequest{Name: "Crema", Cost: 2})
	require.NoError(t, err)

	inactive := models.FlexBool(false)
	_, err = recipes.UpdateIngredient(second.ID, &UpdateIngredientRequest{Active: &inactive})
	require.NoError(t, err)

	cost, err := recipes.RecipeCost(product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5, cost, 0.001)
}
