// internal/services/excel_service_test.go
package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestImportProductsFromWorkbook(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db)
	products := NewProductService(db)
	svc := NewExcelService(products, categories)

	_, err := categories.CreateCategory(&CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	f := excelize.NewFile()
	_, err = f.NewSheet(productSheet)
	require.NoError(t, err)

	rows := [][]interface{}{
		{"Nombre", "Descripción", "Precio", "Categoría", "Tipo"},
		{"Limonada", "Con hierbabuena", "8.50", "Bebidas", "simple"},
		{"Ajiaco", "Tradicional", 18, "", "preparado"},
		{"Limonada", "Duplicado", 9, "Bebidas", ""},
		{"Sin precio", "x", "", "", ""},
		{"Mal padre", "x", 5, "NoExiste", ""},
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, f.SetCellValue(productSheet, cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	result, err := svc.ImportProducts(&buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Errors, 2)

	imported, err := products.ListProducts(ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, imported, 2)
}

func TestBuildTemplateHasHeaders(t *testing.T) {
	db := newTestDB(t)
	svc := NewExcelService(NewProductService(db), NewCategoryService(db))

	f, err := svc.BuildTemplate()
	require.NoError(t, err)

	rows, err := f.GetRows(productSheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, templateHeaders, rows[0])
}
