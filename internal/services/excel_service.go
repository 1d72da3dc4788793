// internal/services/excel_service.go
package services

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/eterials/menu-backend/internal/models"
)

// ExcelService handles bulk product import and the downloadable
// template. Each row goes through the product service so all catalog
// rules apply.
type ExcelService struct {
	products   *ProductService
	categories *CategoryService
}

const productSheet = "Productos"

var templateHeaders = []string{"Nombre", "Descripción", "Precio", "Categoría", "Tipo"}

type ImportRowError struct {
	Row     int    `json:"fila"`
	Message string `json:"error"`
}

type ImportResult struct {
	Created int              `json:"creados"`
	Skipped int              `json:"omitidos"`
	Errors  []ImportRowError `json:"errores,omitempty"`
}

func NewExcelService(products *ProductService, categories *CategoryService) *ExcelService {
	return &ExcelService{products: products, categories: categories}
}

// BuildTemplate produces the import template workbook with headers and
// one example row.
func (s *ExcelService) BuildTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(productSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range templateHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(productSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	example := []interface{}{"Limonada natural", "Limonada con hierbabuena", 8.5, "Bebidas", "simple"}
	for i, value := range example {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(productSheet, cell, value)
	}

	return f, nil
}

// ImportProducts reads a workbook and creates one product per data row.
// Rows that fail validation are collected, not fatal; duplicates count
// as skipped.
func (s *ExcelService) ImportProducts(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewValidationError("No se pudo leer el archivo Excel")
	}
	defer f.Close()

	sheet := productSheet
	if !sheetExists(f, sheet) {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, NewValidationError("No se pudo leer la hoja de productos")
	}
	if len(rows) < 2 {
		return nil, NewValidationError("El archivo no contiene filas de productos")
	}

	categoriesByName, err := s.categoryLookup()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2

		name := cellAt(row, 0)
		if name == "" {
			continue // blank row
		}

		price, err := parsePrice(cellAt(row, 2))
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "Precio inválido"})
			continue
		}

		req := &CreateProductRequest{
			Name:        name,
			Description: cellAt(row, 1),
			Price:       models.FlexFloat(price),
		}

		if categoryName := models.NormalizeName(cellAt(row, 3)); categoryName != "" {
			if id, ok := categoriesByName[categoryName]; ok {
				req.CategoryID = models.FlexID{Value: &id}
			} else {
				result.Errors = append(result.Errors, ImportRowError{
					Row:     rowNum,
					Message: fmt.Sprintf("Categoría desconocida: %s", cellAt(row, 3)),
				})
				continue
			}
		}

		if kind := strings.ToLower(cellAt(row, 4)); kind != "" {
			req.Kind = models.ProductKind(kind)
		}

		if _, err := s.products.CreateProduct(req); err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.Created++
	}

	logrus.WithFields(logrus.Fields{
		"creados":  result.Created,
		"omitidos": result.Skipped,
		"errores":  len(result.Errors),
	}).Info("Product import finished")

	return result, nil
}

func (s *ExcelService) categoryLookup() (map[string]uint, error) {
	categories, err := s.categories.ListCategories(true)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]uint, len(categories))
	for _, category := range categories {
		lookup[models.NormalizeName(category.Title)] = category.ID
	}
	return lookup, nil
}

func sheetExists(f *excelize.File, name string) bool {
	for _, sheet := range f.GetSheetList() {
		if sheet == name {
			return true
		}
	}
	return false
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parsePrice(raw string) (float64, error) {
	raw = strings.ReplaceAll(raw, "$", "")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty price")
	}
	return strconv.ParseFloat(raw, 64)
}
