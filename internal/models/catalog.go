// internal/models/catalog.go
package models

import "time"

type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Code        string `json:"codigo" gorm:"column:codigo;size:20;uniqueIndex"`
	Title       string `json:"nombre" gorm:"column:titulo;size:150;not null"`
	Description string `json:"descripcion" gorm:"column:descripcion;type:text"`
	Icon        string `json:"icono" gorm:"column:icono;size:10"`
	SortOrder   int    `json:"orden" gorm:"column:orden;default:0"`
	Active      bool   `json:"activa" gorm:"column:activa"`

	Subcategories []Subcategory `json:"subcategorias,omitempty" gorm:"foreignKey:CategoryID"`
	Products      []Product     `json:"-" gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string { return "categorias" }

type Subcategory struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Code        *string `json:"codigo" gorm:"column:codigo;size:20;uniqueIndex"`
	Name        string  `json:"nombre" gorm:"column:nombre;size:150;not null"`
	Description string  `json:"descripcion" gorm:"column:descripcion;type:text"`
	CategoryID  uint    `json:"categoria_id" gorm:"column:categoria_id;not null;index"`
	Kind        string  `json:"tipo" gorm:"column:tipo;size:50"`
	Icon        string  `json:"icono" gorm:"column:icono;size:10"`
	SortOrder   int     `json:"orden" gorm:"column:orden;default:0"`
	Active      bool    `json:"activa" gorm:"column:activa"`

	Category *Category `json:"-" gorm:"foreignKey:CategoryID"`
	Products []Product `json:"-" gorm:"foreignKey:SubcategoryID"`
}

func (Subcategory) TableName() string { return "subcategorias" }

type Product struct {
	ID   uint    `json:"id" gorm:"primaryKey"`
	Code *string `json:"codigo" gorm:"column:codigo;size:20;uniqueIndex"`
	Name string  `json:"nombre" gorm:"column:nombre;size:100;not null"`
	// Lowercased, trimmed copy of Name; the unique index here is the
	// single source of truth for duplicate detection.
	NameNormalized   string      `json:"-" gorm:"column:nombre_normalizado;size:100;uniqueIndex"`
	Description      string      `json:"descripcion" gorm:"column:descripcion;size:500"`
	Price            float64     `json:"precio" gorm:"column:precio;not null"`
	CategoryID       *uint       `json:"categoria_id" gorm:"column:categoria_id;index"`
	SubcategoryID    *uint       `json:"subcategoria_id" gorm:"column:subcategoria_id;index"`
	ImageURL         string      `json:"imagen_url" gorm:"column:imagen_url;size:500"`
	PrepTime         string      `json:"tiempo_preparacion" gorm:"column:tiempo_preparacion;size:50"`
	PrepInstructions string      `json:"instrucciones_preparacion" gorm:"column:instrucciones_preparacion;type:text"`
	KitchenNotes     string      `json:"notas_cocina" gorm:"column:notas_cocina;type:text"`
	Available        bool        `json:"disponible" gorm:"column:disponible"`
	Active           bool        `json:"activo" gorm:"column:activo"`
	Kind             ProductKind `json:"tipo_producto" gorm:"column:tipo_producto;size:20;default:'simple'"`
	CreatedAt        time.Time   `json:"fecha_creacion" gorm:"column:fecha_creacion"`
	UpdatedAt        time.Time   `json:"fecha_actualizacion" gorm:"column:fecha_actualizacion"`

	Category    *Category    `json:"-" gorm:"foreignKey:CategoryID"`
	Subcategory *Subcategory `json:"-" gorm:"foreignKey:SubcategoryID"`
	Ingredients []Ingredient `json:"ingredientes,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "productos" }

// CategoryName resolves the preloaded category title, if any.
func (p *Product) CategoryName() string {
	if p.Category != nil {
		return p.Category.Title
	}
	return ""
}

func (p *Product) SubcategoryName() string {
	if p.Subcategory != nil {
		return p.Subcategory.Name
	}
	return ""
}

type Ingredient struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Code      *string `json:"codigo" gorm:"column:codigo;size:20;uniqueIndex"`
	ProductID uint    `json:"producto_id" gorm:"column:producto_id;not null;index"`
	Name      string  `json:"nombre" gorm:"column:nombre;size:100;not null"`
	Quantity  string  `json:"cantidad" gorm:"column:cantidad;size:50"`
	Unit      string  `json:"unidad" gorm:"column:unidad;size:20"`
	Cost      float64 `json:"costo" gorm:"column:costo;default:0"`
	Required  bool    `json:"obligatorio" gorm:"column:obligatorio"`
	Active    bool    `json:"activo" gorm:"column:activo"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
}

func (Ingredient) TableName() string { return "ingredientes" }
