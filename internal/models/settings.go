// internal/models/settings.go
package models

import "time"

// Setting is a typed key/value configuration row. The settings service is
// the only reader and writer.
type Setting struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"clave" gorm:"column:clave;size:100;not null;uniqueIndex"`
	Value       string    `json:"valor" gorm:"column:valor;type:text;not null"`
	Kind        string    `json:"tipo" gorm:"column:tipo;size:20;default:'string'"` // string, integer, boolean, json
	Description string    `json:"descripcion" gorm:"column:descripcion;type:text"`
	UpdatedAt   time.Time `json:"fecha_modificacion" gorm:"column:fecha_modificacion"`
}

func (Setting) TableName() string { return "chatbot_configuracion" }

// Background is an uploaded chatbot background image.
type Background struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"nombre" gorm:"column:nombre;size:100;not null;uniqueIndex"`
	Description  string     `json:"descripcion" gorm:"column:descripcion;type:text"`
	FileURL      string     `json:"archivo_url" gorm:"column:archivo_url;size:500;not null"`
	OriginalName string     `json:"archivo_original" gorm:"column:archivo_original;size:200"`
	FileType     string     `json:"tipo_archivo" gorm:"column:tipo_archivo;size:10"`
	FileSize     int64      `json:"tamano_archivo" gorm:"column:tamano_archivo"`
	Active       bool       `json:"activo" gorm:"column:activo"`
	UploadedAt   time.Time  `json:"fecha_subida" gorm:"column:fecha_subida"`
	LastUsedAt   *time.Time `json:"fecha_uso" gorm:"column:fecha_uso"`
	UseCount     int        `json:"uso_contador" gorm:"column:uso_contador"`
}

func (Background) TableName() string { return "fondos_personalizados" }

// Default settings seeded on first start.
var DefaultSettings = []Setting{
	{Key: "saludo_manana", Value: "Buenos días", Kind: "string", Description: "Saludo para horas de la mañana (6:00 - 11:59)"},
	{Key: "saludo_tarde", Value: "Buenas tardes", Kind: "string", Description: "Saludo para horas de la tarde (12:00 - 17:59)"},
	{Key: "saludo_noche", Value: "Buenas noches", Kind: "string", Description: "Saludo para horas de la noche (18:00 - 5:59)"},
	{Key: "sesion_timeout", Value: "10", Kind: "integer", Description: "Minutos de inactividad antes de cerrar una sesión"},
	{Key: "notificaciones_habilitadas", Value: "true", Kind: "boolean", Description: "Habilitar sistema de notificaciones al personal"},
	{Key: "fondo_activo", Value: "", Kind: "string", Description: "Fondo actualmente activo en el chatbot"},
}
