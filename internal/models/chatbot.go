// internal/models/chatbot.go
package models

import "time"

// TableSession tracks one interaction between a physical table (or the bar)
// and the chatbot UI. At most one active session per table.
type TableSession struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Table        string    `json:"mesa" gorm:"column:mesa;size:20;not null;index"`
	CustomerName string    `json:"nombre_cliente" gorm:"column:nombre_cliente;size:100"`
	StartedAt    time.Time `json:"fecha_inicio" gorm:"column:fecha_inicio"`
	LastSeenAt   time.Time `json:"fecha_ultimo_acceso" gorm:"column:fecha_ultimo_acceso"`
	Device       string    `json:"dispositivo" gorm:"column:dispositivo;size:200"`
	ClientIP     string    `json:"ip_cliente" gorm:"column:ip_cliente;size:45"`
	Active       bool      `json:"activa" gorm:"column:activa;index"`

	Ratings       []Rating            `json:"-" gorm:"foreignKey:SessionID"`
	Comments      []Comment           `json:"-" gorm:"foreignKey:SessionID"`
	Notifications []StaffNotification `json:"-" gorm:"foreignKey:SessionID"`
}

func (TableSession) TableName() string { return "chatbot_sesiones" }

// Rating holds a 1-5 star score. One row per (session, category); a second
// submission for the same pair overwrites the first.
type Rating struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SessionID uint           `json:"sesion_id" gorm:"column:sesion_id;not null;uniqueIndex:idx_rating_session_category"`
	Stars     int            `json:"estrellas" gorm:"column:estrellas;not null"`
	Category  RatingCategory `json:"categoria" gorm:"column:categoria;size:50;uniqueIndex:idx_rating_session_category"`
	RatedAt   time.Time      `json:"fecha_calificacion" gorm:"column:fecha_calificacion"`

	Session *TableSession `json:"-" gorm:"foreignKey:SessionID"`
}

func (Rating) TableName() string { return "chatbot_calificaciones" }

type Comment struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	SessionID uint        `json:"sesion_id" gorm:"column:sesion_id;not null;index"`
	Text      string      `json:"texto_comentario" gorm:"column:texto_comentario;type:text;not null"`
	Kind      CommentKind `json:"tipo" gorm:"column:tipo;size:30"`
	CreatedAt time.Time   `json:"fecha_comentario" gorm:"column:fecha_comentario"`
	Moderated bool        `json:"moderado" gorm:"column:moderado"`

	Session *TableSession `json:"-" gorm:"foreignKey:SessionID"`
}

func (Comment) TableName() string { return "chatbot_comentarios" }

type StaffNotification struct {
	ID         uint                 `json:"id" gorm:"primaryKey"`
	SessionID  uint                 `json:"sesion_id" gorm:"column:sesion_id;not null;index"`
	Kind       NotificationKind     `json:"tipo_notificacion" gorm:"column:tipo_notificacion;size:50;not null"`
	Message    string               `json:"mensaje" gorm:"column:mensaje;type:text"`
	Priority   NotificationPriority `json:"prioridad" gorm:"column:prioridad;size:20;default:'normal'"`
	CreatedAt  time.Time            `json:"fecha_notificacion" gorm:"column:fecha_notificacion"`
	Resolved   bool                 `json:"atendida" gorm:"column:atendida;index"`
	ResolvedBy string               `json:"atendida_por" gorm:"column:atendida_por;size:100"`
	ResolvedAt *time.Time           `json:"fecha_atencion" gorm:"column:fecha_atencion"`

	Session *TableSession `json:"-" gorm:"foreignKey:SessionID"`
}

func (StaffNotification) TableName() string { return "chatbot_notificaciones" }

// AnalyticsEvent is an append-only metric row written alongside session and
// feedback activity.
type AnalyticsEvent struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"fecha" gorm:"column:fecha;index"`
	Table        string    `json:"mesa" gorm:"column:mesa;size:20;index"`
	Event        string    `json:"evento" gorm:"column:evento;size:50;index"`
	NumericValue float64   `json:"valor_numerico" gorm:"column:valor_numerico"`
	TextValue    string    `json:"valor_texto" gorm:"column:valor_texto;size:500"`
	Metadata     string    `json:"metadatos" gorm:"column:metadatos;type:text"`
}

func (AnalyticsEvent) TableName() string { return "chatbot_analytics" }
