// internal/models/common.go
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Enums
type ProductKind string

const (
	ProductKindSimple   ProductKind = "simple"
	ProductKindPrepared ProductKind = "preparado"
)

type RatingCategory string

const (
	RatingCategoryService  RatingCategory = "servicio"
	RatingCategoryFood     RatingCategory = "comida"
	RatingCategoryAmbience RatingCategory = "ambiente"
	RatingCategoryGeneral  RatingCategory = "general"
)

type CommentKind string

const (
	CommentKindSuggestion CommentKind = "sugerencia"
	CommentKindComplaint  CommentKind = "queja"
	CommentKindPraise     CommentKind = "felicitacion"
	CommentKindGeneral    CommentKind = "general"
)

type NotificationKind string

const (
	NotificationKindCallWaiter   NotificationKind = "llamar_mesero"
	NotificationKindSpecialOrder NotificationKind = "pedido_especial"
	NotificationKindEmergency    NotificationKind = "emergencia"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "baja"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "alta"
	PriorityUrgent NotificationPriority = "urgente"
)

// FlexFloat accepts JSON numbers and numeric strings. Admin forms post
// prices like "6.00", so both shapes arrive on the wire.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// FlexBool accepts true/false, "true"/"false", "on", "1", 1, etc.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.Trim(string(data), `"`))
	switch s {
	case "1", "true", "t", "yes", "y", "on":
		*b = true
	case "0", "false", "f", "no", "n", "off":
		*b = false
	case "", "null":
		*b = true
	default:
		if n, err := strconv.Atoi(s); err == nil {
			*b = n != 0
			return nil
		}
		*b = true
	}
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// FlexID accepts numbers, numeric strings and the empty string
// (empty means "no parent assigned").
type FlexID struct {
	Value *uint
}

func (id *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		id.Value = nil
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		id.Value = nil
		return nil
	}
	u := uint(v)
	id.Value = &u
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	if id.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*id.Value)
}

// NormalizeName lowercases and trims a product name. The catalog enforces
// uniqueness over this form through a database unique index.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
