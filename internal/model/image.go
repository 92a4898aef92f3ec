package model

import "time"

type Image struct {
	UUID        string    `db:"uuid" json:"uuid"`
	OwnerUUID   string    `db:"owner_uuid" json:"owner_uuid"`
	URL         string    `db:"url" json:"url"`
	PublicID    string    `db:"public_id" json:"public_id"`
	ImageName   string    `db:"image_name" json:"image_name"`
	Description string    `db:"description" json:"description"`
	Tags        []string  `db:"-" json:"tags"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Transformation : параметры операции удаленного сервиса трансформации.
// Внутренние алгоритмы сервиса нас не касаются, наружу уходит только
// идентификатор изображения и набор параметров.
type Transformation struct {
	Operation string `json:"operation"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Object    string `json:"object,omitempty"`
	Color     string `json:"color,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Поддерживаемые операции трансформации
const (
	TransformResize     = "resize"
	TransformRecolor    = "recolor"
	TransformCropFace   = "crop_face"
	TransformSign       = "sign"
	TransformExpand169  = "expand_16_9"
	TransformExpand916  = "expand_9_16"
	TransformVignette   = "vignette"
	TransformBlackWhite = "black_white"
)
