package models

import (
	"time"

	"github.com/lib/pq"
)

// Project types. Every project belongs to exactly one of the two sites.
const (
	TypeResidential = "residential"
	TypeIndustrial  = "industrial"
)

// Project represents one portfolio entry shown in the public galleries.
// Images holds display URLs in gallery order; index 0 is the cover image and
// is mirrored in the Image field for the older front-end code paths.
type Project struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Type        string          `json:"type" gorm:"index;not null"`
	Category    string          `json:"category" gorm:"not null"`
	Title       string          `json:"title" gorm:"not null"`
	Location    string          `json:"location"`
	Area        string          `json:"area"`
	Duration    string          `json:"duration"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Images      pq.StringArray  `json:"images" gorm:"type:text[]"`
	Coordinates pq.Float64Array `json:"coordinates,omitempty" gorm:"type:float8[]"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// NormalizeType maps arbitrary input to a valid project type. Anything that
// is not exactly "residential" counts as industrial.
func NormalizeType(t string) string {
	if t == TypeResidential {
		return TypeResidential
	}
	return TypeIndustrial
}

// NormalizeCategory maps an upload category tag to the closed set used to
// namespace stored images. Unrecognized values fall back to residential
// instead of failing the request.
func NormalizeCategory(c string) string {
	switch c {
	case TypeResidential, TypeIndustrial:
		return c
	}
	return TypeResidential
}
