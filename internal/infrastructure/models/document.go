package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document stores one entity of any collection as a JSON body keyed by
// (collection, id).
type Document struct {
	Collection string            `gorm:"type:varchar(64);primaryKey"`
	ID         string            `gorm:"type:varchar(64);primaryKey"`
	Body       datatypes.JSONMap `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Document) TableName() string {
	return "documents"
}
