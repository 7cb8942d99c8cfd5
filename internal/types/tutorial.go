package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Tutorial stores a saved study card. The card body is kept as one JSON
// document: its shape is whatever the extraction pipeline produced and
// the UI is responsible for defaulting absent fields.
type Tutorial struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`

	Topic    string         `gorm:"column:topic" json:"topic"`
	Level    string         `gorm:"column:level" json:"level"`
	Category string         `gorm:"column:category" json:"category"`
	Language string         `gorm:"column:language" json:"language"`
	Tutorial datatypes.JSON `gorm:"column:tutorial" json:"tutorial"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Tutorial) TableName() string { return "tutorial" }
