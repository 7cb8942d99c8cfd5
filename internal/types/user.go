package types

import (
	"time"

	"github.com/google/uuid"
)

// User rows are created lazily the first time an externally
// authenticated identity syncs. ExternalUID carries the provider's
// opaque id; its unique index is what keeps concurrent first sign-ins
// from producing duplicate rows.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ExternalUID string    `gorm:"uniqueIndex;not null;column:external_uid" json:"external_uid"`
	Email       string    `gorm:"not null;column:email" json:"email"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
