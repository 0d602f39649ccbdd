package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the tenant root. Every catalog row traces back to exactly one
// store, and every request is scoped by the store's owner.
type Store struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	OwnerUserID string    `json:"owner_user_id" gorm:"type:varchar(255);index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	s.ID = uuid.NewString()
	return nil
}
