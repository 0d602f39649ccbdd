package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dashboard represents a promotional billboard tied to a store
type Dashboard struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID     string    `json:"store_id" gorm:"type:uuid;index;not null"`
	Label       string    `json:"label" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Store Store `json:"-" gorm:"foreignKey:StoreID"`
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (d *Dashboard) BeforeCreate(tx *gorm.DB) error {
	d.ID = uuid.NewString()
	return nil
}
