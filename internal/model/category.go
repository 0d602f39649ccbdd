package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products under a dashboard. The referenced dashboard must
// belong to the same store; the schema cannot express that, so the handlers
// check it on create and update.
type Category struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID     string    `json:"store_id" gorm:"type:uuid;index;not null"`
	DashboardID string    `json:"dashboard_id" gorm:"type:uuid;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Store     Store      `json:"-" gorm:"foreignKey:StoreID"`
	Dashboard *Dashboard `json:"dashboard,omitempty" gorm:"foreignKey:DashboardID"`
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	c.ID = uuid.NewString()
	return nil
}
