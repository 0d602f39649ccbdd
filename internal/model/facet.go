package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Size, Color and ProductName are the name/value lookup rows used to
// parameterize products.

// Size represents a product size facet
type Size struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID   string    `json:"store_id" gorm:"type:uuid;index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Value     string    `json:"value" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Store Store `json:"-" gorm:"foreignKey:StoreID"`
}

// Color represents a product color facet; Value is a hex color string
type Color struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID   string    `json:"store_id" gorm:"type:uuid;index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Value     string    `json:"value" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Store Store `json:"-" gorm:"foreignKey:StoreID"`
}

// ProductName represents a reusable product display name facet
type ProductName struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID   string    `json:"store_id" gorm:"type:uuid;index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Value     string    `json:"value" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Store Store `json:"-" gorm:"foreignKey:StoreID"`
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (s *Size) BeforeCreate(tx *gorm.DB) error {
	s.ID = uuid.NewString()
	return nil
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (c *Color) BeforeCreate(tx *gorm.DB) error {
	c.ID = uuid.NewString()
	return nil
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (p *ProductName) BeforeCreate(tx *gorm.DB) error {
	p.ID = uuid.NewString()
	return nil
}
