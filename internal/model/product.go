package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog product with its facet references
type Product struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID       string    `json:"store_id" gorm:"type:uuid;index;not null"`
	CategoryID    string    `json:"category_id" gorm:"type:uuid;not null"`
	ProductNameID string    `json:"product_name_id" gorm:"type:uuid;not null"`
	SizeID        string    `json:"size_id" gorm:"type:uuid;not null"`
	ColorID       string    `json:"color_id" gorm:"type:uuid;not null"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Price         float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	IsFeatured    bool      `json:"is_featured" gorm:"default:false"`
	IsArchived    bool      `json:"is_archived" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Store       Store        `json:"-" gorm:"foreignKey:StoreID"`
	Category    *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ProductName *ProductName `json:"product_name,omitempty" gorm:"foreignKey:ProductNameID"`
	Size        *Size        `json:"size,omitempty" gorm:"foreignKey:SizeID"`
	Color       *Color       `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	Images      []Image      `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// Image is owned exclusively by one product and removed with it
type Image struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID string    `json:"product_id" gorm:"type:uuid;index;not null"`
	URL       string    `json:"url" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	p.ID = uuid.NewString()
	return nil
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (i *Image) BeforeCreate(tx *gorm.DB) error {
	i.ID = uuid.NewString()
	return nil
}
