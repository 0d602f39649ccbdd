package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a customer order placed against a store
type Order struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID   string    `json:"store_id" gorm:"type:uuid;index;not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(50)"`
	Address   string    `json:"address" gorm:"type:varchar(255)"`
	IsPaid    bool      `json:"is_paid" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Store Store       `json:"-" gorm:"foreignKey:StoreID"`
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a line item referencing a product; quantity and price come
// from the joined product data
type OrderItem struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   string    `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductID string    `json:"product_id" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	o.ID = uuid.NewString()
	return nil
}

// BeforeCreate assigns a server-generated identifier, ignoring any client value
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	i.ID = uuid.NewString()
	return nil
}
