package models

import (
	"time"

	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
)

// OrderLineItem is one purchased product inside an order's items payload.
type OrderLineItem struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
	Price     int  `json:"price"`
}

// Order records a submitted store purchase, line items snapshotted as jsonb.
type Order struct {
	ID           uint              `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerName string            `gorm:"column:customer_name;not null"`
	Email        string            `gorm:"column:email;not null"`
	Phone        string            `gorm:"column:phone;not null"`
	Address      string            `gorm:"column:address;not null"`
	City         string            `gorm:"column:city;not null"`
	ZipCode      *string           `gorm:"column:zip_code"`
	Items        []OrderLineItem   `gorm:"column:items;type:jsonb;serializer:json;not null"`
	TotalAmount  int               `gorm:"column:total_amount;not null"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
}
