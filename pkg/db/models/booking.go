package models

import (
	"time"

	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
)

// Booking is a confirmed-or-pending reservation for one tour departure.
type Booking struct {
	ID         uint                `gorm:"column:id;primaryKey;autoIncrement"`
	TourID     uint                `gorm:"column:tour_id;not null"`
	FullName   string              `gorm:"column:full_name;not null"`
	Email      string              `gorm:"column:email;not null"`
	Phone      string              `gorm:"column:phone;not null"`
	StartDate  string              `gorm:"column:start_date;not null"`
	Persons    int                 `gorm:"column:persons;not null"`
	TotalPrice int                 `gorm:"column:total_price;not null"`
	Status     enums.BookingStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
}
