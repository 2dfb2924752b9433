package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
)

// CustomRequest captures a visitor's tailor-made trip inquiry.
type CustomRequest struct {
	ID                uint                `gorm:"column:id;primaryKey;autoIncrement"`
	FullName          string              `gorm:"column:full_name;not null"`
	Email             string              `gorm:"column:email;not null"`
	Phone             *string             `gorm:"column:phone"`
	Destination       string              `gorm:"column:destination;not null"`
	Budget            string              `gorm:"column:budget;not null"`
	DepartureDate     string              `gorm:"column:departure_date;not null"`
	Persons           int                 `gorm:"column:persons;not null"`
	DurationDays      *int                `gorm:"column:duration_days"`
	Interests         pq.StringArray      `gorm:"column:interests;type:text[]"`
	AdditionalDetails *string             `gorm:"column:additional_details"`
	Status            enums.RequestStatus `gorm:"column:status;not null;default:'new'"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
}
