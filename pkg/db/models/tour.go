package models

import (
	"github.com/lib/pq"
)

// TourPlanDay is one itinerary entry in a tour's day-by-day plan.
type TourPlanDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MapPoint marks a tour stop on the map.
type MapPoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Title string  `json:"title"`
}

// Tour is a guided travel package. Prices are whole MAD.
type Tour struct {
	ID               uint           `gorm:"column:id;primaryKey;autoIncrement"`
	Title            string         `gorm:"column:title;not null"`
	Description      string         `gorm:"column:description;not null"`
	ShortDescription *string        `gorm:"column:short_description"`
	ImageURL         *string        `gorm:"column:image_url"`
	DurationDays     int            `gorm:"column:duration_days;not null"`
	Price            int            `gorm:"column:price;not null"`
	DiscountPrice    *int           `gorm:"column:discount_price"`
	Locations        pq.StringArray `gorm:"column:locations;type:text[]"`
	Featured         bool           `gorm:"column:featured;not null;default:false"`
	CategoryID       *uint          `gorm:"column:category_id"`
	Rating           float64        `gorm:"column:rating;not null;default:0"`
	ReviewCount      int            `gorm:"column:review_count;not null;default:0"`
	Plan             []TourPlanDay  `gorm:"column:plan;type:jsonb;serializer:json"`
	MapPoints        []MapPoint     `gorm:"column:map_points;type:jsonb;serializer:json"`
}
