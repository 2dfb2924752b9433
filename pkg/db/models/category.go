package models

// Category groups tours for browsing and filtering.
type Category struct {
	ID          uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string  `gorm:"column:name;not null"`
	Description *string `gorm:"column:description"`
	ImageURL    *string `gorm:"column:image_url"`
}
