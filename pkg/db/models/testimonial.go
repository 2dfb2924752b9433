package models

// Testimonial is a traveler review shown on the home page.
type Testimonial struct {
	ID      uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Name    string  `gorm:"column:name;not null"`
	Country string  `gorm:"column:country;not null"`
	Avatar  *string `gorm:"column:avatar"`
	Rating  int     `gorm:"column:rating;not null"`
	Comment string  `gorm:"column:comment;not null"`
}
