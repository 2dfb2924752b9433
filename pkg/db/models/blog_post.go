package models

import "time"

// BlogPost is a published travel article.
type BlogPost struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;not null"`
	Content     string    `gorm:"column:content;not null"`
	Excerpt     *string   `gorm:"column:excerpt"`
	ImageURL    *string   `gorm:"column:image_url"`
	Category    string    `gorm:"column:category;not null"`
	PublishDate time.Time `gorm:"column:publish_date;autoCreateTime"`
	Author      string    `gorm:"column:author;not null;default:'Admin'"`
}
