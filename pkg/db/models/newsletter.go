package models

import "time"

// Newsletter is one subscribed email address.
type Newsletter struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
