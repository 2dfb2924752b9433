package models

// User is an account that can sign in to the back office.
type User struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Email        string `gorm:"column:email;not null"`
	IsAdmin      bool   `gorm:"column:is_admin;not null;default:false"`
}
