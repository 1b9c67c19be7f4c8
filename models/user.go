package models

import "gorm.io/gorm"

// User is the authenticated identity articles, comments and reactions
// hang off. Engagement endpoints only ever consume its ID and username.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;size:64"`
	Email    string `gorm:"uniqueIndex;size:128"`
	Password string
}

func (User) TableName() string { return "users" }
