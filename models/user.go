package models

import "gorm.io/gorm"

// User represents a user in the system
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null;size:100"`
	Pin      string `gorm:"not null" json:"-"`
	Folders  []Folder `gorm:"foreignKey:UserID"`
	Decks    []Deck   `gorm:"foreignKey:UserID"`
}
