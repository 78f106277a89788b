package models

import "gorm.io/gorm"

// Folder is a plain label owned by a user. Decks reference folders by name
// only, so deleting a folder leaves any decks assigned to it untouched.
type Folder struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index"`
	Name     string `gorm:"not null;size:30"`
	Position int    `gorm:"not null"`
}
