package models

import "gorm.io/gorm"

// Deck represents a collection of flashcards
type Deck struct {
	gorm.Model
	PublicID string `gorm:"size:100;uniqueIndex"`
	UserID   uint   `gorm:"not null;index"`
	Name     string `gorm:"not null;size:120"`
	Folder   string `gorm:"size:30"` // at most one folder name; empty when unassigned

	Cards []Card `gorm:"foreignKey:DeckID"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
