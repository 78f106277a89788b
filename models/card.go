package models

import "gorm.io/gorm"

// Card represents an individual flashcard. Position is the card's place in
// the deck's display order, which is also study-session order.
type Card struct {
	gorm.Model
	PublicID string `gorm:"size:100;uniqueIndex"`
	DeckID   uint   `gorm:"not null;index"`
	Front    string `gorm:"not null;size:1000"`
	Back     string `gorm:"not null;size:1000"`
	Starred  bool   `gorm:"not null;default:false"`
	Position int    `gorm:"not null"`

	Deck Deck `gorm:"foreignKey:DeckID" json:"-"`
}
