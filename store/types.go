package store

import "strings"

// Placeholder substituted for a blank front or back when the other side has
// content. Policy, not a parsing artifact: half-filled cards are kept.
const Placeholder = "..."

// Card is the wire form of a flashcard. ID is assigned by the store on first
// persistence and is empty on unsaved cards.
type Card struct {
	ID      string `json:"id,omitempty"`
	Front   string `json:"front"`
	Back    string `json:"back"`
	Starred bool   `json:"starred"`
}

// Deck is the wire form of a deck. Folder holds at most one folder name; it
// is a list for forward compatibility. Card order is significant: it is the
// display order and the study-session order.
type Deck struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Folder []string `json:"folder"`
	Cards  []Card   `json:"cards"`
}

// SanitizeCards applies the persistence rules for card content: a card blank
// on both sides is dropped, a card blank on exactly one side has that side
// replaced with the placeholder. Order is preserved. The input is not
// modified.
func SanitizeCards(cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, card := range cards {
		front := strings.TrimSpace(card.Front)
		back := strings.TrimSpace(card.Back)

		if front == "" && back == "" {
			continue
		}
		if front == "" {
			card.Front = Placeholder
		}
		if back == "" {
			card.Back = Placeholder
		}
		out = append(out, card)
	}
	return out
}
