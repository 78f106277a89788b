// Package codec converts decks to and from the bulk import/export text
// format: cards separated by five newlines, front and back separated by a
// single tab. The JSON export carries only name and card text.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/afoster8/flashcard-app-redux/store"
)

const (
	// RecordSeparator sits between cards in the text format. Five newlines
	// so that multi-line card content with blank lines survives.
	RecordSeparator = "\n\n\n\n\n"
	// FieldSeparator sits between front and back.
	FieldSeparator = "\t"
)

// ParseError reports the first record that failed to parse. Record numbers
// are 1-based for the user's benefit.
type ParseError struct {
	Record int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Record, e.Reason)
}

// ParseText parses delimited text into cards. Every record must yield
// exactly two non-empty fields; otherwise the whole import is rejected and
// nothing is returned. Imported cards are unstarred and have no ID.
func ParseText(text string) ([]store.Card, error) {
	records := strings.Split(text, RecordSeparator)

	cards := make([]store.Card, 0, len(records))
	for i, record := range records {
		fields := strings.Split(record, FieldSeparator)
		if len(fields) != 2 {
			return nil, &ParseError{Record: i + 1, Reason: fmt.Sprintf("expected 2 fields, got %d", len(fields))}
		}

		front := strings.TrimSpace(fields[0])
		back := strings.TrimSpace(fields[1])
		if front == "" || back == "" {
			return nil, &ParseError{Record: i + 1, Reason: "empty field"}
		}

		cards = append(cards, store.Card{Front: front, Back: back, Starred: false})
	}
	return cards, nil
}

// ExportText renders the deck's cards in the delimited text format,
// the structural inverse of ParseText. IDs and starring are omitted.
func ExportText(deck *store.Deck) string {
	records := make([]string, 0, len(deck.Cards))
	for _, card := range deck.Cards {
		records = append(records, card.Front+FieldSeparator+card.Back)
	}
	return strings.Join(records, RecordSeparator)
}

// ExportJSON renders the deck as indented JSON with only the name and the
// card text, matching the text export's field policy.
func ExportJSON(deck *store.Deck) ([]byte, error) {
	type cardJSON struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	}
	out := struct {
		Name  string     `json:"name"`
		Cards []cardJSON `json:"cards"`
	}{Name: deck.Name, Cards: make([]cardJSON, 0, len(deck.Cards))}

	for _, card := range deck.Cards {
		out.Cards = append(out.Cards, cardJSON{Front: card.Front, Back: card.Back})
	}
	return json.MarshalIndent(out, "", "  ")
}
