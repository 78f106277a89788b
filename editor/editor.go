// Package editor maintains a mutable working copy of a deck. Edits stay
// local until Save commits the whole deck at once; nothing is partially
// persisted.
package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/afoster8/flashcard-app-redux/store"
	"github.com/rs/zerolog/log"
)

// Field names the editable sides of a card.
type Field string

const (
	FieldFront Field = "front"
	FieldBack  Field = "back"
)

// Editor holds a working copy of one deck. It is not safe for concurrent
// use. Two editors over the same deck do not see each other's edits; the
// last save wins.
type Editor struct {
	store   store.DeckStore
	deck    store.Deck
	loaded  bool
	message string
}

// New returns an editor bound to the given store.
func New(st store.DeckStore) *Editor {
	return &Editor{store: st}
}

// Load fetches the deck and makes it the working copy.
func (e *Editor) Load(ctx context.Context, id string) error {
	e.message = ""
	deck, err := e.store.FetchDeck(ctx, id)
	if err != nil {
		log.Error().Err(err).Msgf("Load: error fetching deck %s", id)
		e.message = "Error fetching deck"
		return err
	}
	e.deck = *deck
	e.loaded = true
	return nil
}

// Deck returns a snapshot of the working copy.
func (e *Editor) Deck() store.Deck {
	snapshot := e.deck
	snapshot.Cards = append([]store.Card(nil), e.deck.Cards...)
	snapshot.Folder = append([]string(nil), e.deck.Folder...)
	return snapshot
}

// Message is the user-visible message for the last save or load, empty on
// success.
func (e *Editor) Message() string { return e.message }

// SetName replaces the deck name. Length limits are enforced by the input
// boundary, not here.
func (e *Editor) SetName(name string) {
	e.deck.Name = name
}

// SetFolder assigns the deck to a single folder; an empty name clears the
// assignment.
func (e *Editor) SetFolder(name string) {
	if name == "" {
		e.deck.Folder = nil
		return
	}
	e.deck.Folder = []string{name}
}

// AddCard appends a blank, unstarred card to the end of the deck.
func (e *Editor) AddCard() {
	e.deck.Cards = append(e.deck.Cards, store.Card{Front: "", Back: "", Starred: false})
}

// EditCardField replaces one side of the card at index.
func (e *Editor) EditCardField(index int, field Field, value string) error {
	if index < 0 || index >= len(e.deck.Cards) {
		return fmt.Errorf("card index %d out of range", index)
	}
	switch field {
	case FieldFront:
		e.deck.Cards[index].Front = value
	case FieldBack:
		e.deck.Cards[index].Back = value
	default:
		return fmt.Errorf("unknown card field %q", field)
	}
	return nil
}

// DeleteCard removes the card at index; later cards shift down by one.
func (e *Editor) DeleteCard(index int) error {
	if index < 0 || index >= len(e.deck.Cards) {
		return fmt.Errorf("card index %d out of range", index)
	}
	e.deck.Cards = append(e.deck.Cards[:index], e.deck.Cards[index+1:]...)
	return nil
}

// Save sanitizes the card list and commits the whole deck in display order.
// New cards go up without IDs; the store assigns them. On failure the
// working copy is left exactly as it was.
func (e *Editor) Save(ctx context.Context) error {
	e.message = ""
	if !e.loaded {
		return fmt.Errorf("save deck: no deck loaded")
	}

	sanitized := store.SanitizeCards(e.deck.Cards)
	if strings.TrimSpace(e.deck.Name) == "" || len(sanitized) == 0 {
		e.message = "Error updating deck. Check if there are empty fields."
		return fmt.Errorf("save deck: %w", store.ErrValidationFailed)
	}

	out := e.deck
	out.Cards = sanitized
	if err := e.store.SaveDeck(ctx, &out); err != nil {
		log.Error().Err(err).Msgf("Save: error updating deck %s", e.deck.ID)
		e.message = "Error updating deck"
		return err
	}
	return nil
}

// DeleteDeck removes the deck from the store and discards the working copy.
func (e *Editor) DeleteDeck(ctx context.Context) error {
	e.message = ""
	if !e.loaded {
		return fmt.Errorf("delete deck: no deck loaded")
	}
	if err := e.store.DeleteDeck(ctx, e.deck.ID); err != nil {
		log.Error().Err(err).Msgf("DeleteDeck: error deleting deck %s", e.deck.ID)
		e.message = "Error deleting deck"
		return err
	}
	e.deck = store.Deck{}
	e.loaded = false
	return nil
}
