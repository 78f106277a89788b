package store

import "context"

// DeckStore is what the session controller and deck editor need from the
// persistence side. The canonical state lives behind this interface; callers
// hold copies, and conflicting saves are resolved last-write-wins.
type DeckStore interface {
	FetchDecks(ctx context.Context) ([]Deck, error)
	FetchDeck(ctx context.Context, id string) (*Deck, error)
	SaveDeck(ctx context.Context, deck *Deck) error
	CreateDeck(ctx context.Context, name string, cards []Card, folder []string) error
	DeleteDeck(ctx context.Context, id string) error
	UpdateCardStar(ctx context.Context, deckID, cardID string, starred bool) error
	FetchFolders(ctx context.Context) ([]string, error)
	SaveFolders(ctx context.Context, folders []string) error
}
