package session

import (
	"context"

	"github.com/afoster8/flashcard-app-redux/store"
	"github.com/rs/zerolog/log"
)

// StarMode selects what happens to the local flip when persistence fails.
type StarMode int

const (
	// OptimisticStars keeps the local flip on persistence failure. This
	// matches the source behavior: the user sees the star change even if
	// the server never recorded it.
	OptimisticStars StarMode = iota
	// StrictStars reverts the local flip on persistence failure.
	StrictStars
)

// toggleStar applies the flip locally first, then issues exactly one
// persistence request. Rapid repeated toggles each send their own request;
// the server applies them in arrival order and the last one wins.
func toggleStar(ctx context.Context, st store.DeckStore, mode StarMode, deckID string, card *store.Card) error {
	card.Starred = !card.Starred

	if err := st.UpdateCardStar(ctx, deckID, card.ID, card.Starred); err != nil {
		log.Error().Err(err).Msgf("toggleStar: error updating card %s", card.ID)
		if mode == StrictStars {
			card.Starred = !card.Starred
		}
		return err
	}
	return nil
}
