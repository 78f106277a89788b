// Package session drives a study pass over a deck: guarded navigation,
// card-flip visibility, starring, and the end-of-deck actions (restart,
// starred-only filter, shuffle).
package session

import (
	"context"
	"math/rand/v2"

	"github.com/afoster8/flashcard-app-redux/store"
	"github.com/rs/zerolog/log"
)

// State of a study session.
type State int

const (
	// Loading: no deck yet, either the initial fetch is outstanding or it
	// failed. There is no automatic retry out of this state.
	Loading State = iota
	// Active: a card is showing.
	Active
	// Finished: navigated past the last card.
	Finished
	// Empty: the current working set has no cards. Only Restart leaves it.
	Empty
)

// Controller holds the active deck and the derived working set. The working
// set is a view of pointers into the deck's cards, so a mutation (starring)
// is observed by both the full deck and any filtered view by construction.
//
// A Controller is not safe for concurrent use; all operations are expected
// to run on a single interaction thread.
type Controller struct {
	store store.DeckStore
	mode  StarMode

	deck     *store.Deck
	working  []*store.Card
	pos      int
	revealed bool
	state    State
	message  string
}

// New returns a controller in Loading state. mode selects the star-toggle
// failure policy; OptimisticStars matches the historical behavior.
func New(st store.DeckStore, mode StarMode) *Controller {
	return &Controller{store: st, mode: mode, state: Loading}
}

// Start fetches the deck and begins the session. On fetch failure the
// controller stays in Loading with a user-visible message.
func (c *Controller) Start(ctx context.Context, deckID string) error {
	c.message = ""
	deck, err := c.store.FetchDeck(ctx, deckID)
	if err != nil {
		log.Error().Err(err).Msgf("Start: error fetching deck %s", deckID)
		c.message = "Error fetching deck"
		return err
	}

	c.deck = deck
	c.resetWorkingSet()
	return nil
}

// resetWorkingSet rebuilds the working set as the full deck in original
// order and restarts at the first card.
func (c *Controller) resetWorkingSet() {
	c.working = make([]*store.Card, 0, len(c.deck.Cards))
	for i := range c.deck.Cards {
		c.working = append(c.working, &c.deck.Cards[i])
	}
	c.begin()
}

func (c *Controller) begin() {
	c.pos = 0
	c.revealed = false
	if len(c.working) == 0 {
		c.state = Empty
		return
	}
	c.state = Active
}

// State reports the current session state.
func (c *Controller) State() State { return c.state }

// Position is the index of the current card within the working set.
func (c *Controller) Position() int { return c.pos }

// Revealed reports whether the back of the current card is showing.
func (c *Controller) Revealed() bool { return c.revealed }

// Length is the size of the current working set.
func (c *Controller) Length() int { return len(c.working) }

// Message is the user-visible error message for the last failed operation,
// empty when the last operation succeeded.
func (c *Controller) Message() string { return c.message }

// Deck returns the full deck backing the session, nil before Start succeeds.
func (c *Controller) Deck() *store.Deck { return c.deck }

// Current returns the card at the current position, nil outside Active.
func (c *Controller) Current() *store.Card {
	if c.state != Active {
		return nil
	}
	return c.working[c.pos]
}

// Reveal flips the current card. Toggling twice returns to the front.
func (c *Controller) Reveal() {
	if c.state != Active {
		return
	}
	c.revealed = !c.revealed
}

// Next advances to the next card, or finishes the session on the last card.
// This is the single forward-navigation entry point; keyboard and button
// input both land here.
func (c *Controller) Next() {
	if c.state != Active {
		return
	}
	if c.pos < len(c.working)-1 {
		c.pos++
		c.revealed = false
		return
	}
	c.state = Finished
	c.revealed = false
}

// Prev moves back one card. From Finished it returns to the last card.
func (c *Controller) Prev() {
	switch c.state {
	case Active:
		if c.pos > 0 {
			c.pos--
			c.revealed = false
		}
	case Finished:
		c.state = Active
		c.pos = len(c.working) - 1
		c.revealed = false
	}
}

// Restart resets the working set to the full deck in original order and
// begins again at the first card. It is the only operation accepted in
// Empty.
func (c *Controller) Restart() {
	if c.state == Loading {
		return
	}
	c.resetWorkingSet()
}

// FilterStarred replaces the working set with the starred cards and
// restarts. A deck with no starred cards yields Empty.
func (c *Controller) FilterStarred() {
	if c.state != Finished {
		return
	}
	filtered := make([]*store.Card, 0, len(c.working))
	for i := range c.deck.Cards {
		if c.deck.Cards[i].Starred {
			filtered = append(filtered, &c.deck.Cards[i])
		}
	}
	c.working = filtered
	c.begin()
}

// Shuffle permutes the working set uniformly at random and restarts at the
// first card. The multiset of cards is unchanged.
func (c *Controller) Shuffle() {
	if c.state != Finished {
		return
	}
	rand.Shuffle(len(c.working), func(i, j int) {
		c.working[i], c.working[j] = c.working[j], c.working[i]
	})
	c.begin()
}

// ToggleStar flips the starred flag of the current card and requests
// persistence. State and position are unchanged. Failure handling follows
// the configured StarMode; either way the error surfaces in Message.
func (c *Controller) ToggleStar(ctx context.Context) error {
	if c.state != Active {
		return nil
	}
	c.message = ""

	card := c.working[c.pos]
	if err := toggleStar(ctx, c.store, c.mode, c.deck.ID, card); err != nil {
		c.message = "Something went wrong"
		return err
	}
	return nil
}
