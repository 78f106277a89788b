package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/afoster8/flashcard-app-redux/models"
	"github.com/afoster8/flashcard-app-redux/utils"
)

// PATCH /auth/update-card/{deckID}/{cardID}
// Sets the starred flag of one card. Requests are applied in arrival order;
// a client sending rapid toggles gets last-write-wins.
func (db *DBHandler) UpdateCardStarred(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deckID := r.PathValue("deckID")
	cardID := r.PathValue("cardID")

	var deck models.Deck
	if err := db.Where("public_id = ? AND user_id = ?", deckID, user.ID).First(&deck).Error; err != nil {
		http.Error(w, "Deck not found", http.StatusNotFound)
		return
	}

	var card models.Card
	if err := db.Where("public_id = ? AND deck_id = ?", cardID, deck.ID).First(&card).Error; err != nil {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}

	var req struct {
		Starred *bool `json:"starred"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Starred == nil {
		http.Error(w, "Starred status is required", http.StatusBadRequest)
		return
	}

	card.Starred = *req.Starred
	if err := db.Save(&card).Error; err != nil {
		log.Error().Err(err).Msgf("UpdateCardStarred: failed for cardID=%s", cardID)
		http.Error(w, "Failed to update card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Card updated successfully"})
}
