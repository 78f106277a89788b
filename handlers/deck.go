package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/afoster8/flashcard-app-redux/models"
	"github.com/afoster8/flashcard-app-redux/utils"
)

type DBHandler struct {
	*gorm.DB
}

// Wire shapes shared by the deck endpoints.
type cardResponse struct {
	ID      string `json:"id,omitempty"`
	Front   string `json:"front"`
	Back    string `json:"back"`
	Starred bool   `json:"starred"`
}

type deckResponse struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Folder []string       `json:"folder"`
	Cards  []cardResponse `json:"cards"`
}

func buildDeckResponse(deck *models.Deck) deckResponse {
	folder := []string{}
	if deck.Folder != "" {
		folder = []string{deck.Folder}
	}

	cards := make([]cardResponse, 0, len(deck.Cards))
	for _, card := range deck.Cards {
		cards = append(cards, cardResponse{
			ID:      card.PublicID,
			Front:   card.Front,
			Back:    card.Back,
			Starred: card.Starred,
		})
	}

	return deckResponse{
		ID:     deck.PublicID,
		Name:   deck.Name,
		Folder: folder,
		Cards:  cards,
	}
}

// sanitizeIncomingCards applies the persistence policy to a submitted card
// list: blank-both cards are dropped, a single blank side becomes "...".
// Order is preserved. The server is the authority for this rule even though
// clients apply it too.
func sanitizeIncomingCards(cards []cardResponse) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		front := strings.TrimSpace(card.Front)
		back := strings.TrimSpace(card.Back)

		if front == "" && back == "" {
			continue
		}
		if front == "" {
			card.Front = "..."
		}
		if back == "" {
			card.Back = "..."
		}
		out = append(out, card)
	}
	return out
}

func singleFolder(folder []string) string {
	if len(folder) == 0 {
		return ""
	}
	return folder[0]
}

// GET /auth/get-decks
func (db *DBHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var decks []models.Deck
	err := db.
		Where("user_id = ?", user.ID).
		Preload("Cards", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		Find(&decks).Error
	if err != nil {
		log.Error().Err(err).Msgf("GetDecks: failed for userID=%d", user.ID)
		http.Error(w, "Failed to fetch decks", http.StatusInternalServerError)
		return
	}

	response := make([]deckResponse, 0, len(decks))
	for i := range decks {
		response = append(response, buildDeckResponse(&decks[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string][]deckResponse{"decks": response})
}

// GET /auth/get-deck/{deckID}
func (db *DBHandler) GetDeckByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deckID := r.PathValue("deckID")
	var deck models.Deck
	err := db.
		Where("public_id = ? AND user_id = ?", deckID, user.ID).
		Preload("Cards", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		First(&deck).Error
	if err != nil {
		log.Warn().Msgf("GetDeckByID: deck not found for public_id=%s", deckID)
		http.Error(w, fmt.Sprintf("Deck with ID %s not found", deckID), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(buildDeckResponse(&deck))
}

// POST /auth/create-deck
func (db *DBHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		DeckName    string         `json:"deckName"`
		Cards       []cardResponse `json:"cards"`
		FolderArray []string       `json:"folderArray"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.DeckName) == "" {
		http.Error(w, "Deck name is required", http.StatusBadRequest)
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		log.Error().Err(err).Msg("CreateDeck: failed to generate publicID")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	deck := models.Deck{
		PublicID: publicID,
		UserID:   user.ID,
		Name:     req.DeckName,
		Folder:   singleFolder(req.FolderArray),
	}

	cards := sanitizeIncomingCards(req.Cards)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deck).Error; err != nil {
			return err
		}
		for i, card := range cards {
			cardID, err := gonanoid.New()
			if err != nil {
				return err
			}
			row := models.Card{
				PublicID: cardID,
				DeckID:   deck.ID,
				Front:    card.Front,
				Back:     card.Back,
				Starred:  card.Starred,
				Position: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msgf("CreateDeck: failed for userID=%d", user.ID)
		http.Error(w, "Failed to create deck", http.StatusInternalServerError)
		return
	}

	log.Info().Msgf("CreateDeck: created deck %s for userID=%d", deck.PublicID, user.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Deck created successfully", "id": deck.PublicID})
}

// PUT /auth/update-deck/{deckID}
// Whole-deck replace: name, folder assignment, and the full card list in
// display order. Cards missing from the payload are deleted.
func (db *DBHandler) UpdateDeckByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deckID := r.PathValue("deckID")
	var deck models.Deck
	if err := db.Where("public_id = ? AND user_id = ?", deckID, user.ID).First(&deck).Error; err != nil {
		log.Warn().Msgf("UpdateDeckByID: deck not found for public_id=%s", deckID)
		http.Error(w, fmt.Sprintf("Deck with ID %s not found", deckID), http.StatusNotFound)
		return
	}

	var req struct {
		Name   string         `json:"name"`
		Folder []string       `json:"folder"`
		Cards  []cardResponse `json:"cards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cards := sanitizeIncomingCards(req.Cards)
	if strings.TrimSpace(req.Name) == "" || len(cards) == 0 {
		http.Error(w, "Deck must have a name and at least one card", http.StatusBadRequest)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		deck.Name = req.Name
		deck.Folder = singleFolder(req.Folder)
		if err := tx.Save(&deck).Error; err != nil {
			return err
		}

		// Replace the card rows wholesale; incoming order is authoritative.
		// Hard delete: surviving cards are recreated under the same public
		// ID, which a soft-deleted row would collide with.
		if err := tx.Unscoped().Where("deck_id = ?", deck.ID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		for i, card := range cards {
			cardID := card.ID
			if cardID == "" {
				generated, err := gonanoid.New()
				if err != nil {
					return err
				}
				cardID = generated
			}
			row := models.Card{
				PublicID: cardID,
				DeckID:   deck.ID,
				Front:    card.Front,
				Back:     card.Back,
				Starred:  card.Starred,
				Position: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msgf("UpdateDeckByID: failed for deckID=%s", deckID)
		http.Error(w, fmt.Sprintf("Failed to update deck with ID %s", deckID), http.StatusInternalServerError)
		return
	}

	log.Info().Msgf("UpdateDeckByID: updated deckID=%s", deckID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Deck updated successfully"})
}

// DELETE /auth/delete-deck/{deckID}
// Deleting a deck does not touch the user's folder list.
func (db *DBHandler) DeleteDeckByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deckID := r.PathValue("deckID")
	var deck models.Deck
	if err := db.Where("public_id = ? AND user_id = ?", deckID, user.ID).First(&deck).Error; err != nil {
		http.Error(w, fmt.Sprintf("Deck with ID %s not found", deckID), http.StatusNotFound)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deck_id = ?", deck.ID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		return tx.Delete(&deck).Error
	})
	if err != nil {
		log.Error().Err(err).Msgf("DeleteDeckByID: failed for deckID=%s", deckID)
		http.Error(w, fmt.Sprintf("Failed to delete deck with ID %s", deckID), http.StatusInternalServerError)
		return
	}

	log.Info().Msgf("DeleteDeckByID: deleted deckID=%s", deckID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Deck deleted successfully"})
}
