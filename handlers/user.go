package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/afoster8/flashcard-app-redux/auth"
	"github.com/afoster8/flashcard-app-redux/models"
	"github.com/afoster8/flashcard-app-redux/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (db *DBHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Pin      string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Pin == "" {
		http.Error(w, "Username and pin are required", http.StatusBadRequest)
		return
	}

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		http.Error(w, "Username already exists", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Register: failed to hash pin")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user := models.User{Username: req.Username, Pin: string(hashed)}
	if err := db.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("Register: failed to create user")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	log.Info().Msgf("Register: created user %s", user.Username)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
}

func (db *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Pin      string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Pin), []byte(req.Pin)); err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := auth.CreateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Login: failed to generate token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	log.Info().Msgf("Login: user %s logged in", user.Username)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (db *DBHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		NewUsername string `json:"newUsername"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewUsername == "" {
		http.Error(w, "New username is required", http.StatusBadRequest)
		return
	}

	user.Username = req.NewUsername
	if err := db.Save(user).Error; err != nil {
		log.Error().Err(err).Msgf("UpdateUsername: failed for userID=%d", user.ID)
		http.Error(w, "Failed to update username", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Username updated successfully"})
}

func (db *DBHandler) UpdatePin(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		NewPin string `json:"newPin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewPin == "" {
		http.Error(w, "New pin is required", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPin), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msgf("UpdatePin: failed to hash pin for userID=%d", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user.Pin = string(hashed)
	if err := db.Save(user).Error; err != nil {
		log.Error().Err(err).Msgf("UpdatePin: failed for userID=%d", user.ID)
		http.Error(w, "Failed to update pin", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "PIN updated successfully"})
}

func (db *DBHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Remove the user's decks, cards, and folders along with the account.
	err := db.Transaction(func(tx *gorm.DB) error {
		var decks []models.Deck
		if err := tx.Where("user_id = ?", user.ID).Find(&decks).Error; err != nil {
			return err
		}
		for i := range decks {
			if err := tx.Where("deck_id = ?", decks[i].ID).Delete(&models.Card{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Deck{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Folder{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		log.Error().Err(err).Msgf("DeleteAccount: failed for userID=%d", user.ID)
		http.Error(w, "Failed to delete account", http.StatusInternalServerError)
		return
	}

	log.Info().Msgf("DeleteAccount: deleted userID=%d", user.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Account deleted successfully"})
}
