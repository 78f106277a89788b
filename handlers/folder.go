package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/afoster8/flashcard-app-redux/models"
	"github.com/afoster8/flashcard-app-redux/utils"
)

// GET /auth/get-folders
func (db *DBHandler) GetFolders(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var folders []models.Folder
	if err := db.Where("user_id = ?", user.ID).Order("position asc").Find(&folders).Error; err != nil {
		log.Error().Err(err).Msgf("GetFolders: failed for userID=%d", user.ID)
		http.Error(w, "Failed to fetch folders", http.StatusInternalServerError)
		return
	}

	names := make([]string, 0, len(folders))
	for _, folder := range folders {
		names = append(names, folder.Name)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(names)
}

// PUT /auth/update-folders
// Whole-list replace. Decks referencing a removed folder keep the dangling
// name; folder deletion never cascades into decks.
func (db *DBHandler) UpdateFolders(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Folders []string `json:"folders"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	seen := make(map[string]bool, len(req.Folders))
	for _, name := range req.Folders {
		if name == "" || len(name) > 30 {
			http.Error(w, fmt.Sprintf("Invalid folder name %q", name), http.StatusBadRequest)
			return
		}
		if seen[name] {
			http.Error(w, fmt.Sprintf("Duplicate folder name %q", name), http.StatusBadRequest)
			return
		}
		seen[name] = true
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Folder{}).Error; err != nil {
			return err
		}
		for i, name := range req.Folders {
			folder := models.Folder{UserID: user.ID, Name: name, Position: i}
			if err := tx.Create(&folder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msgf("UpdateFolders: failed for userID=%d", user.ID)
		http.Error(w, "Failed to update folders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Folder updated successfully"})
}
