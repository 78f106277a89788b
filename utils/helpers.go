package utils

import (
	"net/http"

	"github.com/afoster8/flashcard-app-redux/middleware"
	"github.com/afoster8/flashcard-app-redux/models"
)

func CurrentUser(r *http.Request) (*models.User, bool) {
	return middleware.UserFromContext(r.Context())
}
