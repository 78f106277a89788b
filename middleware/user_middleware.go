package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/afoster8/flashcard-app-redux/auth"
	"github.com/afoster8/flashcard-app-redux/config"
	"github.com/afoster8/flashcard-app-redux/models"
	"github.com/rs/zerolog/log"
)

type contextKey string

const userKey = contextKey("user")

// RequireUser validates the bearer token, loads the matching user row, and
// attaches it to the request context for downstream handlers.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			http.Error(w, "Unauthorized: Missing token", http.StatusUnauthorized)
			return
		}

		userID, err := auth.VerifyToken(tokenString)
		if err != nil {
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := config.Database.First(&user, userID).Error; err != nil {
			log.Warn().Msgf("RequireUser: token for missing userID=%d", userID)
			http.Error(w, "Unauthorized: Unknown user", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// UserFromContext returns the user attached by RequireUser, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
