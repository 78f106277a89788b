package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afoster8/flashcard-app-redux/config"
	"github.com/afoster8/flashcard-app-redux/handlers"
	"github.com/afoster8/flashcard-app-redux/middleware"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			log.Warn().Msgf(".env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	config.Connect()

	h := &handlers.DBHandler{DB: config.Database}
	mux := http.NewServeMux()

	// Account
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("PUT /auth/update-username", middleware.RequireUser(h.UpdateUsername))
	mux.HandleFunc("PUT /auth/update-pin", middleware.RequireUser(h.UpdatePin))
	mux.HandleFunc("DELETE /auth/delete-account", middleware.RequireUser(h.DeleteAccount))

	// Folders
	mux.HandleFunc("GET /auth/get-folders", middleware.RequireUser(h.GetFolders))
	mux.HandleFunc("PUT /auth/update-folders", middleware.RequireUser(h.UpdateFolders))

	// Decks
	mux.HandleFunc("GET /auth/get-decks", middleware.RequireUser(h.GetDecks))
	mux.HandleFunc("GET /auth/get-deck/{deckID}", middleware.RequireUser(h.GetDeckByID))
	mux.HandleFunc("POST /auth/create-deck", middleware.RequireUser(h.CreateDeck))
	mux.HandleFunc("PUT /auth/update-deck/{deckID}", middleware.RequireUser(h.UpdateDeckByID))
	mux.HandleFunc("DELETE /auth/delete-deck/{deckID}", middleware.RequireUser(h.DeleteDeckByID))

	// Cards
	mux.HandleFunc("PATCH /auth/update-card/{deckID}/{cardID}", middleware.RequireUser(h.UpdateCardStarred))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Env.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	serverAddr := "0.0.0.0:" + config.Env.Port
	log.Info().Msgf("listening on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
