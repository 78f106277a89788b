package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/afoster8/flashcard-app-redux/config"
	"github.com/afoster8/flashcard-app-redux/middleware"
	"github.com/afoster8/flashcard-app-redux/models"
	"github.com/afoster8/flashcard-app-redux/store"
)

// newTestServer spins up the full route table over a fresh sqlite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	config.Env.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Folder{}, &models.Deck{}, &models.Card{}))
	config.Database = db

	h := &DBHandler{DB: db}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("PUT /auth/update-username", middleware.RequireUser(h.UpdateUsername))
	mux.HandleFunc("PUT /auth/update-pin", middleware.RequireUser(h.UpdatePin))
	mux.HandleFunc("DELETE /auth/delete-account", middleware.RequireUser(h.DeleteAccount))
	mux.HandleFunc("GET /auth/get-folders", middleware.RequireUser(h.GetFolders))
	mux.HandleFunc("PUT /auth/update-folders", middleware.RequireUser(h.UpdateFolders))
	mux.HandleFunc("GET /auth/get-decks", middleware.RequireUser(h.GetDecks))
	mux.HandleFunc("GET /auth/get-deck/{deckID}", middleware.RequireUser(h.GetDeckByID))
	mux.HandleFunc("POST /auth/create-deck", middleware.RequireUser(h.CreateDeck))
	mux.HandleFunc("PUT /auth/update-deck/{deckID}", middleware.RequireUser(h.UpdateDeckByID))
	mux.HandleFunc("DELETE /auth/delete-deck/{deckID}", middleware.RequireUser(h.DeleteDeckByID))
	mux.HandleFunc("PATCH /auth/update-card/{deckID}/{cardID}", middleware.RequireUser(h.UpdateCardStarred))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	return resp
}

// registerAndLogin creates a user and returns a store client holding a
// valid bearer token.
func registerAndLogin(t *testing.T, srv *httptest.Server) *store.HTTPStore {
	t.Helper()

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{"username": "ada", "pin": "1234"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{"username": "ada", "pin": "1234"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()
	require.NotEmpty(t, login.Token)

	return store.NewHTTPStore(srv.URL, login.Token)
}

func TestRegister_Validation(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{"username": "", "pin": "1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/register", map[string]string{"username": "ada", "pin": "1234"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Duplicate username is rejected.
	resp = postJSON(t, srv.URL+"/auth/register", map[string]string{"username": "ada", "pin": "5678"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLogin_WrongPin(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv)

	resp := postJSON(t, srv.URL+"/auth/login", map[string]string{"username": "ada", "pin": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthenticatedRoutes_RejectBadToken(t *testing.T) {
	srv := newTestServer(t)

	s := store.NewHTTPStore(srv.URL, "not-a-token")
	_, err := s.FetchDeck(context.Background(), "d1")
	assert.ErrorIs(t, err, store.ErrUnauthorized)

	_, err = s.FetchFolders(context.Background())
	assert.ErrorIs(t, err, store.ErrUnauthorized)
}

func TestDeckLifecycle(t *testing.T) {
	srv := newTestServer(t)
	s := registerAndLogin(t, srv)
	ctx := context.Background()

	cards := []store.Card{
		{Front: "hola", Back: "hello"},
		{Front: "adios", Back: "goodbye"},
		{Front: "gato", Back: "cat"},
	}
	require.NoError(t, s.CreateDeck(ctx, "Spanish", cards, []string{"Languages"}))

	// The created deck comes back with store-assigned IDs and the
	// submitted card order.
	deckID := fetchOnlyDeckID(t, s)
	deck, err := s.FetchDeck(ctx, deckID)
	require.NoError(t, err)
	assert.Equal(t, "Spanish", deck.Name)
	assert.Equal(t, []string{"Languages"}, deck.Folder)
	require.Len(t, deck.Cards, 3)
	assert.Equal(t, "hola", deck.Cards[0].Front)
	assert.Equal(t, "adios", deck.Cards[1].Front)
	assert.Equal(t, "gato", deck.Cards[2].Front)
	for _, card := range deck.Cards {
		assert.NotEmpty(t, card.ID)
		assert.False(t, card.Starred)
	}

	// Reorder and edit, then save the whole deck; order is authoritative.
	deck.Cards[0], deck.Cards[2] = deck.Cards[2], deck.Cards[0]
	deck.Cards[1].Back = "farewell"
	deck.Cards = append(deck.Cards, store.Card{Front: "perro", Back: "dog"})
	require.NoError(t, s.SaveDeck(ctx, deck))

	reloaded, err := s.FetchDeck(ctx, deckID)
	require.NoError(t, err)
	require.Len(t, reloaded.Cards, 4)
	assert.Equal(t, "gato", reloaded.Cards[0].Front)
	assert.Equal(t, "farewell", reloaded.Cards[1].Back)
	assert.Equal(t, "hola", reloaded.Cards[2].Front)
	assert.Equal(t, "perro", reloaded.Cards[3].Front)
	assert.NotEmpty(t, reloaded.Cards[3].ID)

	// Existing cards keep their identity across a whole-deck save.
	assert.Equal(t, deck.Cards[0].ID, reloaded.Cards[0].ID)

	require.NoError(t, s.DeleteDeck(ctx, deckID))
	_, err = s.FetchDeck(ctx, deckID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateDeck_ServerSideSanitization(t *testing.T) {
	srv := newTestServer(t)
	s := registerAndLogin(t, srv)
	ctx := context.Background()

	require.NoError(t, s.CreateDeck(ctx, "Spanish", []store.Card{{Front: "hola", Back: "hello"}}, nil))
	deckID := fetchOnlyDeckID(t, s)
	deck, err := s.FetchDeck(ctx, deckID)
	require.NoError(t, err)

	deck.Cards = append(deck.Cards,
		store.Card{Front: "solo", Back: ""},
		store.Card{Front: "", Back: ""},
	)
	require.NoError(t, s.SaveDeck(ctx, deck))

	reloaded, err := s.FetchDeck(ctx, deckID)
	require.NoError(t, err)
	require.Len(t, reloaded.Cards, 2)
	assert.Equal(t, "...", reloaded.Cards[1].Back)
}

func TestUpdateDeck_RejectsEmptyDeck(t *testing.T) {
	srv := newTestServer(t)
	s := registerAndLogin(t, srv)
	ctx := context.Background()

	require.NoError(t, s.CreateDeck(ctx, "Spanish", []store.Card{{Front: "hola", Back: "hello"}}, nil))
	deckID := fetchOnlyDeckID(t, s)
	deck, err := s.FetchDeck(ctx, deckID)
	require.NoError(t, err)

	deck.Cards = []store.Card{{Front: "", Back: ""}}
	err = s.SaveDeck(ctx, deck)
	assert.ErrorIs(t, err, store.ErrValidationFailed)
}

func TestUpdateCardStarred(t *testing.T) {
	srv := newTestServer(t)
	s := registerAndLogin(t, srv)
	ctx := context.Background()

	require.NoError(t, s.CreateDeck(ctx, "Spanish", []store.Card{{Front: "hola", Back: "hello"}}, nil))
	deckID := fetchOnlyDeckID(t, s)
	deck, err := s.FetchDeck(ctx, deckID)
	require.NoError(t, err)

	require.NoError(t, s.UpdateCardStar(ctx, deckID, deck.Cards[0].ID, true))
	reloaded, err := s.FetchDeck(ctx, deckID)
	require.NoError(t, err)
	assert.True(t, reloaded.Cards[0].Starred)

	err = s.UpdateCardStar(ctx, deckID, "missing-card", true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFolders_ReplaceAndDanglingDeckReference(t *testing.T) {
	srv := newTestServer(t)
	s := registerAndLogin(t, srv)
	ctx := context.Background()

	require.NoError(t, s.SaveFolders(ctx, []string{"Languages", "Trivia"}))
	folders, err := s.FetchFolders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Languages", "Trivia"}, folders)

	require.NoError(t, s.CreateDeck(ctx, "Spanish", []store.Card{{Front: "hola", Back: "hello"}}, []string{"Languages"}))
	deckID := fetchOnlyDeckID(t, s)

	// Removing the folder leaves the deck's reference dangling.
	require.NoError(t, s.SaveFolders(ctx, []string{"Trivia"}))
	deck, err := s.FetchDeck(ctx, deckID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Languages"}, deck.Folder)
}

func TestFolders_Validation(t *testing.T) {
	srv := newTestServer(t)
	s := registerAndLogin(t, srv)
	ctx := context.Background()

	err := s.SaveFolders(ctx, []string{"this folder name is well over thirty characters"})
	assert.ErrorIs(t, err, store.ErrValidationFailed)

	err = s.SaveFolders(ctx, []string{"dup", "dup"})
	assert.ErrorIs(t, err, store.ErrValidationFailed)
}

// fetchOnlyDeckID pulls the deck list and requires exactly one entry.
func fetchOnlyDeckID(t *testing.T, s *store.HTTPStore) string {
	t.Helper()
	decks, err := s.FetchDecks(context.Background())
	require.NoError(t, err)
	require.Len(t, decks, 1)
	return decks[0].ID
}
