package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPStore talks to the deck API over HTTP. The token is injected per
// instance rather than read from ambient state, so two sessions with
// different credentials can coexist in one process.
type HTTPStore struct {
	baseURL string
	http    *http.Client
}

var _ DeckStore = (*HTTPStore)(nil)

// NewHTTPStore constructs a store client for baseURL authenticating with the
// given bearer token.
func NewHTTPStore(baseURL, token string) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &bearerTransport{base: http.DefaultTransport, token: token},
			Timeout:   30 * time.Second,
		},
	}
}

// bearerTransport adds the Authorization header to every request.
type bearerTransport struct {
	base  http.RoundTripper
	token string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(cloned)
}

func (s *HTTPStore) FetchDecks(ctx context.Context) ([]Deck, error) {
	const op = "fetch decks"
	url := fmt.Sprintf("%s/auth/get-decks", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, networkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp.StatusCode)
	}

	var body struct {
		Decks []Deck `json:"decks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return body.Decks, nil
}

func (s *HTTPStore) FetchDeck(ctx context.Context, id string) (*Deck, error) {
	const op = "fetch deck"
	url := fmt.Sprintf("%s/auth/get-deck/%s", s.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, networkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp.StatusCode)
	}

	var deck Deck
	if err := json.NewDecoder(resp.Body).Decode(&deck); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &deck, nil
}

func (s *HTTPStore) SaveDeck(ctx context.Context, deck *Deck) error {
	const op = "save deck"
	body, err := json.Marshal(deck)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/auth/update-deck/%s", s.baseURL, deck.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return networkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(op, resp.StatusCode)
	}
	return nil
}

func (s *HTTPStore) CreateDeck(ctx context.Context, name string, cards []Card, folder []string) error {
	const op = "create deck"
	payload := struct {
		DeckName    string   `json:"deckName"`
		Cards       []Card   `json:"cards"`
		FolderArray []string `json:"folderArray"`
	}{DeckName: name, Cards: cards, FolderArray: folder}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/auth/create-deck", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return networkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return statusError(op, resp.StatusCode)
	}
	return nil
}

func (s *HTTPStore) DeleteDeck(ctx context.Context, id string) error {
	const op = "delete deck"
	url := fmt.Sprintf("%s/auth/delete-deck/%s", s.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return networkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(op, resp.StatusCode)
	}
	return nil
}

func (s *HTTPStore) UpdateCardStar(ctx context.Context, deckID, cardID string, starred bool) error {
	const op = "update card"
	body, err := json.Marshal(struct {
		Starred bool `json:"starred"`
	}{Starred: starred})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/auth/update-card/%s/%s", s.baseURL, deckID, cardID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return networkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(op, resp.StatusCode)
	}
	return nil
}

func (s *HTTPStore) FetchFolders(ctx context.Context) ([]string, error) {
	const op = "fetch folders"
	url := fmt.Sprintf("%s/auth/get-folders", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, networkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp.StatusCode)
	}

	var folders []string
	if err := json.NewDecoder(resp.Body).Decode(&folders); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return folders, nil
}

func (s *HTTPStore) SaveFolders(ctx context.Context, folders []string) error {
	const op = "save folders"
	body, err := json.Marshal(struct {
		Folders []string `json:"folders"`
	}{Folders: folders})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/auth/update-folders", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return networkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError(op, resp.StatusCode)
	}
	return nil
}
