package builtin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultJokeURL asks JokeAPI for a single-part German joke.
const DefaultJokeURL = "https://v2.jokeapi.dev/joke/Any?lang=de&type=single"

// ErrNoJoke is returned when the API answers without a joke.
var ErrNoJoke = errors.New("joke api returned no joke")

// JokeAPI fetches jokes from a JokeAPI compatible endpoint.
type JokeAPI struct {
	url    string
	client *http.Client
}

// NewJokeAPI creates a client for url. A nil client gets a 10 second timeout.
func NewJokeAPI(url string, client *http.Client) *JokeAPI {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &JokeAPI{url: url, client: client}
}

type jokeResponse struct {
	Error bool   `json:"error"`
	Joke  string `json:"joke"`
}

// Joke fetches one joke.
func (j *JokeAPI) Joke(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch joke: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch joke: unexpected status %d", resp.StatusCode)
	}

	var body jokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode joke: %w", err)
	}
	if body.Error || body.Joke == "" {
		return "", ErrNoJoke
	}
	return body.Joke, nil
}
