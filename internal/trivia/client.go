package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rfoley/quizbot/internal/quiz"
	"github.com/rfoley/quizbot/pkg/errors"
)

const (
	defaultBaseURL = "https://jservice.io"
	randomPath     = "/api/random"
)

// Client fetches random clues from a jservice-style trivia API. It
// implements quiz.Provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given API base URL. A nil
// httpClient gets a sane default with a request timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// clue mirrors one element of the /api/random payload. Value is null
// for some clues; the zero it decodes to is handled downstream.
type clue struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Value    int    `json:"value"`
	Category struct {
		Title string `json:"title"`
	} `json:"category"`
}

// Fetch returns one random trivia item.
func (c *Client) Fetch(ctx context.Context) (quiz.QuestionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+randomPath, nil)
	if err != nil {
		return quiz.QuestionData{}, errors.Wrap(err, errors.ErrCodeInternalError, "failed to build trivia request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return quiz.QuestionData{}, errors.Wrap(err, errors.ErrCodeProviderUnavailable, "trivia api request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return quiz.QuestionData{}, errors.New(errors.ErrCodeProviderUnavailable,
			fmt.Sprintf("trivia api returned status %d", resp.StatusCode))
	}

	var clues []clue
	if err := json.NewDecoder(resp.Body).Decode(&clues); err != nil {
		return quiz.QuestionData{}, errors.Wrap(err, errors.ErrCodeMalformedResponse, "could not decode trivia api response")
	}
	if len(clues) == 0 {
		return quiz.QuestionData{}, errors.New(errors.ErrCodeMalformedResponse, "trivia api returned no clues")
	}

	item := clues[0]
	return quiz.QuestionData{
		Text:     strings.TrimSpace(item.Question),
		Answer:   item.Answer,
		Category: item.Category.Title,
		Value:    item.Value,
	}, nil
}
