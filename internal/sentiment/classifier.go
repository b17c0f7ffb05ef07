package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dreynolds89/tv-sentiment-relay/internal/config"
)

// Classification is one label/score pair returned by the model
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier maps text to a sentiment label with a confidence magnitude.
// The production implementation calls a remote FinBERT inference endpoint;
// tests substitute scripted implementations.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// HTTPClassifier calls a HuggingFace-style text-classification endpoint
type HTTPClassifier struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewHTTPClassifier creates a classifier client from configuration
func NewHTTPClassifier(cfg config.SentimentConfig) *HTTPClassifier {
	return &HTTPClassifier{
		url:   cfg.APIURL,
		token: cfg.APIToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SetHTTPClient replaces the HTTP client, for testing
func (c *HTTPClassifier) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Classify sends the text to the inference endpoint and returns the
// top-ranked classification.
func (c *HTTPClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return Classification{}, fmt.Errorf("failed to marshal classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Classification{}, fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Classification{}, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Classification{}, fmt.Errorf("failed to read classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Classification{}, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	results, err := decodeClassifications(body)
	if err != nil {
		return Classification{}, err
	}

	// Inference servers are not required to sort by score
	top := results[0]
	for _, r := range results[1:] {
		if r.Score > top.Score {
			top = r
		}
	}
	return top, nil
}

// decodeClassifications accepts both response shapes the HuggingFace
// text-classification pipeline produces: [[{label,score},...]] and
// [{label,score},...].
func decodeClassifications(body []byte) ([]Classification, error) {
	var nested [][]Classification
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	var flat []Classification
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, fmt.Errorf("unexpected classifier response: %s", string(body))
}
