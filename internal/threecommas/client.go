package threecommas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dreynolds89/tv-sentiment-relay/internal/config"
	"github.com/dreynolds89/tv-sentiment-relay/internal/metrics"
)

// maxMessageLen is the 3Commas limit on the deal message field
const maxMessageLen = 240

const requestTimeout = 20 * time.Second

// DealRequest is the start_deal payload. It lives only for the duration of
// one outbound call.
type DealRequest struct {
	BotID   int    `json:"bot_id"`
	Pair    string `json:"pair"`
	Message string `json:"message"`
}

// DealResponse is the trading API's parsed JSON body, a status/text fallback
// when the body is not valid JSON, or the dry-run marker.
type DealResponse map[string]interface{}

// DealStarter starts a deal on a DCA bot. Implemented by Client (live and
// dry-run) and by test doubles.
type DealStarter interface {
	StartDeal(ctx context.Context, botID int, pair, message string) (DealResponse, error)
}

// Client talks to the 3Commas bot API
type Client struct {
	baseURL    string
	apiKey     string
	signer     *Signer
	dryRun     bool
	httpClient *http.Client
}

// NewClient creates a 3Commas client from configuration
func NewClient(cfg config.ThreeCommasConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		signer:  NewSigner(cfg.APISecret),
		dryRun:  cfg.DryRun,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// SetHTTPClient replaces the HTTP client, for testing
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// StartDeal starts a deal on the bot for the given pair. In dry-run mode no
// network call is made and the dry-run marker is returned. In live mode the
// response body is surfaced verbatim: a non-2xx status is not an error, only
// transport failures are.
func (c *Client) StartDeal(ctx context.Context, botID int, pair, message string) (DealResponse, error) {
	payload := DealRequest{
		BotID:   botID,
		Pair:    pair,
		Message: truncate(message, maxMessageLen),
	}

	if c.dryRun {
		log.Printf("[DRY_RUN] Would call 3Commas start_deal: %+v", payload)
		metrics.DealDispatches.WithLabelValues("dry_run", "ok").Inc()
		return DealResponse{"status": "dry_run"}, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deal request: %w", err)
	}

	// 3Commas signs the query string; this endpoint sends a JSON body and
	// signs an empty query.
	url := c.baseURL + "/ver1/bots/start_deal"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build deal request: %w", err)
	}
	req.Header.Set("APIKEY", c.apiKey)
	req.Header.Set("Signature", c.signer.Sign(""))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.DealDispatches.WithLabelValues("live", "transport_error").Inc()
		return nil, fmt.Errorf("3commas request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.DealDispatches.WithLabelValues("live", "transport_error").Inc()
		return nil, fmt.Errorf("failed to read 3commas response: %w", err)
	}

	var data DealResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		data = DealResponse{"status_code": resp.StatusCode, "text": string(raw)}
	}

	log.Printf("3Commas response: %v", data)
	metrics.DealDispatches.WithLabelValues("live", "ok").Inc()
	return data, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
