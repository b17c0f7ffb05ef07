package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dreynolds89/tv-sentiment-relay/internal/config"
	"github.com/dreynolds89/tv-sentiment-relay/internal/decision"
	"github.com/dreynolds89/tv-sentiment-relay/internal/kafka"
	"github.com/dreynolds89/tv-sentiment-relay/internal/metrics"
	"github.com/dreynolds89/tv-sentiment-relay/internal/models"
	"github.com/dreynolds89/tv-sentiment-relay/internal/redis"
	"github.com/dreynolds89/tv-sentiment-relay/internal/threecommas"
)

const defaultExchange = "BINANCE"

// TextScorer maps free text to a signed sentiment scalar
type TextScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// DecisionPublisher publishes decision events
type DecisionPublisher interface {
	PublishDecision(ctx context.Context, event kafka.DecisionEvent) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scorer     TextScorer
	deals      threecommas.DealStarter
	publisher  DecisionPublisher
	redis      *redis.Client
	webhook    config.WebhookConfig
	tc         config.ThreeCommasConfig
	thresholds decision.Thresholds
}

// NewHandler creates a new Handler. publisher and redisClient may be nil.
func NewHandler(
	scorer TextScorer,
	deals threecommas.DealStarter,
	publisher DecisionPublisher,
	redisClient *redis.Client,
	webhook config.WebhookConfig,
	tc config.ThreeCommasConfig,
	thresholds decision.Thresholds,
) *Handler {
	return &Handler{
		scorer:     scorer,
		deals:      deals,
		publisher:  publisher,
		redis:      redisClient,
		webhook:    webhook,
		tc:         tc,
		thresholds: thresholds,
	}
}

// Webhook handles POST /webhook: authenticates the alert, scores its note,
// applies the trade-permission gates and, when they pass, starts a deal.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var alert models.Alert
	if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
		metrics.WebhookRequests.WithLabelValues("invalid_json").Inc()
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"ok": false, "error": "invalid JSON",
		})
		return
	}

	if h.webhook.Token != "" {
		if subtle.ConstantTimeCompare([]byte(alert.Token), []byte(h.webhook.Token)) != 1 {
			metrics.WebhookRequests.WithLabelValues("bad_token").Inc()
			respondJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"ok": false, "error": "bad token",
			})
			return
		}
	}

	if alert.Symbol == "" {
		metrics.WebhookRequests.WithLabelValues("missing_symbol").Inc()
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"ok": false, "error": "symbol is required",
		})
		return
	}

	alert.Normalize(defaultExchange)
	pair := alert.Pair()

	sentiment, err := h.scorer.Score(r.Context(), alert.Note)
	if err != nil {
		log.Printf("Sentiment scoring failed for pair %s: %v", pair, err)
		metrics.WebhookRequests.WithLabelValues("scorer_error").Inc()
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"ok": false, "error": "sentiment scoring failed",
		})
		return
	}

	dec := decision.Evaluate(alert.Side, sentiment, alert.Confidence, h.thresholds)

	conf := "unset"
	if alert.Confidence != nil {
		conf = fmt.Sprintf("%g", *alert.Confidence)
	}
	log.Printf("[TV] pair=%s side=%s sentiment=%.2f conf=%s note=%q -> %s",
		pair, alert.Side, sentiment, conf, alert.Note, dec.Reason)

	if !dec.ShouldTrade {
		metrics.WebhookRequests.WithLabelValues("skipped").Inc()
		metrics.Decisions.WithLabelValues("skipped", alert.Side).Inc()
		h.publishDecision(r.Context(), &alert, pair, dec, "skipped")
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"ok": true, "action": "skipped", "reason": dec.Reason,
		})
		return
	}

	if !h.tc.Configured() {
		metrics.WebhookRequests.WithLabelValues("not_configured").Inc()
		h.publishDecision(r.Context(), &alert, pair, dec, "not_configured")
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"ok": false, "error": "3Commas API not configured (API key/secret/bot id)",
		})
		return
	}

	message := fmt.Sprintf("TV+FinBERT: %s (%s)", alert.Side, dec.Reason)
	resp, err := h.deals.StartDeal(r.Context(), h.tc.BotID, pair, message)
	if err != nil {
		log.Printf("3Commas dispatch failed for pair %s: %v", pair, err)
		metrics.WebhookRequests.WithLabelValues("dispatch_error").Inc()
		h.publishDecision(r.Context(), &alert, pair, dec, "dispatch_error")
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"ok": false, "error": "3Commas request failed",
		})
		return
	}

	metrics.WebhookRequests.WithLabelValues("deal_started").Inc()
	metrics.Decisions.WithLabelValues("deal_started", alert.Side).Inc()
	h.publishDecision(r.Context(), &alert, pair, dec, "deal_started")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok": true, "action": "deal_started", "threecommas": resp,
	})
}

// publishDecision emits the advisory decision event. Publish failures are
// logged and never affect the HTTP response.
func (h *Handler) publishDecision(ctx context.Context, alert *models.Alert, pair string, dec models.Decision, action string) {
	if h.publisher == nil {
		return
	}
	event := kafka.NewDecisionEvent(pair, alert.Side, dec.Sentiment, alert.Confidence, dec.ShouldTrade, action, dec.Reason)
	if err := h.publisher.PublishDecision(ctx, event); err != nil {
		log.Printf("Failed to publish decision event for pair %s: %v", pair, err)
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  map[string]string{},
	}
	services := health["services"].(map[string]string)

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			services["redis"] = "unhealthy: " + err.Error()
			health["status"] = "degraded"
		} else {
			services["redis"] = "healthy"
		}
	} else {
		services["redis"] = "not configured"
	}

	if h.publisher != nil {
		services["kafka"] = "configured"
	} else {
		services["kafka"] = "not configured"
	}

	if h.tc.Configured() {
		services["threecommas"] = "configured"
	} else {
		services["threecommas"] = "not configured"
	}

	respondJSON(w, http.StatusOK, health)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
