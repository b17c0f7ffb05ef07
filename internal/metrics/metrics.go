package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	WebhookRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_requests_total", Help: "Webhook requests by outcome"},
		[]string{"outcome"},
	)
	Decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trade_decisions_total", Help: "Gate decisions by action and side"},
		[]string{"action", "side"},
	)
	DealDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "deal_dispatches_total", Help: "3Commas start_deal dispatches by mode and result"},
		[]string{"mode", "result"},
	)
)

func init() {
	prometheus.MustRegister(WebhookRequests, Decisions, DealDispatches)
}
