package decision

import (
	"fmt"

	"github.com/dreynolds89/tv-sentiment-relay/internal/models"
)

// Thresholds holds the decision gate cutoffs. Buy and Sell bound the
// directional-alignment gate; Confidence bounds the override gate.
type Thresholds struct {
	Buy        float64
	Sell       float64
	Confidence float64
}

// Default returns the stock thresholds: sentiment beyond +/-0.2 counts as
// meaningfully positive/negative, and alerts carrying a confidence below 60
// are blocked.
func Default() Thresholds {
	return Thresholds{Buy: 0.2, Sell: -0.2, Confidence: 60}
}

// Evaluate runs the two-gate trade-permission pipeline.
//
// Gate 1 requires alignment between the requested side and the sentiment
// score (strict inequality at the threshold). Gate 2 blocks the trade when a
// nonzero confidence below the threshold is supplied; a nil or zero
// confidence means "not supplied" and leaves gate 1's verdict alone.
func Evaluate(side string, sentiment float64, confidence *float64, th Thresholds) models.Decision {
	d := models.Decision{Sentiment: sentiment}

	switch {
	case side == "buy" && sentiment > th.Buy:
		d.ShouldTrade = true
		d.Reason = fmt.Sprintf("BUY allowed (sentiment %.2f)", sentiment)
	case side == "sell" && sentiment < th.Sell:
		d.ShouldTrade = true
		d.Reason = fmt.Sprintf("SELL allowed (sentiment %.2f)", sentiment)
	default:
		d.Reason = fmt.Sprintf("Blocked by sentiment %.2f", sentiment)
	}

	if confidence != nil && *confidence != 0 && *confidence < th.Confidence {
		d.ShouldTrade = false
		d.Reason += fmt.Sprintf(" | low TV confidence %g%%", *confidence)
	}

	return d
}
