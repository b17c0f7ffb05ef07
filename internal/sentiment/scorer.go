package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
)

// maxClassifierInput caps the text sent to the classifier; oversized notes
// would otherwise inflate inference cost and latency.
const maxClassifierInput = 500

// ScoreCache caches sentiment scores keyed by note digest. Safe because the
// classifier is deterministic for a fixed model.
type ScoreCache interface {
	GetScore(ctx context.Context, key string) (float64, bool, error)
	SetScore(ctx context.Context, key string, score float64) error
}

// Scorer maps free text to a signed sentiment scalar in [-1, 1]
type Scorer struct {
	classifier Classifier
	cache      ScoreCache
}

// NewScorer creates a Scorer. cache may be nil to disable caching.
func NewScorer(classifier Classifier, cache ScoreCache) *Scorer {
	return &Scorer{classifier: classifier, cache: cache}
}

// Score returns +score for positive text, -score for negative, 0 for neutral.
// Empty or whitespace-only text scores 0 without invoking the classifier.
// A classifier failure is returned to the caller; there is no fallback score.
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0.0, nil
	}

	text = truncate(text, maxClassifierInput)
	key := cacheKey(text)

	if s.cache != nil {
		score, ok, err := s.cache.GetScore(ctx, key)
		if err != nil {
			log.Printf("sentiment cache read failed: %v", err)
		} else if ok {
			return score, nil
		}
	}

	res, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return 0, err
	}

	score := signedScore(res)

	if s.cache != nil {
		if err := s.cache.SetScore(ctx, key, score); err != nil {
			log.Printf("sentiment cache write failed: %v", err)
		}
	}
	return score, nil
}

// signedScore applies the label sign convention: positive labels keep the
// magnitude, negative labels flip it, anything else scores 0.
func signedScore(c Classification) float64 {
	label := strings.ToLower(c.Label)
	switch {
	case strings.Contains(label, "positive"):
		return c.Score
	case strings.Contains(label, "negative"):
		return -c.Score
	default:
		return 0.0
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "sentiment:" + hex.EncodeToString(sum[:])
}
