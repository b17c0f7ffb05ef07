package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Mock Classifier and ScoreCache
// ---------------------------------------------------------------------------

type mockClassifier struct {
	result Classification
	err    error
	calls  []string
}

func (m *mockClassifier) Classify(_ context.Context, text string) (Classification, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return Classification{}, m.err
	}
	return m.result, nil
}

type mockCache struct {
	scores  map[string]float64
	getErr  error
	setErr  error
	gets    int
	sets    int
	lastKey string
}

func newMockCache() *mockCache {
	return &mockCache{scores: map[string]float64{}}
}

func (m *mockCache) GetScore(_ context.Context, key string) (float64, bool, error) {
	m.gets++
	m.lastKey = key
	if m.getErr != nil {
		return 0, false, m.getErr
	}
	score, ok := m.scores[key]
	return score, ok, nil
}

func (m *mockCache) SetScore(_ context.Context, key string, score float64) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.scores[key] = score
	return nil
}

// ---------------------------------------------------------------------------
// Score tests
// ---------------------------------------------------------------------------

func TestScore_EmptyText(t *testing.T) {
	clf := &mockClassifier{result: Classification{Label: "positive", Score: 0.9}}
	scorer := NewScorer(clf, nil)

	for _, text := range []string{"", "   ", "\n\t "} {
		score, err := scorer.Score(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	}
	// Classifier must not be invoked for blank input
	assert.Empty(t, clf.calls)
}

func TestScore_SignConvention(t *testing.T) {
	tests := []struct {
		label string
		score float64
		want  float64
	}{
		{"positive", 0.85, 0.85},
		{"POSITIVE", 0.85, 0.85},
		{"LABEL_positive", 0.6, 0.6},
		{"negative", 0.7, -0.7},
		{"Negative", 0.7, -0.7},
		{"neutral", 0.99, 0.0},
		{"LABEL_2", 0.5, 0.0},
	}
	for _, tt := range tests {
		clf := &mockClassifier{result: Classification{Label: tt.label, Score: tt.score}}
		scorer := NewScorer(clf, nil)

		got, err := scorer.Score(context.Background(), "strong earnings beat")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "label %q", tt.label)
	}
}

func TestScore_TruncatesLongInput(t *testing.T) {
	clf := &mockClassifier{result: Classification{Label: "positive", Score: 0.5}}
	scorer := NewScorer(clf, nil)

	long := strings.Repeat("a", 600)
	_, err := scorer.Score(context.Background(), long)
	require.NoError(t, err)

	require.Len(t, clf.calls, 1)
	assert.Equal(t, 500, len([]rune(clf.calls[0])))
	assert.Equal(t, strings.Repeat("a", 500), clf.calls[0])
}

func TestScore_ClassifierErrorPropagates(t *testing.T) {
	clf := &mockClassifier{err: errors.New("inference endpoint down")}
	scorer := NewScorer(clf, nil)

	_, err := scorer.Score(context.Background(), "some note")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inference endpoint down")
}

func TestScore_CacheHitSkipsClassifier(t *testing.T) {
	clf := &mockClassifier{result: Classification{Label: "positive", Score: 0.85}}
	cache := newMockCache()
	scorer := NewScorer(clf, cache)

	first, err := scorer.Score(context.Background(), "strong earnings beat")
	require.NoError(t, err)
	assert.Equal(t, 0.85, first)
	assert.Len(t, clf.calls, 1)
	assert.Equal(t, 1, cache.sets)

	second, err := scorer.Score(context.Background(), "strong earnings beat")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// No second classification
	assert.Len(t, clf.calls, 1)
}

func TestScore_CacheErrorsFallThrough(t *testing.T) {
	clf := &mockClassifier{result: Classification{Label: "negative", Score: 0.7}}
	cache := newMockCache()
	cache.getErr = errors.New("redis gone")
	cache.setErr = errors.New("redis gone")
	scorer := NewScorer(clf, cache)

	score, err := scorer.Score(context.Background(), "disappointing guidance")
	require.NoError(t, err)
	assert.Equal(t, -0.7, score)
	assert.Len(t, clf.calls, 1)
}

func TestScore_CacheKeyUsesTruncatedText(t *testing.T) {
	clf := &mockClassifier{result: Classification{Label: "positive", Score: 0.5}}
	cache := newMockCache()
	scorer := NewScorer(clf, cache)

	base := strings.Repeat("b", 500)
	_, err := scorer.Score(context.Background(), base+"tail one")
	require.NoError(t, err)
	keyOne := cache.lastKey

	_, err = scorer.Score(context.Background(), base+"tail two")
	require.NoError(t, err)

	// Same first 500 chars, same key: second call is a cache hit
	assert.Equal(t, keyOne, cache.lastKey)
	assert.Len(t, clf.calls, 1)
}
