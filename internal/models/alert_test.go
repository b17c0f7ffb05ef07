package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlert_Normalize(t *testing.T) {
	a := Alert{Symbol: "BTCUSDT", Side: "BUY"}
	a.Normalize("BINANCE")
	assert.Equal(t, "BINANCE", a.Exchange)
	assert.Equal(t, "buy", a.Side)

	a = Alert{Symbol: "BTCUSDT", Exchange: "kraken", Side: "Sell"}
	a.Normalize("BINANCE")
	assert.Equal(t, "KRAKEN", a.Exchange)
	assert.Equal(t, "sell", a.Side)
}

func TestAlert_Pair(t *testing.T) {
	a := Alert{Symbol: "BTCUSDT", Exchange: "BINANCE"}
	assert.Equal(t, "BINANCE:BTCUSDT", a.Pair())

	// A symbol carrying its own exchange prefix wins
	a = Alert{Symbol: "KRAKEN:ETHUSD", Exchange: "BINANCE"}
	assert.Equal(t, "KRAKEN:ETHUSD", a.Pair())
}

func TestAlert_ConfidenceAbsentVsZero(t *testing.T) {
	var absent Alert
	require.NoError(t, json.Unmarshal([]byte(`{"symbol":"BTCUSDT"}`), &absent))
	assert.Nil(t, absent.Confidence)

	var zero Alert
	require.NoError(t, json.Unmarshal([]byte(`{"symbol":"BTCUSDT","confidence":0}`), &zero))
	require.NotNil(t, zero.Confidence)
	assert.Equal(t, 0.0, *zero.Confidence)
}
