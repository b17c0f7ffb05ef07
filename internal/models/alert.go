package models

import "strings"

// Alert represents an inbound TradingView alert payload.
//
// Confidence is a pointer so that an absent field can be told apart from an
// explicit zero; both skip the confidence gate, but logs report them
// differently.
type Alert struct {
	Token      string   `json:"token"`
	Symbol     string   `json:"symbol"`
	Exchange   string   `json:"exchange"`
	Side       string   `json:"side"`
	Note       string   `json:"note"`
	Confidence *float64 `json:"confidence"`
}

// Normalize applies the field defaults: exchange falls back to defaultExchange
// and is upper-cased, side is lower-cased.
func (a *Alert) Normalize(defaultExchange string) {
	if a.Exchange == "" {
		a.Exchange = defaultExchange
	}
	a.Exchange = strings.ToUpper(a.Exchange)
	a.Side = strings.ToLower(a.Side)
}

// Pair returns the exchange-qualified trading pair, e.g. "BINANCE:BTCUSDT".
// A symbol that already carries an exchange prefix is returned verbatim.
func (a *Alert) Pair() string {
	if strings.Contains(a.Symbol, ":") {
		return a.Symbol
	}
	return a.Exchange + ":" + a.Symbol
}
