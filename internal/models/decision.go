package models

// Decision is the outcome of the trade-permission gates for one alert.
// It is request-scoped and never persisted.
type Decision struct {
	ShouldTrade bool
	Sentiment   float64
	Reason      string
}
