package models

import "time"

type TopicSentiment struct {
	Topic     string  `json:"topic"`
	Sentiment float64 `json:"sentiment"`
}

// LocationProfile is the per-topic sentiment profile served for a location.
type LocationProfile struct {
	Location          string           `json:"location"`
	SentimentByTopics []TopicSentiment `json:"sentimentByTopics"`
	Topics            []Topic          `json:"topics"`
	OverallSentiment  float64          `json:"overallSentiment"`
	ReviewCount       int              `json:"reviewCount"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}
