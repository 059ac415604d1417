package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spacesedan/reviewtopics/internal/logging"
	"github.com/spacesedan/reviewtopics/internal/topics"
)

const (
	STORE_STATIC   = "static"
	STORE_DYNAMODB = "dynamodb"
	STORE_POSTGRES = "postgres"
)

// Settings are the service-level knobs. Client connection settings live with
// each client (clients.GetValkeyConfig, kafka_client.GetKafkaConfig, ...).
type Settings struct {
	Port          string
	LogLevel      slog.Level
	TopicCount    int
	TermsPerTopic int
	LDAIterations int
	LDAProcesses  int
	LDASeed       int
	ReviewStore   string
	ReviewsFile   string
	DynamoTable   string
}

func FromEnv() Settings {
	return Settings{
		Port:          getEnv("PORT", "5000"),
		LogLevel:      logging.ParseLevel(os.Getenv("LOG_LEVEL")),
		TopicCount:    getInt("TOPIC_COUNT", topics.DefaultTopicCount),
		TermsPerTopic: getInt("TERMS_PER_TOPIC", topics.DefaultTermsPerTopic),
		LDAIterations: getInt("LDA_ITERATIONS", topics.DefaultIterations),
		LDAProcesses:  getInt("LDA_PROCESSES", 0),
		LDASeed:       getInt("LDA_SEED", 0),
		ReviewStore:   strings.ToLower(getEnv("REVIEW_STORE", STORE_STATIC)),
		ReviewsFile:   os.Getenv("REVIEWS_FILE"),
		DynamoTable:   os.Getenv("DYNAMODB_REVIEWS_TABLE"),
	}
}

func (s Settings) TopicOptions() topics.Options {
	return topics.Options{TopicCount: s.TopicCount, TermsPerTopic: s.TermsPerTopic}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		slog.Warn("Ignoring invalid integer setting",
			slog.String("key", key),
			slog.String("value", raw))
		return defaultValue
	}
	return n
}
