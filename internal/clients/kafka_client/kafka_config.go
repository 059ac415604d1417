package kafka_client

import "os"

type KafkaConfig struct {
	Broker   string
	Topic    string
	ClientID string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// GetKafkaConfig leaves Broker empty unless KAFKA_BROKER is set; publishing is optional.
func GetKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Broker:   getEnv("KAFKA_BROKER", ""),
		Topic:    getEnv("KAFKA_PROFILE_TOPIC", KAFKA_TOPIC_LOCATION_PROFILES),
		ClientID: getEnv("KAFKA_CLIENT_ID", "reviewtopics"),
	}
}

func (c KafkaConfig) Enabled() bool {
	return c.Broker != ""
}
