package kafka_client

import "time"

const (
	KAFKA_TOPIC_LOCATION_PROFILES = "location-profiles" // computed per-location topic sentiment profiles
)

const (
	MAX_RETRIES      = 3
	RETRY_DELAY      = 250 * time.Millisecond
	DELIVERY_TIMEOUT = 5 * time.Second
)
