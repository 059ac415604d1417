package clients

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type AWSConfig struct {
	Region   string
	Endpoint string
}

func GetAWSSettings() AWSConfig {
	cfg := AWSConfig{
		Region:   os.Getenv("AWS_REGION"),
		Endpoint: os.Getenv("AWS_ENDPOINT"),
	}
	if cfg.Region == "" {
		cfg.Region = "us-west-2"
	}
	return cfg
}

// NewDynamoDBClient loads the default AWS credential chain. A non-empty
// Endpoint points the client at DynamoDB Local or another compatible service.
func NewDynamoDBClient(ctx context.Context, settings AWSConfig) (*dynamodb.Client, error) {
	slog.Info("[AWSClient] Initializing AWS Config...", slog.String("region", settings.Region))

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(settings.Region))
	if err != nil {
		return nil, fmt.Errorf("[AWSClient] failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
		}
	})

	slog.Info("[AWSClient] AWS Config Initialized")
	return client, nil
}
