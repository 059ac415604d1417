package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/reviewtopics/internal/models"
)

const REVIEWS_TABLE_NAME = "Reviews"

// DynamoStore reads reviews from a table partitioned on "location".
type DynamoStore struct {
	client dynamodb.QueryAPIClient
	table  string
}

func NewDynamoStore(client dynamodb.QueryAPIClient, table string) *DynamoStore {
	if table == "" {
		table = REVIEWS_TABLE_NAME
	}
	return &DynamoStore{client: client, table: table}
}

func (s *DynamoStore) ReviewsByLocation(ctx context.Context, location string) ([]models.Review, error) {
	input := &dynamodb.QueryInput{
		TableName: aws.String(s.table),
		// location is a DynamoDB reserved word
		KeyConditionExpression:   aws.String("#loc = :loc"),
		ExpressionAttributeNames: map[string]string{"#loc": "location"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":loc": &types.AttributeValueMemberS{Value: location},
		},
	}

	var reviews []models.Review
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Query for reviews failed: %w", err)
		}

		var page []models.Review
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal review page", slog.String("error", err.Error()))
			return nil, err
		}
		reviews = append(reviews, page...)
	}

	slog.Debug("[DynamoDB] Retrieved reviews",
		slog.String("location", location),
		slog.Int("count", len(reviews)))
	return reviews, nil
}
