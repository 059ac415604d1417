package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spacesedan/reviewtopics/internal/models"
)

const reviewsByLocationQuery = `
	SELECT id, location, review_text FROM reviews WHERE location = $1 ORDER BY id
`

// PostgresDSN builds the connection string from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME.
func PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
}

// PostgresStore reads reviews from a "reviews" table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("[DB] unable to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("[DB] unable to reach PostgreSQL: %w", err)
	}

	slog.Info("[DB] Connected to PostgreSQL successfully")
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
		slog.Info("[DB] Database connection closed")
	}
}

func (s *PostgresStore) ReviewsByLocation(ctx context.Context, location string) ([]models.Review, error) {
	rows, err := s.pool.Query(ctx, reviewsByLocationQuery, location)
	if err != nil {
		return nil, fmt.Errorf("[DB] reviews query failed: %w", err)
	}

	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Review, error) {
		var r models.Review
		err := row.Scan(&r.ID, &r.Location, &r.ReviewText)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("[DB] failed to scan reviews: %w", err)
	}
	return reviews, nil
}
