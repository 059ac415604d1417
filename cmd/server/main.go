package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/reviewtopics/config"
	"github.com/spacesedan/reviewtopics/internal/analysis"
	"github.com/spacesedan/reviewtopics/internal/clients"
	"github.com/spacesedan/reviewtopics/internal/clients/kafka_client"
	"github.com/spacesedan/reviewtopics/internal/db"
	"github.com/spacesedan/reviewtopics/internal/logging"
	"github.com/spacesedan/reviewtopics/internal/sentiment"
	"github.com/spacesedan/reviewtopics/internal/server"
	"github.com/spacesedan/reviewtopics/internal/textnorm"
	"github.com/spacesedan/reviewtopics/internal/topics"
)

const requestTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("[Main] Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	settings := config.FromEnv()
	logging.InitLogger(settings.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openReviewStore(ctx, settings)
	if err != nil {
		return fmt.Errorf("[Main] failed to open review store: %w", err)
	}
	defer closeStore()

	tokenizer := textnorm.NewTokenizer()
	extractor := topics.NewExtractor(topics.Config{
		Iterations: settings.LDAIterations,
		Processes:  settings.LDAProcesses,
		Tokenizer:  &tokenizer,
		Seed:       int64(settings.LDASeed),
	})
	scorer := sentiment.NewScorer(sentiment.NewVaderLexicon(sentiment.SnowballStemmer{}), tokenizer)

	opts := []analysis.Option{analysis.WithTopicOptions(settings.TopicOptions())}

	if valkeyCfg := clients.GetValkeyConfig(); valkeyCfg.Address != "" {
		cache, err := clients.NewValkeyCache(valkeyCfg)
		if err != nil {
			slog.Warn("[Main] Profile cache disabled", slog.String("error", err.Error()))
		} else {
			defer cache.Close()
			opts = append(opts, analysis.WithCache(cache))
		}
	}

	if kafkaCfg := kafka_client.GetKafkaConfig(); kafkaCfg.Enabled() {
		publisher, err := kafka_client.NewProfilePublisher(kafkaCfg)
		if err != nil {
			slog.Warn("[Main] Profile publishing disabled", slog.String("error", err.Error()))
		} else {
			defer publisher.Close()
			opts = append(opts, analysis.WithPublisher(publisher))
		}
	}

	analyzer := analysis.NewAnalyzer(extractor, scorer, store, opts...)
	srv := server.NewServer(analyzer, requestTimeout)

	go func() {
		if err := srv.Start(net.JoinHostPort("", settings.Port)); err != nil {
			slog.Error("[Main] Server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("[Main] graceful shutdown failed: %w", err)
	}
	return nil
}

func openReviewStore(ctx context.Context, settings config.Settings) (analysis.ReviewStore, func(), error) {
	noop := func() {}

	switch settings.ReviewStore {
	case config.STORE_STATIC:
		store, err := db.LoadStaticStore(settings.ReviewsFile)
		return store, noop, err
	case config.STORE_DYNAMODB:
		client, err := clients.NewDynamoDBClient(ctx, clients.GetAWSSettings())
		if err != nil {
			return nil, noop, err
		}
		return db.NewDynamoStore(client, settings.DynamoTable), noop, nil
	case config.STORE_POSTGRES:
		store, err := db.NewPostgresStore(ctx, db.PostgresDSN())
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown REVIEW_STORE %q", settings.ReviewStore)
	}
}
