// Package analysis runs the review pipeline: topics are extracted from a
// location's reviews, then sentiment is scored within each topic's vocabulary.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/reviewtopics/internal/metrics"
	"github.com/spacesedan/reviewtopics/internal/models"
	"github.com/spacesedan/reviewtopics/internal/sentiment"
	"github.com/spacesedan/reviewtopics/internal/textnorm"
	"github.com/spacesedan/reviewtopics/internal/topics"
)

var ErrLocationNotFound = errors.New("[Analyzer] location reviews not found")

type ReviewStore interface {
	ReviewsByLocation(ctx context.Context, location string) ([]models.Review, error)
}

type ProfileCache interface {
	GetProfile(ctx context.Context, location string) (models.LocationProfile, bool, error)
	SetProfile(ctx context.Context, profile models.LocationProfile) error
}

type ProfilePublisher interface {
	PublishProfile(ctx context.Context, profile models.LocationProfile) error
}

type Analyzer struct {
	extractor *topics.Extractor
	scorer    *sentiment.Scorer
	store     ReviewStore
	options   topics.Options
	cache     ProfileCache
	publisher ProfilePublisher
	now       func() time.Time
}

type Option func(*Analyzer)

func WithTopicOptions(opts topics.Options) Option {
	return func(a *Analyzer) { a.options = opts }
}

func WithCache(cache ProfileCache) Option {
	return func(a *Analyzer) { a.cache = cache }
}

func WithPublisher(publisher ProfilePublisher) Option {
	return func(a *Analyzer) { a.publisher = publisher }
}

func NewAnalyzer(extractor *topics.Extractor, scorer *sentiment.Scorer, store ReviewStore, opts ...Option) *Analyzer {
	a := &Analyzer{
		extractor: extractor,
		scorer:    scorer,
		store:     store,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ExtractTopics returns the topics of documents, or an empty list when the
// corpus is empty or inference fails. opts overrides the analyzer's defaults.
func (a *Analyzer) ExtractTopics(ctx context.Context, documents []string, opts ...topics.Options) []models.Topic {
	o := a.options
	if len(opts) > 0 {
		o = opts[0]
	}

	outcome := a.extractor.Extract(ctx, documents, o)
	metrics.TopicExtractionsTotal.WithLabelValues(outcomeLabel(outcome.Err)).Inc()
	if !outcome.OK() {
		slog.Debug("[Analyzer] No topics extracted", slog.String("reason", outcome.Err.Error()))
	}
	return outcome.Topics
}

// ScoreSentimentForTopics scores text once per topic, each topic's terms
// forming a single term group.
func (a *Analyzer) ScoreSentimentForTopics(text string, found []models.Topic) []models.TopicSentiment {
	out := make([]models.TopicSentiment, len(found))
	for i, topic := range found {
		report := a.scorer.Score(text, []sentiment.TermGroup{termGroup(topic)})
		out[i] = models.TopicSentiment{Topic: topic.Label(), Sentiment: report.Average}
	}
	return out
}

// AnalyzeLocation builds the topic sentiment profile for a location. It
// returns ErrLocationNotFound when the store has no reviews for it; a
// degenerate extraction yields a profile with no topics, not an error.
func (a *Analyzer) AnalyzeLocation(ctx context.Context, location string) (models.LocationProfile, error) {
	start := time.Now()
	defer func() {
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	if profile, ok := a.cachedProfile(ctx, location); ok {
		return profile, nil
	}

	if a.store == nil {
		return models.LocationProfile{}, errors.New("[Analyzer] no review store configured")
	}
	reviews, err := a.store.ReviewsByLocation(ctx, location)
	if err != nil {
		return models.LocationProfile{}, fmt.Errorf("[Analyzer] failed to load reviews for %q: %w", location, err)
	}
	if len(reviews) == 0 {
		return models.LocationProfile{}, ErrLocationNotFound
	}

	texts := models.Texts(reviews)
	found := a.ExtractTopics(ctx, texts)
	if err := ctx.Err(); err != nil {
		return models.LocationProfile{}, err
	}

	text := textnorm.StripMarkup(strings.Join(texts, " "))
	groups := make([]sentiment.TermGroup, len(found))
	for i, topic := range found {
		groups[i] = termGroup(topic)
	}

	profile := models.LocationProfile{
		Location:          location,
		SentimentByTopics: a.ScoreSentimentForTopics(text, found),
		Topics:            found,
		OverallSentiment:  a.scorer.Score(text, groups).Average,
		ReviewCount:       len(reviews),
		GeneratedAt:       a.now().UTC(),
	}

	slog.Info("[Analyzer] Built location profile",
		slog.String("location", location),
		slog.Int("reviews", len(reviews)),
		slog.Int("topics", len(found)),
		slog.Float64("overall_sentiment", profile.OverallSentiment))

	a.storeProfile(ctx, profile)
	return profile, nil
}

func (a *Analyzer) cachedProfile(ctx context.Context, location string) (models.LocationProfile, bool) {
	if a.cache == nil {
		return models.LocationProfile{}, false
	}

	profile, found, err := a.cache.GetProfile(ctx, location)
	switch {
	case err != nil:
		metrics.ProfileCacheTotal.WithLabelValues("error").Inc()
		slog.Warn("[Analyzer] Profile cache lookup failed",
			slog.String("location", location),
			slog.String("error", err.Error()))
		return models.LocationProfile{}, false
	case !found:
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return models.LocationProfile{}, false
	}

	metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
	return profile, true
}

// storeProfile caches and publishes profile; neither failure reaches the caller.
func (a *Analyzer) storeProfile(ctx context.Context, profile models.LocationProfile) {
	if a.cache != nil {
		if err := a.cache.SetProfile(ctx, profile); err != nil {
			slog.Warn("[Analyzer] Failed to cache profile",
				slog.String("location", profile.Location),
				slog.String("error", err.Error()))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.PublishProfile(ctx, profile); err != nil {
			metrics.ProfilePublishErrors.Inc()
			slog.Error("[Analyzer] Failed to publish profile",
				slog.String("location", profile.Location),
				slog.String("error", err.Error()))
		}
	}
}

func termGroup(topic models.Topic) sentiment.TermGroup {
	return sentiment.NewTermGroup(topic.Label(), topic.Words()...)
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, topics.ErrNoValidInput):
		return metrics.OutcomeNoValidInput
	case errors.Is(err, topics.ErrInferenceFailure):
		return metrics.OutcomeInferenceFailure
	default:
		return metrics.OutcomeCancelled
	}
}
