// Package topics models latent topics over a small corpus of reviews with
// Latent Dirichlet Allocation and reports the top terms of each topic.
package topics

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/e-gun/nlp"
	"github.com/spacesedan/reviewtopics/internal/models"
	"github.com/spacesedan/reviewtopics/internal/textnorm"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultTopicCount    = 2
	DefaultTermsPerTopic = 3
	DefaultIterations    = 200
)

// Options fixes the shape of the result. Zero values fall back to the defaults.
type Options struct {
	TopicCount    int
	TermsPerTopic int
}

func (o Options) withDefaults() Options {
	if o.TopicCount <= 0 {
		o.TopicCount = DefaultTopicCount
	}
	if o.TermsPerTopic <= 0 {
		o.TermsPerTopic = DefaultTermsPerTopic
	}
	return o
}

type Config struct {
	// Iterations of the LDA fit; TransformationPasses is half of it.
	Iterations int
	// Processes caps LDA worker goroutines; 0 keeps the library default (GOMAXPROCS).
	Processes int
	// StopWords replaces the built-in English stop list when set.
	StopWords []string
	// Tokenizer splits documents for the vectoriser. Pass the scorer's so
	// topic terms are always tokens the scorer produces; nil builds a default.
	Tokenizer *textnorm.Tokenizer
	// Seed makes inference repeatable when non-zero.
	Seed int64
}

// Extractor is safe for concurrent use; it holds only read-only configuration.
type Extractor struct {
	tokenizer  textnorm.Tokenizer
	stopSet    map[string]struct{}
	iterations int
	processes  int
	seed       int64
}

func NewExtractor(cfg Config) *Extractor {
	stops := cfg.StopWords
	if len(stops) == 0 {
		stops = textnorm.StopWords()
	}
	stopSet := make(map[string]struct{}, len(stops))
	for _, w := range stops {
		stopSet[textnorm.Fold(w)] = struct{}{}
	}

	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	tokenizer := textnorm.NewTokenizer()
	if cfg.Tokenizer != nil {
		tokenizer = *cfg.Tokenizer
	}

	return &Extractor{
		tokenizer:  tokenizer,
		stopSet:    stopSet,
		iterations: iterations,
		processes:  cfg.Processes,
		seed:       cfg.Seed,
	}
}

// Outcome is either a list of topics (Err == nil) or a named failure with no topics.
// Err is ErrNoValidInput, an *InferenceError, or the context error when the
// call was cancelled before inference started.
type Outcome struct {
	Topics []models.Topic
	Err    error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

func failed(err error) Outcome {
	return Outcome{Topics: []models.Topic{}, Err: err}
}

// Extract models opts.TopicCount topics over documents and keeps the
// opts.TermsPerTopic most probable terms of each. It never panics.
func (e *Extractor) Extract(ctx context.Context, documents []string, opts Options) Outcome {
	opts = opts.withDefaults()

	corpus := ValidateCorpus(documents)
	if corpus.Len() == 0 {
		slog.Warn("[TopicExtractor] No valid documents to model",
			slog.Int("submitted", len(documents)))
		return failed(ErrNoValidInput)
	}

	if err := ctx.Err(); err != nil {
		return failed(err)
	}

	bags := e.bags(corpus)
	if len(bags) == 0 {
		err := &InferenceError{Cause: errEmptyVocabulary}
		slog.Error("[TopicExtractor] Topic inference failed",
			slog.String("error", err.Error()))
		return failed(err)
	}

	found, err := e.infer(bags, opts)
	if err != nil {
		slog.Error("[TopicExtractor] Topic inference failed",
			slog.Int("documents", len(bags)),
			slog.String("error", err.Error()))
		return failed(err)
	}

	slog.Debug("[TopicExtractor] Extracted topics",
		slog.Int("documents", len(bags)),
		slog.Int("topics", len(found)))
	return Outcome{Topics: found}
}

// bags tokenises each document and drops stop words. The vectoriser re-splits
// bags with the same tokenizer, so vocabulary entries stay scorer tokens.
func (e *Extractor) bags(corpus ValidatedCorpus) []string {
	var bags []string
	for _, doc := range corpus.documents {
		var kept []string
		for _, tok := range e.tokenizer.Tokenize(doc) {
			if _, stop := e.stopSet[tok]; !stop {
				kept = append(kept, tok)
			}
		}
		if len(kept) > 0 {
			bags = append(bags, strings.Join(kept, " "))
		}
	}
	return bags
}

func (e *Extractor) infer(bags []string, opts Options) (found []models.Topic, err error) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			err = &InferenceError{Cause: fmt.Errorf("recovered: %v", r)}
		}
	}()

	vectoriser := nlp.NewCountVectoriser()
	vectoriser.Tokeniser = e.tokenizer

	lda := nlp.NewLatentDirichletAllocation(opts.TopicCount)
	lda.Iterations = e.iterations
	lda.TransformationPasses = max(e.iterations/2, 1)
	if e.processes > 0 {
		lda.Processes = e.processes
	}
	if e.seed != 0 {
		lda.Rnd = rand.New(rand.NewSource(uint64(e.seed)))
	}

	pipeline := nlp.NewPipeline(vectoriser, lda)
	if _, err := pipeline.FitTransform(bags...); err != nil {
		return nil, &InferenceError{Cause: err}
	}

	return rankTerms(lda.Components(), vectoriser.Vocabulary, opts.TermsPerTopic), nil
}

// rankTerms turns a topics-over-words matrix into topics carrying their n
// most probable terms. Rows are normalised first; rows with no weight are dropped.
func rankTerms(topicsOverWords mat.Matrix, vocabulary map[string]int, n int) []models.Topic {
	vocab := make([]string, len(vocabulary))
	for word, idx := range vocabulary {
		if idx >= 0 && idx < len(vocab) {
			vocab[idx] = word
		}
	}

	rows, cols := topicsOverWords.Dims()
	cols = min(cols, len(vocab))

	found := make([]models.Topic, 0, rows)
	for topic := 0; topic < rows; topic++ {
		var total float64
		for word := 0; word < cols; word++ {
			total += topicsOverWords.At(topic, word)
		}
		if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
			continue
		}

		terms := make([]models.Term, 0, cols)
		for word := 0; word < cols; word++ {
			if p := topicsOverWords.At(topic, word) / total; p > 0 && vocab[word] != "" {
				terms = append(terms, models.Term{Term: vocab[word], Probability: p})
			}
		}
		sort.SliceStable(terms, func(i, j int) bool {
			if terms[i].Probability != terms[j].Probability {
				return terms[i].Probability > terms[j].Probability
			}
			return terms[i].Term < terms[j].Term
		})
		if len(terms) > n {
			terms = terms[:n]
		}
		if len(terms) == 0 {
			continue
		}

		found = append(found, models.Topic{
			Terms:       terms,
			Probability: meanProbability(terms),
		})
	}
	return found
}

// meanProbability is the topic's average term confidence, not its mixture weight.
func meanProbability(terms []models.Term) float64 {
	if len(terms) == 0 {
		return 0
	}
	var sum float64
	for _, t := range terms {
		sum += t.Probability
	}
	return sum / float64(len(terms))
}
