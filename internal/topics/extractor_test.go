package topics

import (
	"context"
	"errors"
	"testing"

	"github.com/spacesedan/reviewtopics/internal/models"
	"github.com/spacesedan/reviewtopics/internal/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newTestExtractor() *Extractor {
	return NewExtractor(Config{Iterations: 50, Processes: 1})
}

func termSet(found []models.Topic) map[string]struct{} {
	set := make(map[string]struct{})
	for _, topic := range found {
		for _, w := range topic.Words() {
			set[w] = struct{}{}
		}
	}
	return set
}

func TestValidateCorpus(t *testing.T) {
	corpus := ValidateCorpus([]string{"", "   ", "\n\t", "Great **Service**", "ok"})

	require.Equal(t, 2, corpus.Len())
	assert.Equal(t, []string{"great service", "ok"}, corpus.Documents())

	// callers cannot mutate the corpus through the returned slice
	docs := corpus.Documents()
	docs[0] = "changed"
	assert.Equal(t, "great service", corpus.Documents()[0])
}

func TestExtract_NoValidInput(t *testing.T) {
	ex := newTestExtractor()

	for _, docs := range [][]string{nil, {}, {"", "   ", "\t"}} {
		out := ex.Extract(context.Background(), docs, Options{})
		assert.False(t, out.OK())
		assert.ErrorIs(t, out.Err, ErrNoValidInput)
		assert.NotNil(t, out.Topics)
		assert.Empty(t, out.Topics)
	}
}

func TestExtract_OnlyStopWords(t *testing.T) {
	out := newTestExtractor().Extract(context.Background(), []string{"the and of", "was with"}, Options{})

	assert.Empty(t, out.Topics)
	assert.ErrorIs(t, out.Err, ErrInferenceFailure)

	var inferenceErr *InferenceError
	require.True(t, errors.As(out.Err, &inferenceErr))
	assert.ErrorIs(t, inferenceErr.Cause, errEmptyVocabulary)
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := newTestExtractor().Extract(ctx, []string{"great service"}, Options{})
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.Empty(t, out.Topics)
}

func TestExtract_SingleReview(t *testing.T) {
	allowed := map[string]bool{
		"great": true, "experience": true, "friendly": true,
		"staff": true, "excellent": true, "service": true,
	}

	out := newTestExtractor().Extract(context.Background(),
		[]string{"Great experience! Friendly staff and excellent service."},
		Options{TopicCount: 1, TermsPerTopic: 3})

	require.True(t, out.OK(), "unexpected error: %v", out.Err)
	require.Len(t, out.Topics, 1)

	topic := out.Topics[0]
	require.Len(t, topic.Terms, 3)
	for i, term := range topic.Terms {
		assert.True(t, allowed[term.Term], "unexpected term %q", term.Term)
		if i > 0 {
			assert.GreaterOrEqual(t, topic.Terms[i-1].Probability, term.Probability)
		}
	}
	assert.InDelta(t, meanProbability(topic.Terms), topic.Probability, 1e-12)
}

func TestExtract_DefaultShape(t *testing.T) {
	docs := []string{
		"Great experience! Friendly staff and excellent service.",
		"Not satisfied with the quality. The product was damaged.",
		"Highly recommended. Will definitely visit again.",
		"The staff were friendly and the coffee was excellent.",
	}

	out := newTestExtractor().Extract(context.Background(), docs, Options{})

	require.True(t, out.OK(), "unexpected error: %v", out.Err)
	require.NotEmpty(t, out.Topics)
	assert.LessOrEqual(t, len(out.Topics), DefaultTopicCount)
	for _, topic := range out.Topics {
		assert.Len(t, topic.Terms, DefaultTermsPerTopic)
		for _, w := range topic.Words() {
			assert.False(t, textnorm.IsStopWord(w), "stop word %q in topic", w)
		}
	}
}

func TestExtract_SmallVocabulary(t *testing.T) {
	out := newTestExtractor().Extract(context.Background(), []string{"lovely view"},
		Options{TopicCount: 1, TermsPerTopic: 5})

	require.True(t, out.OK(), "unexpected error: %v", out.Err)
	require.Len(t, out.Topics, 1)
	assert.ElementsMatch(t, []string{"lovely", "view"}, out.Topics[0].Words())
}

func TestExtract_CaseFolding(t *testing.T) {
	ex := newTestExtractor()
	opts := Options{TopicCount: 1, TermsPerTopic: 2}

	upper := ex.Extract(context.Background(), []string{"Great Service"}, opts)
	lower := ex.Extract(context.Background(), []string{"great service"}, opts)

	require.True(t, upper.OK())
	require.True(t, lower.OK())
	assert.Equal(t, termSet(lower.Topics), termSet(upper.Topics))
	assert.Contains(t, termSet(upper.Topics), "great")
}

func TestExtract_TermsAreScorerTokens(t *testing.T) {
	tokenizer := textnorm.NewTokenizer()
	ex := NewExtractor(Config{Iterations: 50, Processes: 1, Tokenizer: &tokenizer})

	docs := []string{
		"Covid19 rules were strict. Covid19 masks everywhere, covid19 testing great.",
		"A 5star stay, café staff spoke naïvely about 5star reviews.",
	}
	out := ex.Extract(context.Background(), docs, Options{TopicCount: 2, TermsPerTopic: 6})
	require.True(t, out.OK(), "unexpected error: %v", out.Err)

	tokens := make(map[string]bool)
	for _, doc := range docs {
		for _, tok := range tokenizer.Tokenize(doc) {
			tokens[tok] = true
		}
	}

	found := termSet(out.Topics)
	require.NotEmpty(t, found)
	for term := range found {
		assert.True(t, tokens[term], "topic term %q is not a token of the text", term)
	}
	assert.NotContains(t, found, "covid")
	assert.NotContains(t, found, "star")
}

func TestExtract_SeededIsRepeatable(t *testing.T) {
	docs := []string{
		"Great experience! Friendly staff and excellent service.",
		"Not satisfied with the quality. The product was damaged.",
		"Highly recommended. Will definitely visit again.",
	}
	cfg := Config{Iterations: 50, Processes: 1, Seed: 42}

	first := NewExtractor(cfg).Extract(context.Background(), docs, Options{})
	second := NewExtractor(cfg).Extract(context.Background(), docs, Options{})

	require.True(t, first.OK(), "unexpected error: %v", first.Err)
	assert.Equal(t, first.Topics, second.Topics)
}

func TestRankTerms(t *testing.T) {
	vocabulary := map[string]int{"staff": 0, "service": 1, "food": 2, "view": 3}
	topicsOverWords := mat.NewDense(3, 4, []float64{
		2, 1, 1, 0,
		0, 0, 0, 0, // no weight: dropped
		1, 1, 1, 1, // ties broken alphabetically
	})

	found := rankTerms(topicsOverWords, vocabulary, 2)

	require.Len(t, found, 2)
	assert.Equal(t, []string{"staff", "food"}, found[0].Words())
	assert.InDelta(t, 0.5, found[0].Terms[0].Probability, 1e-12)
	assert.InDelta(t, 0.25, found[0].Terms[1].Probability, 1e-12)
	assert.InDelta(t, 0.375, found[0].Probability, 1e-12)

	assert.Equal(t, []string{"food", "service"}, found[1].Words())
	assert.InDelta(t, 0.25, found[1].Probability, 1e-12)
}

func TestOptionsDefaults(t *testing.T) {
	assert.Equal(t, Options{TopicCount: 2, TermsPerTopic: 3}, Options{}.withDefaults())
	assert.Equal(t, Options{TopicCount: 4, TermsPerTopic: 3}, Options{TopicCount: 4, TermsPerTopic: -1}.withDefaults())
}
