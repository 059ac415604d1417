// Package sentiment scores text restricted to the vocabulary of term groups,
// typically the terms of one extracted topic.
package sentiment

import (
	"sort"
	"strings"

	"github.com/spacesedan/reviewtopics/internal/textnorm"
)

// TermGroup is a topic's terms used as a scoring filter. Terms are folded and
// deduplicated; order does not matter for scoring.
type TermGroup struct {
	Label string
	terms map[string]struct{}
}

func NewTermGroup(label string, terms ...string) TermGroup {
	set := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = textnorm.Fold(strings.TrimSpace(term))
		if term != "" {
			set[term] = struct{}{}
		}
	}
	return TermGroup{Label: label, terms: set}
}

// Size is the number of distinct terms, the group's weight in averages.
func (g TermGroup) Size() int {
	return len(g.terms)
}

func (g TermGroup) Contains(token string) bool {
	_, ok := g.terms[token]
	return ok
}

// Terms returns the distinct terms, sorted.
func (g TermGroup) Terms() []string {
	out := make([]string, 0, len(g.terms))
	for t := range g.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

type Result struct {
	Label     string
	Sentiment float64
	// Matched counts tokens of the text found in the group.
	Matched int
	// Weight is the group size when anything matched, 0 otherwise.
	Weight int
}

type Report struct {
	Results []Result
	Average float64
}

// Scorer holds only read-only configuration and is safe for concurrent use.
type Scorer struct {
	lexicon   Lexicon
	tokenizer textnorm.Tokenizer
}

func NewScorer(lexicon Lexicon, tokenizer textnorm.Tokenizer) *Scorer {
	return &Scorer{lexicon: lexicon, tokenizer: tokenizer}
}

// Score returns one result per group, in order, and their weighted average.
// A group sharing no token with text scores exactly 0 and carries no weight.
func (s *Scorer) Score(text string, groups []TermGroup) Report {
	tokens := s.tokenizer.Tokenize(text)

	results := make([]Result, len(groups))
	for i, group := range groups {
		results[i] = s.scoreGroup(tokens, group)
	}

	return Report{Results: results, Average: WeightedAverage(results)}
}

func (s *Scorer) scoreGroup(tokens []string, group TermGroup) Result {
	result := Result{Label: group.Label}

	var sum float64
	for _, tok := range tokens {
		if group.Contains(tok) {
			sum += s.lexicon.Polarity(tok)
			result.Matched++
		}
	}
	if result.Matched == 0 {
		return result
	}

	result.Sentiment = sum / float64(result.Matched)
	result.Weight = group.Size()
	return result
}

// WeightedAverage weights each result by its Weight; 0 when nothing carries weight.
func WeightedAverage(results []Result) float64 {
	var total float64
	var weight int
	for _, r := range results {
		if r.Weight <= 0 {
			continue
		}
		total += r.Sentiment * float64(r.Weight)
		weight += r.Weight
	}
	if weight == 0 {
		return 0
	}
	return total / float64(weight)
}
