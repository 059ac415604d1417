package models

import (
	"encoding/json"
	"strings"
)

// Term is one word of a topic with its within-topic probability.
type Term struct {
	Term        string
	Probability float64
}

// Topic is produced by extraction. Terms are ordered by descending probability;
// Probability is the mean of the term probabilities.
type Topic struct {
	Terms       []Term
	Probability float64
}

// topicJSON is the wire shape: terms as plain words, their probabilities alongside.
type topicJSON struct {
	Terms             []string  `json:"terms"`
	TermProbabilities []float64 `json:"termProbabilities"`
	Probability       float64   `json:"probability"`
}

func (t Topic) MarshalJSON() ([]byte, error) {
	probs := make([]float64, len(t.Terms))
	for i, term := range t.Terms {
		probs[i] = term.Probability
	}
	return json.Marshal(topicJSON{
		Terms:             t.Words(),
		TermProbabilities: probs,
		Probability:       t.Probability,
	})
}

// UnmarshalJSON accepts a missing or short termProbabilities; absent entries are 0.
func (t *Topic) UnmarshalJSON(data []byte) error {
	var raw topicJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	terms := make([]Term, len(raw.Terms))
	for i, word := range raw.Terms {
		terms[i].Term = word
		if i < len(raw.TermProbabilities) {
			terms[i].Probability = raw.TermProbabilities[i]
		}
	}
	*t = Topic{Terms: terms, Probability: raw.Probability}
	return nil
}

// Words returns the topic's terms in display order.
func (t Topic) Words() []string {
	words := make([]string, len(t.Terms))
	for i, term := range t.Terms {
		words[i] = term.Term
	}
	return words
}

// Label joins the terms the way topics are named in responses, e.g. "staff, service, great".
func (t Topic) Label() string {
	return strings.Join(t.Words(), ", ")
}
