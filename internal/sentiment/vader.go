package sentiment

import (
	"github.com/jonreiter/govader"
	"github.com/kljensen/snowball/english"
)

// Lexicon maps a folded token to a polarity: positive, negative or 0 for
// words it does not know. Implementations must be safe for concurrent use.
type Lexicon interface {
	Polarity(token string) float64
}

type Stemmer interface {
	Stem(word string) string
}

// SnowballStemmer is the English snowball (Porter2) stemmer.
type SnowballStemmer struct{}

func (SnowballStemmer) Stem(word string) string {
	return english.Stem(word, false)
}

// VaderLexicon scores single words with the VADER lexicon. A word VADER does
// not know is retried in stemmed form, so "recommends" scores like "recommend".
type VaderLexicon struct {
	analyzer *govader.SentimentIntensityAnalyzer
	stemmer  Stemmer
}

// NewVaderLexicon loads the VADER lexicon once; share the result across requests.
// A nil stemmer disables the stemmed retry.
func NewVaderLexicon(stemmer Stemmer) *VaderLexicon {
	return &VaderLexicon{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		stemmer:  stemmer,
	}
}

func (l *VaderLexicon) Polarity(token string) float64 {
	if token == "" {
		return 0
	}
	if p := l.valence(token); p != 0 {
		return p
	}
	if l.stemmer == nil {
		return 0
	}
	stem := l.stemmer.Stem(token)
	if stem == "" || stem == token {
		return 0
	}
	return l.valence(stem)
}

// valence is VADER's compound score for a lone word: the lexicon valence
// squashed into (-1, 1), sign preserved.
func (l *VaderLexicon) valence(word string) float64 {
	return l.analyzer.PolarityScores(word).Compound
}

// MapLexicon is a fixed word to polarity table, handy for substitute lexicons.
type MapLexicon map[string]float64

func (m MapLexicon) Polarity(token string) float64 {
	return m[token]
}
