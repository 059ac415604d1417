// Package textnorm holds the text normalisation shared by topic extraction
// and sentiment scoring. Both sides fold case through Fold; if they did not,
// topic terms would silently stop matching scored tokens.
package textnorm

import (
	"regexp"

	"github.com/e-gun/nlp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s in NFKC form, lower-cased with English casing rules.
func Fold(s string) string {
	// a Caser keeps state between calls and must not be shared across goroutines
	return cases.Lower(language.English).String(norm.NFKC.String(s))
}

// WordPattern matches a token: a run of letters, combining marks and digits.
const WordPattern = `[\p{L}\p{M}\p{N}]+`

// Tokenizer splits folded text on word boundaries. Apostrophes and all other
// punctuation separate tokens, so "don't" yields "don" and "t".
// It satisfies nlp.Tokeniser, so a CountVectoriser can split with it too.
// The zero value is not usable; build one with NewTokenizer.
type Tokenizer struct {
	words *nlp.RegExpTokeniser
}

func NewTokenizer() Tokenizer {
	return Tokenizer{words: &nlp.RegExpTokeniser{RegExp: regexp.MustCompile(WordPattern)}}
}

// Tokenize returns the folded tokens of text in order of appearance.
func (t Tokenizer) Tokenize(text string) []string {
	var tokens []string
	t.ForEachIn(text, func(tok string) {
		tokens = append(tokens, tok)
	})
	return tokens
}

// Tokenise implements nlp.Tokeniser.
func (t Tokenizer) Tokenise(text string) []string {
	return t.Tokenize(text)
}

// ForEachIn implements nlp.Tokeniser.
func (t Tokenizer) ForEachIn(text string, f func(token string)) {
	t.words.ForEachIn(Fold(text), f)
}
