package topics

import (
	"strings"

	"github.com/spacesedan/reviewtopics/internal/textnorm"
)

// ValidatedCorpus holds documents that survived validation: non-empty,
// stripped of markup and case-folded. Build one with ValidateCorpus.
type ValidatedCorpus struct {
	documents []string
}

// ValidateCorpus drops empty and whitespace-only documents and normalises the rest.
func ValidateCorpus(documents []string) ValidatedCorpus {
	valid := make([]string, 0, len(documents))
	for _, doc := range documents {
		if strings.TrimSpace(doc) == "" {
			continue
		}
		plain := textnorm.StripMarkup(doc)
		if plain == "" {
			continue
		}
		valid = append(valid, textnorm.Fold(plain))
	}
	return ValidatedCorpus{documents: valid}
}

func (c ValidatedCorpus) Len() int {
	return len(c.documents)
}

// Documents returns a copy of the validated documents.
func (c ValidatedCorpus) Documents() []string {
	out := make([]string, len(c.documents))
	copy(out, c.documents)
	return out
}
