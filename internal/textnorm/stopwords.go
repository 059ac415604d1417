package textnorm

import "sort"

// english is a conventional English stop list; topic terms are never drawn from it.
var english = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an", "and", "any", "are",
		"aren", "as", "at", "be", "because", "been", "before", "being", "below", "between", "both",
		"but", "by", "can", "cannot", "could", "couldn", "d", "did", "didn", "do", "does", "doesn",
		"doing", "don", "down", "during", "each", "few", "for", "from", "further", "had", "hadn",
		"has", "hasn", "have", "haven", "having", "he", "her", "here", "hers", "herself", "him",
		"himself", "his", "how", "i", "if", "in", "into", "is", "isn", "it", "its", "itself", "just",
		"ll", "m", "me", "more", "most", "mustn", "my", "myself", "no", "nor", "not", "now", "o",
		"of", "off", "on", "once", "only", "or", "other", "ought", "our", "ours", "ourselves", "out",
		"over", "own", "re", "s", "same", "shan", "she", "should", "shouldn", "so", "some", "such",
		"t", "than", "that", "the", "their", "theirs", "them", "themselves", "then", "there",
		"these", "they", "this", "those", "through", "to", "too", "under", "until", "up", "ve",
		"very", "was", "wasn", "we", "were", "weren", "what", "when", "where", "which", "while",
		"who", "whom", "why", "will", "with", "won", "would", "wouldn", "you", "your", "yours",
		"yourself", "yourselves",
	} {
		english[w] = struct{}{}
	}
}

// IsStopWord reports whether the folded token is on the English stop list.
func IsStopWord(token string) bool {
	_, ok := english[token]
	return ok
}

// StopWords returns the English stop list, sorted.
func StopWords() []string {
	words := make([]string, 0, len(english))
	for w := range english {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
