package render

import (
	"sort"
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "but", "is", "are", "was", "were",
		"in", "on", "at", "to", "for", "with", "by", "about", "of", "from",
		"that", "this", "these", "those", "it", "its", "they", "them", "their",
		"he", "she", "his", "her", "we", "our", "you", "your", "has", "have",
		"had", "been", "would", "could", "should", "will", "may", "can", "be",
		"as", "if", "than", "when", "what", "who", "how", "why", "where", "which",
	} {
		stopWords[w] = struct{}{}
	}
}

// ExtractKeywords returns up to n keywords from text by simple frequency
// analysis over stopword-filtered words longer than three characters. Ties
// break alphabetically so the result is deterministic.
func ExtractKeywords(text string, n int) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	counts := map[string]int{}
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		counts[word]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}

// Hashtags derives an ordered tag list (without the # prefix) from text: a
// fixed industry lead tag followed by capitalized extracted keywords.
func Hashtags(text string, n int) []string {
	tags := []string{"Pharma"}
	for _, kw := range ExtractKeywords(text, n) {
		tag := capitalize(kw)
		if tag == "Pharma" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// HashtagLine renders tags as a single "#A #B" line.
func HashtagLine(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " ")
}

func capitalize(w string) string {
	rs := []rune(w)
	if len(rs) == 0 {
		return w
	}
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}
