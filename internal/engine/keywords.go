package engine

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

const (
	frequentWordLimit = 30
	keywordLimit      = 25
)

var (
	termPatternsOnce sync.Once
	termPatterns     map[string]*regexp.Regexp
)

// termPattern matches a known skill as a standalone term, so that "Go" does not match "good".
func termPattern(term string) *regexp.Regexp {
	termPatternsOnce.Do(func() {
		termPatterns = make(map[string]*regexp.Regexp, len(allKnownSkills))
		for _, t := range allKnownSkills {
			termPatterns[t] = regexp.MustCompile(`(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(t) + `($|[^a-z0-9+#])`)
		}
	})
	return termPatterns[term]
}

// ExtractKeywords returns the known technology terms mentioned in text, in vocabulary order,
// followed by the most frequent non-stopword tokens (ties keep first occurrence), capped at 25.
func ExtractKeywords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var keywords []string
	techLower := make(map[string]bool)
	for _, term := range allKnownSkills {
		if techLower[strings.ToLower(term)] {
			continue
		}
		if termPattern(term).MatchString(text) {
			keywords = append(keywords, term)
			techLower[strings.ToLower(term)] = true
		}
	}

	for _, w := range frequentWords(text, frequentWordLimit) {
		if !techLower[w] {
			keywords = append(keywords, w)
		}
	}

	if len(keywords) > keywordLimit {
		keywords = keywords[:keywordLimit]
	}
	return keywords
}

type wordCount struct {
	word  string
	count int
}

func frequentWords(text string, n int) []string {
	counts := make(map[string]*wordCount)
	var order []*wordCount
	for _, w := range wordPattern.FindAllString(text, -1) {
		lw := strings.ToLower(w)
		if stopwords[lw] {
			continue
		}
		if c, ok := counts[lw]; ok {
			c.count++
			continue
		}
		c := &wordCount{word: lw, count: 1}
		counts[lw] = c
		order = append(order, c)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	var out []string
	for i, c := range order {
		if i == n {
			break
		}
		out = append(out, c.word)
	}
	return out
}
