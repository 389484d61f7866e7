package moderation

import (
	"regexp"
	"sort"
	"strings"
)

// Screening categories
const (
	CategoryCrisis = "crisis"
	CategoryToxic  = "toxic"
	CategorySpam   = "spam"
)

// ScreeningResult lists what the screener found in a text
type ScreeningResult struct {
	Flagged    bool
	Categories []string
	Matches    map[string][]string
}

// HasCategory reports whether category was matched
func (r ScreeningResult) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// IsCrisis reports whether the text suggests the author may be at risk
func (r ScreeningResult) IsCrisis() bool {
	return r.HasCategory(CategoryCrisis)
}

// DefaultKeywords are the phrases screened per category
var DefaultKeywords = map[string][]string{
	CategoryCrisis: {
		"suicide", "kill myself", "end it all", "better off dead", "want to die",
		"planning to die", "end my life", "harm myself", "hurt myself", "cut myself", "self-harm",
	},
	CategoryToxic: {
		"idiot", "stupid", "worthless", "loser", "shut up", "hate you",
	},
	CategorySpam: {
		"buy now", "click here", "free money", "limited offer", "earn cash", "crypto giveaway",
	},
}

var linkPattern = regexp.MustCompile(`https?://\S+`)

// maxLinks is the number of links above which a text counts as spam
const maxLinks = 3

// Screener matches text against keyword lists
type Screener struct {
	patterns map[string][]*regexp.Regexp
	phrases  map[string][]string
}

// NewScreener compiles keyword lists. A nil map uses DefaultKeywords.
func NewScreener(keywords map[string][]string) *Screener {
	if keywords == nil {
		keywords = DefaultKeywords
	}
	s := &Screener{
		patterns: make(map[string][]*regexp.Regexp, len(keywords)),
		phrases:  make(map[string][]string, len(keywords)),
	}
	for category, phrases := range keywords {
		for _, phrase := range phrases {
			phrase = strings.ToLower(strings.TrimSpace(phrase))
			if phrase == "" {
				continue
			}
			pattern := regexp.MustCompile(`(^|\W)` + regexp.QuoteMeta(phrase) + `($|\W)`)
			s.patterns[category] = append(s.patterns[category], pattern)
			s.phrases[category] = append(s.phrases[category], phrase)
		}
	}
	return s
}

// Screen reports the categories text matches
func (s *Screener) Screen(text string) ScreeningResult {
	result := ScreeningResult{Matches: map[string][]string{}}
	lower := strings.ToLower(text)

	for category, patterns := range s.patterns {
		for i, pattern := range patterns {
			if pattern.MatchString(lower) {
				result.Matches[category] = append(result.Matches[category], s.phrases[category][i])
			}
		}
	}
	if links := linkPattern.FindAllString(lower, -1); len(links) > maxLinks {
		result.Matches[CategorySpam] = append(result.Matches[CategorySpam], "excessive links")
	}

	for category := range result.Matches {
		result.Categories = append(result.Categories, category)
	}
	sort.Strings(result.Categories)
	result.Flagged = len(result.Categories) > 0
	return result
}
