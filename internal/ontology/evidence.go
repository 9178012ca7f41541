package ontology

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

// placeholder marks a free slot inside an indicator ("~충", "역시 ~다운").
const placeholder = "~"

// Evidence is one indicator found in a comment.
type Evidence struct {
	Category  domain.Category `json:"category"`
	Indicator string          `json:"indicator"`
}

// String renders the evidence the way the analyzer prompt expects it.
func (e Evidence) String() string {
	return fmt.Sprintf("지표 '%s'가 매칭되며 카테고리 '%s' 근거가 됩니다.", e.Indicator, e.Category)
}

// EvidenceMatcher finds ontology indicators in text with a single
// Aho-Corasick pass. It is immutable after construction and safe for
// concurrent use.
type EvidenceMatcher struct {
	matcher    *ahocorasick.Matcher
	keywords   []string
	categories [][]domain.Category
}

// NewEvidenceMatcher indexes the indicators of nodes.
func NewEvidenceMatcher(nodes []Node) *EvidenceMatcher {
	m := &EvidenceMatcher{}
	index := make(map[string]int)
	for _, n := range nodes {
		for _, raw := range n.Indicators {
			kw := literalStem(raw)
			if kw == "" {
				continue
			}
			i, ok := index[kw]
			if !ok {
				i = len(m.keywords)
				index[kw] = i
				m.keywords = append(m.keywords, kw)
				m.categories = append(m.categories, nil)
			}
			if !containsCategory(m.categories[i], n.Category) {
				m.categories[i] = append(m.categories[i], n.Category)
			}
		}
	}
	if len(m.keywords) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(m.keywords)
	}
	return m
}

// DefaultEvidenceMatcher indexes the shipped ontology.
func DefaultEvidenceMatcher() *EvidenceMatcher {
	return NewEvidenceMatcher(nodes)
}

// Len returns the number of distinct indexed indicators.
func (m *EvidenceMatcher) Len() int { return len(m.keywords) }

// Match returns evidence ordered by indicator position in the ontology.
// An indicator shared by several categories yields one hit per category.
func (m *EvidenceMatcher) Match(text string) []Evidence {
	if m == nil || m.matcher == nil || text == "" {
		return nil
	}
	hits := m.matcher.MatchThreadSafe([]byte(text))
	if len(hits) == 0 {
		return nil
	}
	sort.Ints(hits)

	out := make([]Evidence, 0, len(hits))
	for _, idx := range hits {
		if idx < 0 || idx >= len(m.keywords) {
			continue
		}
		for _, c := range m.categories[idx] {
			out = append(out, Evidence{Category: c, Indicator: m.keywords[idx]})
		}
	}
	return out
}

// literalStem reduces an indicator to the text that can be matched
// literally. Placeholder indicators keep their longest literal segment;
// a one-rune stem left over from a placeholder is too ambiguous to index.
func literalStem(indicator string) string {
	if !strings.Contains(indicator, placeholder) {
		return strings.TrimSpace(indicator)
	}
	best := ""
	for _, seg := range strings.Split(indicator, placeholder) {
		seg = strings.TrimSpace(seg)
		if utf8.RuneCountInString(seg) > utf8.RuneCountInString(best) {
			best = seg
		}
	}
	if utf8.RuneCountInString(best) < 2 {
		return ""
	}
	return best
}

func containsCategory(list []domain.Category, c domain.Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}
