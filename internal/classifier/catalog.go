// Package classifier implements the rule-based toxicity engine: catalog
// evaluation, severity scoring, level mapping, the merge with an external
// analyzer's judgment, and corpus summaries.
package classifier

import (
	"errors"
	"fmt"
	"sync"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

// ErrInvalidCatalog marks a rule catalog that cannot be used. It is a startup
// failure, never a per-comment one.
var ErrInvalidCatalog = errors.New("invalid rule catalog")

const maxScore = 100

// Catalog is an immutable set of detection rules and category relations.
// It is safe to share between goroutines.
type Catalog struct {
	rules     []domain.DetectionRule
	relations []domain.CategoryRelation
}

// NewCatalog validates and copies rules and relations. An empty catalog is
// allowed; it simply never matches.
func NewCatalog(rules []domain.DetectionRule, relations []domain.CategoryRelation) (*Catalog, error) {
	var errs []error
	seen := make(map[string]struct{}, len(rules))

	for i := range rules {
		r := &rules[i]
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("rule %d: empty id", i))
			continue
		}
		if _, dup := seen[r.ID]; dup {
			errs = append(errs, fmt.Errorf("rule %s: duplicate id", r.ID))
		}
		seen[r.ID] = struct{}{}

		if !r.Category.Valid() {
			errs = append(errs, fmt.Errorf("rule %s: unknown category %q", r.ID, r.Category))
		}
		if r.ScoreModifier < 0 || r.ScoreModifier > maxScore {
			errs = append(errs, fmt.Errorf("rule %s: score modifier %d outside [0,100]", r.ID, r.ScoreModifier))
		}
		if !r.Confidence.Valid() {
			errs = append(errs, fmt.Errorf("rule %s: unknown confidence %q", r.ID, r.Confidence))
		}
		if len(r.Patterns) == 0 {
			errs = append(errs, fmt.Errorf("rule %s: no patterns", r.ID))
		}
		for j, p := range r.Patterns {
			if p == nil {
				errs = append(errs, fmt.Errorf("rule %s: pattern %d is nil", r.ID, j))
			}
		}
		for j, p := range r.NegativePatterns {
			if p == nil {
				errs = append(errs, fmt.Errorf("rule %s: negative pattern %d is nil", r.ID, j))
			}
		}
	}

	for i, rel := range relations {
		if !rel.From.Valid() || !rel.To.Valid() {
			errs = append(errs, fmt.Errorf("relation %d: unknown category in %s -> %s", i, rel.From, rel.To))
		}
		if rel.Bonus < 0 || rel.Bonus > maxScore {
			errs = append(errs, fmt.Errorf("relation %d: bonus %d outside [0,100]", i, rel.Bonus))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}

	c := &Catalog{
		rules:     make([]domain.DetectionRule, len(rules)),
		relations: make([]domain.CategoryRelation, len(relations)),
	}
	copy(c.rules, rules)
	copy(c.relations, relations)
	return c, nil
}

// Rules returns a copy of the rules in evaluation order.
func (c *Catalog) Rules() []domain.DetectionRule {
	out := make([]domain.DetectionRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Relations returns a copy of the relation table.
func (c *Catalog) Relations() []domain.CategoryRelation {
	out := make([]domain.CategoryRelation, len(c.relations))
	copy(out, c.relations)
	return out
}

// Len is the number of rules.
func (c *Catalog) Len() int { return len(c.rules) }

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog(defaultRules(), defaultRelations())
	if err != nil {
		panic(err)
	}
	return c
})

// DefaultCatalog returns the built-in Korean comment catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}
