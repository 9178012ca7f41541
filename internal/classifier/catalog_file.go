package classifier

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
)

// catalogFile is the on-disk catalog definition.
type catalogFile struct {
	Rules     []ruleFile                 `yaml:"rules"`
	Relations *[]domain.CategoryRelation `yaml:"relations"`
}

type ruleFile struct {
	ID               string   `yaml:"id"`
	Category         string   `yaml:"category"`
	Description      string   `yaml:"description"`
	Patterns         []string `yaml:"patterns"`
	NegativePatterns []string `yaml:"negative_patterns"`
	ScoreModifier    int      `yaml:"score_modifier"`
	Confidence       string   `yaml:"confidence"`
}

// LoadCatalog returns the built-in catalog when path is empty and otherwise
// reads a definition file.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	return LoadCatalogFile(path)
}

// LoadCatalogFile reads a YAML catalog definition. Patterns use RE2 syntax.
// When the file has no relations section the built-in relations apply.
// Every failure wraps ErrInvalidCatalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidCatalog, path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog definition.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidCatalog, err)
	}

	rules := make([]domain.DetectionRule, 0, len(file.Rules))
	var errs []error
	for i, rf := range file.Rules {
		rule, err := rf.compile()
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d (%s): %w", i, rf.ID, err))
			continue
		}
		rules = append(rules, rule)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}

	relations := defaultRelations()
	if file.Relations != nil {
		relations = *file.Relations
	}
	return NewCatalog(rules, relations)
}

func (rf ruleFile) compile() (domain.DetectionRule, error) {
	category, ok := domain.ParseCategory(rf.Category)
	if !ok {
		return domain.DetectionRule{}, fmt.Errorf("unknown category %q", rf.Category)
	}
	confidence := domain.Confidence(rf.Confidence)
	if confidence == "" {
		confidence = domain.ConfidenceMedium
	}

	pos, err := compileAll(rf.Patterns)
	if err != nil {
		return domain.DetectionRule{}, err
	}
	neg, err := compileAll(rf.NegativePatterns)
	if err != nil {
		return domain.DetectionRule{}, err
	}

	return domain.DetectionRule{
		ID:               rf.ID,
		Category:         category,
		Description:      rf.Description,
		Patterns:         pos,
		NegativePatterns: neg,
		ScoreModifier:    rf.ScoreModifier,
		Confidence:       confidence,
	}, nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(e)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", e, err)
		}
		out = append(out, re)
	}
	return out, nil
}
