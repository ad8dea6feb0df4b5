package folding

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Strength selects which differences a collator takes into account.
type Strength int

const (
	// Tertiary distinguishes base letters, accents and case.
	Tertiary Strength = iota
	// Primary only distinguishes base letters.
	Primary
	// Secondary distinguishes base letters and accents.
	Secondary
	// Identical also breaks ties on code points.
	Identical
)

var strengthNames = map[string]Strength{
	"primary":   Primary,
	"secondary": Secondary,
	"tertiary":  Tertiary,
	"identical": Identical,
}

// ParseStrength parses a strength name. The empty name is Tertiary.
func ParseStrength(name string) (Strength, error) {
	if name == "" {
		return Tertiary, nil
	}
	s, ok := strengthNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown collation strength %q", name)
	}
	return s, nil
}

// Collation configures a locale-aware collator.
type Collation struct {
	Language string
	Strength Strength
	Numeric  bool
}

// Collator builds a new collator. Collators are not safe for concurrent
// use; build one per goroutine.
func (c Collation) Collator() (*collate.Collator, error) {
	tag := language.Und
	if c.Language != "" {
		var err error
		tag, err = language.Parse(c.Language)
		if err != nil {
			return nil, fmt.Errorf("collation language %q: %w", c.Language, err)
		}
	}

	var opts []collate.Option
	switch c.Strength {
	case Primary:
		opts = append(opts, collate.Loose)
	case Secondary:
		opts = append(opts, collate.IgnoreCase, collate.IgnoreWidth)
	case Identical:
		opts = append(opts, collate.Force)
	}
	if c.Numeric {
		opts = append(opts, collate.Numeric)
	}
	return collate.New(tag, opts...), nil
}

// Compare orders a and b under c: -1, 0 or 1. An invalid language falls
// back to the root collation.
func Compare(c Collation, a, b string) int {
	col, err := c.Collator()
	if err != nil {
		col, _ = Collation{Strength: c.Strength, Numeric: c.Numeric}.Collator()
	}
	return col.CompareString(a, b)
}

// CollationFilter replaces each term by its hex encoded collation key, so
// that byte order of the terms follows the collation order.
type CollationFilter struct {
	input    analysis.TokenStream
	collator *collate.Collator
	buf      collate.Buffer
}

// NewCollationFilter creates a collation key filter. Combined with the
// keyword tokenizer it produces one sort key per field value.
func NewCollationFilter(in analysis.TokenStream, c Collation) (*CollationFilter, error) {
	col, err := c.Collator()
	if err != nil {
		return nil, err
	}
	return &CollationFilter{input: in, collator: col}, nil
}

// Next returns the next token with its term replaced by the collation key.
func (f *CollationFilter) Next() (analysis.Token, bool) {
	tok, ok := f.input.Next()
	if !ok {
		return analysis.Token{}, false
	}
	key := f.collator.KeyFromString(&f.buf, tok.Term)
	tok.Term = hex.EncodeToString(key)
	tok.Type = analysis.TokenCollationKey
	f.buf.Reset()
	return tok, true
}

// Reset resets upstream.
func (f *CollationFilter) Reset() {
	f.input.Reset()
}

// CollationFactory creates collation filters. The configuration is checked
// once by NewCollationFactory; each stream gets its own collator.
type CollationFactory struct {
	Collation Collation
}

// NewCollationFactory validates c.
func NewCollationFactory(c Collation) (CollationFactory, error) {
	if _, err := c.Collator(); err != nil {
		return CollationFactory{}, err
	}
	return CollationFactory{Collation: c}, nil
}

// Create wraps in with a collation filter.
func (f CollationFactory) Create(in analysis.TokenStream) analysis.TokenStream {
	cf, err := NewCollationFilter(in, f.Collation)
	if err != nil {
		panic(fmt.Sprintf("folding: unchecked collation: %v", err))
	}
	return cf
}
