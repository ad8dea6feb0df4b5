// Package hyphen expands hyphenated words into their joined form and their
// sub-words.
package hyphen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
)

// DefaultHyphens are the characters treated as hyphens.
const DefaultHyphens = "-"

// Expand returns the variants of a hyphenated word, without the word itself.
//
// With subwords set and every hyphen-separated segment made of letters, the
// variants are the joined form followed, for each hyphen from the last to the
// first, by the text after the hyphen, the joined text before it (when it has
// at least two letters) and both rejoined by a hyphen. Without subwords only
// the joined form is returned, for any word containing a hyphen.
func Expand(word, hyphens string, subwords bool) []string {
	if hyphens == "" {
		hyphens = DefaultHyphens
	}
	var cuts []cut
	for i, r := range word {
		if strings.ContainsRune(hyphens, r) {
			cuts = append(cuts, cut{i, i + utf8.RuneLen(r)})
		}
	}
	if len(cuts) == 0 {
		return nil
	}

	segments := make([]string, 0, len(cuts)+1)
	prev := 0
	for _, c := range cuts {
		segments = append(segments, word[prev:c.start])
		prev = c.end
	}
	segments = append(segments, word[prev:])

	seen := map[string]struct{}{word: {}}
	var out []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	joined := strings.Join(segments, "")
	if !subwords {
		add(joined)
		return out
	}
	for _, seg := range segments {
		if !isLetters(seg) {
			return nil
		}
	}

	add(joined)
	for i := len(cuts) - 1; i >= 0; i-- {
		c := cuts[i]
		suffix := word[c.end:]
		prefix := strings.Join(segments[:i+1], "")
		add(suffix)
		if utf8.RuneCountInString(prefix) >= 2 {
			add(prefix)
		}
		add(prefix + word[c.start:c.end] + suffix)
	}
	return out
}

// cut is the byte span of one hyphen.
type cut struct {
	start, end int
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

type expansion struct {
	hyphens         string
	subwords        bool
	respectKeywords bool
}

func (e *expansion) Expand(dst []analysis.Part, src analysis.Token) []analysis.Part {
	if e.respectKeywords && src.Keyword {
		return dst
	}
	for _, v := range Expand(src.Term, e.hyphens, e.subwords) {
		dst = append(dst, analysis.Part{Term: v, Start: src.Start, End: src.End})
	}
	return dst
}

func (e *expansion) Reset() {}

// NewFilter emits every token followed by its hyphen variants on the same
// position. Variants keep the offsets of the token.
func NewFilter(in analysis.TokenStream, hyphens string, subwords bool) *analysis.ExpandFilter {
	return Factory{Hyphens: hyphens, Subwords: subwords}.newFilter(in)
}

// Factory creates hyphen filters. An empty Hyphens uses DefaultHyphens.
type Factory struct {
	Hyphens         string
	Subwords        bool
	RespectKeywords bool
}

// Create wraps in with a hyphen filter.
func (f Factory) Create(in analysis.TokenStream) analysis.TokenStream {
	return f.newFilter(in)
}

func (f Factory) newFilter(in analysis.TokenStream) *analysis.ExpandFilter {
	hyphens := f.Hyphens
	if hyphens == "" {
		hyphens = DefaultHyphens
	}
	return analysis.NewExpandFilter(in, &expansion{
		hyphens:         hyphens,
		subwords:        f.Subwords,
		respectKeywords: f.RespectKeywords,
	}, analysis.KeepSource)
}
