package analysis

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/unicode/norm"
)

// NormalizerFunc defines a single normalization step.
type NormalizerFunc func(string) string

// Normalizer applies a configurable pipeline of normalization steps.
type Normalizer struct {
	steps []NormalizerFunc
}

// DefaultNormalizerSteps is the full search-key pipeline: decompose, clean,
// lowercase, fold punctuation and ligatures, strip accents, stem.
var DefaultNormalizerSteps = []NormalizerFunc{
	NFKDDecompose,
	RemoveControlChars,
	Lowercase,
	NormalizeQuotes,
	ExpandLigatures,
	ConvertEszett,
	RemoveCombiningMarks,
	StemGerman,
}

// NewNormalizer creates a normalizer with the default pipeline.
func NewNormalizer() *Normalizer {
	return NewNormalizerWithSteps(DefaultNormalizerSteps...)
}

// NewNormalizerWithSteps creates a normalizer with a custom pipeline.
func NewNormalizerWithSteps(steps ...NormalizerFunc) *Normalizer {
	return &Normalizer{steps: steps}
}

// Normalize applies all configured steps in order.
func (n *Normalizer) Normalize(s string) string {
	for _, step := range n.steps {
		s = step(s)
	}
	return s
}

// NormalizerStep returns the step registered under name.
func NormalizerStep(name string) (NormalizerFunc, bool) {
	step, ok := normalizerSteps[name]
	return step, ok
}

var normalizerSteps = map[string]NormalizerFunc{
	"nfkd":                   NFKDDecompose,
	"remove_control_chars":   RemoveControlChars,
	"lowercase":              Lowercase,
	"normalize_quotes":       NormalizeQuotes,
	"expand_ligatures":       ExpandLigatures,
	"convert_eszett":         ConvertEszett,
	"remove_combining_marks": RemoveCombiningMarks,
	"stem_german":            StemGerman,
}

// NFKDDecompose applies Unicode NFKD normalization.
// Decomposes ä → a + combining_umlaut, ﬁ → fi, etc.
func NFKDDecompose(s string) string {
	return norm.NFKD.String(s)
}

// RemoveControlChars removes Unicode control characters.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Lowercase converts to lowercase.
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// quoteReplacements maps typographic quotes to ASCII.
var quoteReplacements = map[rune]rune{
	'\u201E': '"',  // „ German opening quote
	'\u201C': '"',  // left double quote
	'\u201D': '"',  // right double quote
	'\u00AB': '"',  // « left-pointing double angle
	'\u00BB': '"',  // » right-pointing double angle
	'\u2018': '\'', // left single quote
	'\u2019': '\'', // right single quote
	'\u201A': '\'', // ‚ single low-9 quote
	'\u2039': '\'', // ‹ single left-pointing angle
	'\u203A': '\'', // › single right-pointing angle
}

// NormalizeQuotes converts typographic quotes to ASCII.
func NormalizeQuotes(s string) string {
	return strings.Map(func(r rune) rune {
		if replacement, ok := quoteReplacements[r]; ok {
			return replacement
		}
		return r
	}, s)
}

var ligatures = strings.NewReplacer("æ", "ae", "Æ", "ae", "œ", "oe", "Œ", "oe")

// ExpandLigatures expands æ→ae, œ→oe.
func ExpandLigatures(s string) string {
	return ligatures.Replace(s)
}

// ConvertEszett converts ß to ss.
// NFKD does not decompose ß, so explicit conversion is needed.
func ConvertEszett(s string) string {
	return strings.ReplaceAll(s, "ß", "ss")
}

// RemoveCombiningMarks removes Unicode combining characters (category Mn).
// Removes umlaut dots after NFKD decomposition.
func RemoveCombiningMarks(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
}

// StemGerman applies the German Snowball stemmer.
func StemGerman(s string) string {
	stemmed, err := snowball.Stem(s, "german", true)
	if err != nil {
		return s
	}
	return stemmed
}
