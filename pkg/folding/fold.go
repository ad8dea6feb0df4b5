// Package folding provides Unicode folding, normalization and collation key
// filters on top of golang.org/x/text.
package folding

import (
	"strings"
	"unicode"

	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letters that carry no decomposition but still fold to Latin base letters.
var specialLetters = strings.NewReplacer(
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"đ", "d",
	"ł", "l",
	"þ", "th",
	"ß", "ss",
)

// Fold case folds s and strips diacritics: "Jörg" => "jorg",
// "Ruß" => "russ", "cræzy" => "craezy".
func Fold(s string) string {
	// Transformers keep internal state, so every call gets its own chain.
	stripMarks := transform.Chain(
		cases.Fold(),
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return specialLetters.Replace(out)
}

// FoldRune folds a single rune. A lone combining mark folds to nothing.
func FoldRune(r rune) string {
	return Fold(string(r))
}

// FoldCharFilter folds text before tokenization, keeping an offset map so
// token offsets still point into the unfolded text.
var FoldCharFilter analysis.CharFilter = analysis.RuneMapper(FoldRune)

// NewFoldFilter folds every term. Keyword tokens pass through.
func NewFoldFilter(in analysis.TokenStream) analysis.TokenStream {
	f := analysis.NewTermFilter(in, Fold)
	f.SkipKeywords = true
	return f
}
