package analysis

import "strings"

// TermFilter rewrites each token's term in place. Keyword tokens are left
// alone when SkipKeywords is set.
type TermFilter struct {
	input        TokenStream
	rewrite      func(string) string
	SkipKeywords bool
}

// NewTermFilter creates a TermFilter applying rewrite to every term.
func NewTermFilter(in TokenStream, rewrite func(string) string) *TermFilter {
	return &TermFilter{input: in, rewrite: rewrite}
}

// Next returns the next token with its term rewritten.
func (f *TermFilter) Next() (Token, bool) {
	tok, ok := f.input.Next()
	if !ok {
		return Token{}, false
	}
	if f.SkipKeywords && tok.Keyword {
		return tok, true
	}
	tok.Term = f.rewrite(tok.Term)
	return tok, true
}

// Reset resets upstream.
func (f *TermFilter) Reset() {
	f.input.Reset()
}

// NewLowercaseFilter lowercases every term.
func NewLowercaseFilter(in TokenStream) TokenStream {
	return NewTermFilter(in, strings.ToLower)
}

// NewNormalizerFilter applies n to every term. Keyword tokens pass through.
func NewNormalizerFilter(in TokenStream, n *Normalizer) TokenStream {
	f := NewTermFilter(in, n.Normalize)
	f.SkipKeywords = true
	return f
}

// NewStemFilter applies the German Snowball stemmer to every non-keyword
// term. Terms are lowercased first since the stemmer expects lowercase input.
func NewStemFilter(in TokenStream) TokenStream {
	f := NewTermFilter(in, func(s string) string {
		return StemGerman(strings.ToLower(s))
	})
	f.SkipKeywords = true
	return f
}

// StopFilter removes stop words. The position increment of a removed token
// is added to the next emitted token so phrase distances are preserved.
type StopFilter struct {
	input  TokenStream
	words  map[string]struct{}
	ignore bool
}

// NewStopFilter removes the given words. With ignoreCase, terms are compared
// lowercased and words must be given lowercase.
func NewStopFilter(in TokenStream, words map[string]struct{}, ignoreCase bool) *StopFilter {
	return &StopFilter{input: in, words: words, ignore: ignoreCase}
}

// Next returns the next token that is not a stop word.
func (f *StopFilter) Next() (Token, bool) {
	skipped := 0
	for {
		tok, ok := f.input.Next()
		if !ok {
			return Token{}, false
		}
		term := tok.Term
		if f.ignore {
			term = strings.ToLower(term)
		}
		if _, stop := f.words[term]; stop {
			skipped += tok.PosInc
			continue
		}
		tok.PosInc += skipped
		return tok, true
	}
}

// Reset resets upstream.
func (f *StopFilter) Reset() {
	f.input.Reset()
}

// StopWordSet builds a lookup set from words, lowercasing them.
func StopWordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// GermanStopWords is a short list of German function words.
var GermanStopWords = []string{
	"aber", "alle", "als", "also", "am", "an", "auch", "auf", "aus", "bei",
	"bin", "bis", "bist", "da", "damit", "dann", "das", "dass", "dem", "den",
	"der", "des", "die", "dies", "doch", "dort", "du", "durch", "ein", "eine",
	"einem", "einen", "einer", "eines", "er", "es", "für", "hat", "hatte",
	"ich", "ihr", "im", "in", "ist", "ja", "jede", "kann", "kein", "man",
	"mit", "nach", "nicht", "noch", "nun", "nur", "ob", "oder", "ohne",
	"sehr", "sein", "sich", "sie", "sind", "so", "über", "um", "und", "uns",
	"unter", "vom", "von", "vor", "war", "was", "wenn", "wer", "wie", "wir",
	"wird", "wo", "zu", "zum", "zur",
}
