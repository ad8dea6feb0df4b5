package analysis

import (
	"unicode"
)

// runeTokenizer emits maximal runs of runes accepted by accept.
type runeTokenizer struct {
	accept  func(runes []rune, i int) bool
	runes   []rune
	offsets []int
	pos     int
}

func (t *runeTokenizer) SetInput(text string, offsets []int) {
	t.runes = []rune(text)
	t.offsets = offsets
	t.pos = 0
}

func (t *runeTokenizer) Reset() {
	t.pos = 0
}

func (t *runeTokenizer) Next() (Token, bool) {
	n := len(t.runes)
	for t.pos < n && !t.accept(t.runes, t.pos) {
		t.pos++
	}
	if t.pos >= n {
		return Token{}, false
	}

	start := t.pos
	for t.pos < n && t.accept(t.runes, t.pos) {
		t.pos++
	}

	term := t.runes[start:t.pos]
	return Token{
		Term:   string(term),
		Start:  CorrectStart(t.offsets, start),
		End:    CorrectEnd(t.offsets, t.pos),
		PosInc: 1,
		Type:   classify(term),
	}, true
}

// classify determines the token type from its runes.
func classify(term []rune) TokenType {
	letters, digits, other := 0, 0, 0
	for _, r := range term {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsNumber(r):
			digits++
		default:
			other++
		}
	}
	switch {
	case other > 0 && letters > 0:
		return TokenHyphenated
	case letters == 0 && digits > 0:
		return TokenNumeric
	case letters > 0 && digits > 0:
		return TokenAlphanum
	default:
		return TokenWord
	}
}

// isWordRune reports whether a rune is a word character: a letter, a number
// or a nonspacing mark attached to one.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r)
}

// NewWordTokenizer splits text into runs of letters and numbers; everything
// else (whitespace, punctuation, symbols) separates tokens.
func NewWordTokenizer() Tokenizer {
	return &runeTokenizer{accept: func(runes []rune, i int) bool {
		return isWordRune(runes[i])
	}}
}

// hyphenJoiners may occur inside a hyphen-tokenizer token.
var hyphenJoiners = map[rune]bool{
	'-':      true,
	'\'':     true,
	'&':      true,
	'.':      true,
	'\u2019': true, // right single quotation mark
	'\u2010': true, // hyphen
	'\u2011': true, // non-breaking hyphen
}

// NewHyphenTokenizer works like the word tokenizer but keeps joiners
// (hyphens, apostrophes, '&' and '.') that sit between two word characters,
// so "Bindestrich-Wort", "wird's" and "U.S.A" stay single tokens while
// "Dipl.-Ing." still splits. Trailing '+' or '#' after a letter is kept
// for names like "C++".
func NewHyphenTokenizer() Tokenizer {
	return &runeTokenizer{accept: func(runes []rune, i int) bool {
		r := runes[i]
		switch {
		case isWordRune(r):
			return true
		case r == '+' || r == '#':
			return isSuffixMark(runes, i)
		case !hyphenJoiners[r] || i == 0 || i == len(runes)-1:
			return false
		}
		return isWordRune(runes[i-1]) && isWordRune(runes[i+1])
	}}
}

// isSuffixMark reports whether runes[i] belongs to a run of '+' or '#'
// that directly follows a letter and ends the word.
func isSuffixMark(runes []rune, i int) bool {
	isMark := func(r rune) bool { return r == '+' || r == '#' }
	j := i
	for j > 0 && isMark(runes[j-1]) {
		j--
	}
	if j == 0 || !unicode.IsLetter(runes[j-1]) {
		return false
	}
	k := i
	for k < len(runes) && isMark(runes[k]) {
		k++
	}
	return k == len(runes) || !isWordRune(runes[k])
}

// NewWhitespaceTokenizer splits on Unicode whitespace only.
func NewWhitespaceTokenizer() Tokenizer {
	return &runeTokenizer{accept: func(runes []rune, i int) bool {
		return !unicode.IsSpace(runes[i])
	}}
}

// KeywordTokenizer emits the whole input as one token.
type KeywordTokenizer struct {
	text    string
	offsets []int
	done    bool
}

// NewKeywordTokenizer creates a KeywordTokenizer.
func NewKeywordTokenizer() Tokenizer {
	return &KeywordTokenizer{}
}

// SetInput sets the text to emit.
func (t *KeywordTokenizer) SetInput(text string, offsets []int) {
	t.text = text
	t.offsets = offsets
	t.done = false
}

// Next returns the whole input once.
func (t *KeywordTokenizer) Next() (Token, bool) {
	if t.done || t.text == "" {
		return Token{}, false
	}
	t.done = true
	runes := []rune(t.text)
	return Token{
		Term:   t.text,
		Start:  CorrectStart(t.offsets, 0),
		End:    CorrectEnd(t.offsets, len(runes)),
		PosInc: 1,
		Type:   classify(runes),
	}, true
}

// Reset allows the input to be emitted again.
func (t *KeywordTokenizer) Reset() {
	t.done = false
}
