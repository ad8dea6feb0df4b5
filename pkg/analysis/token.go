package analysis

import "unicode/utf8"

// TokenType tags the lexical class of a token.
type TokenType int

const (
	TokenWord TokenType = iota
	TokenNumeric
	TokenAlphanum
	TokenHyphenated
	TokenCollationKey
)

func (t TokenType) String() string {
	switch t {
	case TokenWord:
		return "word"
	case TokenNumeric:
		return "numeric"
	case TokenAlphanum:
		return "alphanum"
	case TokenHyphenated:
		return "hyphenated"
	case TokenCollationKey:
		return "collation_key"
	default:
		return "unknown"
	}
}

// Token is one unit flowing through an analysis chain.
//
// Start and End are rune offsets into the original source text, not into
// Term. PosInc is the distance to the previous token's position; 0 stacks
// the token on the previous position (synonyms, compound parts).
type Token struct {
	Term    string
	Start   int
	End     int
	PosInc  int
	Type    TokenType
	Keyword bool

	// Payload is carried unchanged onto every token derived from this one.
	Payload any
}

// Len returns the term length in runes.
func (t Token) Len() int {
	return utf8.RuneCountInString(t.Term)
}

// Part is a token derived by an Expansion. Only these fields differ from
// the source token; everything else is copied from the captured source.
type Part struct {
	Term   string
	Start  int
	End    int
	PosInc int
}
