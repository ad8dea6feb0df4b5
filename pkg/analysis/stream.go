package analysis

// TokenStream is a pull-based sequence of tokens.
//
// Next returns the next token and true, or false at end of stream.
// Reset rewinds the stream and drops any per-stream buffers.
type TokenStream interface {
	Next() (Token, bool)
	Reset()
}

// Tokenizer is a TokenStream that reads its tokens from text.
type Tokenizer interface {
	TokenStream
	SetInput(text string, offsets []int)
}

// TokenizerFactory creates a fresh Tokenizer per analysis session.
type TokenizerFactory func() Tokenizer

// FilterFactory wraps an upstream stream with a filter. Factories hold the
// configuration-time state (dictionaries, flags); Create builds per-stream
// state only.
type FilterFactory interface {
	Create(in TokenStream) TokenStream
}

// FilterFactoryFunc adapts a function to FilterFactory.
type FilterFactoryFunc func(in TokenStream) TokenStream

// Create calls f(in).
func (f FilterFactoryFunc) Create(in TokenStream) TokenStream {
	return f(in)
}

// SliceStream replays a fixed list of tokens.
type SliceStream struct {
	tokens []Token
	pos    int
}

// NewSliceStream creates a stream over tokens.
func NewSliceStream(tokens ...Token) *SliceStream {
	return &SliceStream{tokens: tokens}
}

// Next returns the next buffered token.
func (s *SliceStream) Next() (Token, bool) {
	if s.pos >= len(s.tokens) {
		return Token{}, false
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true
}

// Reset rewinds to the first token.
func (s *SliceStream) Reset() {
	s.pos = 0
}

// Drain reads ts until end of stream.
func Drain(ts TokenStream) []Token {
	var out []Token
	for {
		tok, ok := ts.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}
