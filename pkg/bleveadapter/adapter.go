// Package bleveadapter runs analysis filters inside a bleve analysis chain.
//
// bleve tokens carry byte offsets and absolute 1-based positions; the
// adapter converts them to rune offsets and position increments on the way
// in and back on the way out.
package bleveadapter

import (
	"fmt"
	"sync"
	"unicode/utf8"

	blevea "github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/registry"

	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
)

// TokenFilter adapts a FilterFactory to bleve's TokenFilter interface.
type TokenFilter struct {
	factory analysis.FilterFactory
}

// NewTokenFilter wraps factory.
func NewTokenFilter(factory analysis.FilterFactory) *TokenFilter {
	return &TokenFilter{factory: factory}
}

// origin records where a converted token came from. It travels in the
// token payload so derived tokens can be mapped back to byte offsets.
type origin struct {
	src  *blevea.Token
	base int
}

// Filter runs the wrapped filter over input.
func (f *TokenFilter) Filter(input blevea.TokenStream) blevea.TokenStream {
	tokens := make([]analysis.Token, 0, len(input))
	base, prevPos := 0, 0
	for _, bt := range input {
		term := string(bt.Term)
		n := utf8.RuneCountInString(term)
		tokens = append(tokens, analysis.Token{
			Term:    term,
			Start:   base,
			End:     base + n,
			PosInc:  bt.Position - prevPos,
			Type:    tokenType(bt.Type),
			Keyword: bt.KeyWord,
			Payload: origin{src: bt, base: base},
		})
		// One rune of space keeps sub-spans of adjacent tokens apart.
		base += n + 1
		prevPos = bt.Position
	}

	out := make(blevea.TokenStream, 0, len(input))
	pos := 0
	for _, tok := range analysis.Drain(f.factory.Create(analysis.NewSliceStream(tokens...))) {
		o, ok := tok.Payload.(origin)
		if !ok {
			continue
		}
		pos += tok.PosInc
		if pos < 1 {
			pos = 1
		}
		start, end := byteSpan(o, tok)
		out = append(out, &blevea.Token{
			Term:     []byte(tok.Term),
			Start:    start,
			End:      end,
			Position: pos,
			Type:     o.src.Type,
			KeyWord:  tok.Keyword,
		})
	}
	return out
}

// byteSpan maps the rune span of tok, relative to its origin, back to byte
// offsets of the field. When the source term does not span its byte range
// exactly the source offsets are used.
func byteSpan(o origin, tok analysis.Token) (int, int) {
	src := o.src
	if src.End-src.Start != len(src.Term) {
		return src.Start, src.End
	}
	from, to := tok.Start-o.base, tok.End-o.base
	if from < 0 || to < from {
		return src.Start, src.End
	}
	return src.Start + runeToByte(src.Term, from), src.Start + runeToByte(src.Term, to)
}

func runeToByte(b []byte, runes int) int {
	i := 0
	for n := 0; n < runes && i < len(b); n++ {
		_, size := utf8.DecodeRune(b[i:])
		i += size
	}
	return i
}

func tokenType(t blevea.TokenType) analysis.TokenType {
	switch t {
	case blevea.Numeric:
		return analysis.TokenNumeric
	default:
		return analysis.TokenWord
	}
}

var (
	mu         sync.Mutex
	registered = map[string]bool{}
)

// Register makes factory available to bleve index mappings as the token
// filter name.
func Register(name string, factory analysis.FilterFactory) error {
	mu.Lock()
	defer mu.Unlock()
	if registered[name] {
		return fmt.Errorf("token filter %q already registered", name)
	}
	registered[name] = true
	registry.RegisterTokenFilter(name, func(map[string]interface{}, *registry.Cache) (blevea.TokenFilter, error) {
		return NewTokenFilter(factory), nil
	})
	return nil
}
