package baseform

import (
	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
)

type expansion struct {
	lex             *Lexicon
	respectKeywords bool
}

func (e *expansion) Expand(dst []analysis.Part, src analysis.Token) []analysis.Part {
	if e.respectKeywords && src.Keyword {
		return dst
	}
	return append(dst, analysis.Part{
		Term:  e.lex.Lookup(src.Term),
		Start: src.Start,
		End:   src.End,
	})
}

func (e *expansion) Reset() {}

// NewFilter emits every token followed by its base form on the same
// position. The base form is emitted even when it equals the token. With
// respectKeywords, keyword tokens are passed through alone.
func NewFilter(in analysis.TokenStream, lex *Lexicon, respectKeywords bool) *analysis.ExpandFilter {
	return analysis.NewExpandFilter(in, &expansion{lex: lex, respectKeywords: respectKeywords}, analysis.KeepSource)
}

// Factory creates baseform filters sharing one lexicon.
type Factory struct {
	Lexicon         *Lexicon
	RespectKeywords bool
}

// Create wraps in with a baseform filter.
func (f Factory) Create(in analysis.TokenStream) analysis.TokenStream {
	return NewFilter(in, f.Lexicon, f.RespectKeywords)
}
