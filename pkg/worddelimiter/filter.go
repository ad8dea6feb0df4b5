package worddelimiter

import (
	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
)

type expansion struct {
	splitter        *splitter
	respectKeywords bool
	buf             []SubWord
}

func (e *expansion) Expand(dst []analysis.Part, src analysis.Token) []analysis.Part {
	if e.respectKeywords && src.Keyword {
		posInc := e.splitter.accumPosInc + src.PosInc
		e.splitter.accumPosInc = 0
		return append(dst, analysis.Part{Term: src.Term, Start: src.Start, End: src.End, PosInc: posInc})
	}
	e.buf = e.splitter.split(e.buf[:0], src.Term, src.Start, src.End, src.PosInc)
	for _, sw := range e.buf {
		dst = append(dst, analysis.Part{Term: sw.Text, Start: sw.Start, End: sw.End, PosInc: sw.PosInc})
	}
	return dst
}

func (e *expansion) Reset() {
	e.splitter.reset()
}

// NewFilter replaces every token by its sub-words. Tokens listed in
// protected and tokens without breaks pass through unchanged; tokens made of
// delimiters only are dropped, and an increment above one moves to the next
// token. A nil table uses DefaultCharType.
func NewFilter(in analysis.TokenStream, flags Flags, protected map[string]struct{}, table TypeTable) *analysis.ExpandFilter {
	return Factory{Flags: flags, Protected: protected, Types: table}.newFilter(in)
}

// Factory creates word delimiter filters with one configuration.
type Factory struct {
	Flags           Flags
	Protected       map[string]struct{}
	Types           TypeTable
	RespectKeywords bool
}

// Create wraps in with a word delimiter filter.
func (f Factory) Create(in analysis.TokenStream) analysis.TokenStream {
	return f.newFilter(in)
}

func (f Factory) newFilter(in analysis.TokenStream) *analysis.ExpandFilter {
	return analysis.NewExpandFilter(in, &expansion{
		splitter:        newSplitter(f.Flags, f.Protected, f.Types),
		respectKeywords: f.RespectKeywords,
	}, analysis.ReplaceSource)
}
