package decompound

import (
	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
)

// expansion emits the fragments of each source token. Offsets advance by
// the fragment length from the source start.
type expansion struct {
	seg             *Segmenter
	respectKeywords bool
}

func (e *expansion) Expand(dst []analysis.Part, src analysis.Token) []analysis.Part {
	if e.respectKeywords && src.Keyword {
		return dst
	}
	for _, f := range e.seg.Segment(src.Term) {
		start, end := analysis.SubSpan(src, f.Start, f.Len)
		dst = append(dst, analysis.Part{Term: f.Text, Start: start, End: end})
	}
	return dst
}

func (e *expansion) Reset() {}

// NewFilter emits every token followed by its fragments, stacked on the
// token's position. A word that cannot be split is followed by itself.
func NewFilter(in analysis.TokenStream, seg *Segmenter) *analysis.ExpandFilter {
	return analysis.NewExpandFilter(in, &expansion{seg: seg}, analysis.KeepSource)
}

// Factory creates decompound filters sharing one segmenter. Two factories
// are equal when they share the segmenter and settings.
type Factory struct {
	Segmenter       *Segmenter
	RespectKeywords bool
}

// Create wraps in with a decompound filter.
func (f Factory) Create(in analysis.TokenStream) analysis.TokenStream {
	return analysis.NewExpandFilter(in, &expansion{
		seg:             f.Segmenter,
		respectKeywords: f.RespectKeywords,
	}, analysis.KeepSource)
}
