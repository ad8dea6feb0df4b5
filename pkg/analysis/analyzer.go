package analysis

// Analyzer chains char filters, a tokenizer and token filters.
//
// An Analyzer only holds factories and is safe for concurrent use; every
// call to Stream builds fresh per-stream state.
type Analyzer struct {
	CharFilters []CharFilter
	Tokenizer   TokenizerFactory
	Filters     []FilterFactory
}

// NewAnalyzer creates an analyzer without char filters.
func NewAnalyzer(tokenizer TokenizerFactory, filters ...FilterFactory) *Analyzer {
	return &Analyzer{Tokenizer: tokenizer, Filters: filters}
}

// Stream returns the token stream for text.
func (a *Analyzer) Stream(text string) TokenStream {
	filtered, offsets := ApplyCharFilters(text, a.CharFilters)

	tok := a.Tokenizer()
	tok.SetInput(filtered, offsets)

	var ts TokenStream = tok
	for _, f := range a.Filters {
		ts = f.Create(ts)
	}
	return ts
}

// Analyze returns every token of text.
func (a *Analyzer) Analyze(text string) []Token {
	return Drain(a.Stream(text))
}

// Terms processes input text and returns deduplicated terms in first-seen
// order.
func (a *Analyzer) Terms(text string) []string {
	ts := a.Stream(text)

	seen := make(map[string]struct{})
	var results []string
	for {
		tok, ok := ts.Next()
		if !ok {
			return results
		}
		if _, exists := seen[tok.Term]; exists {
			continue
		}
		seen[tok.Term] = struct{}{}
		results = append(results, tok.Term)
	}
}
