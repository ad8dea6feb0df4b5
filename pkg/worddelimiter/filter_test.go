package worddelimiter

import (
	"reflect"
	"testing"

	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
)

type posTok struct {
	Term       string
	Start, End int
	PosInc     int
}

func posToks(tokens []analysis.Token) []posTok {
	out := []posTok{}
	for _, tok := range tokens {
		out = append(out, posTok{tok.Term, tok.Start, tok.End, tok.PosInc})
	}
	return out
}

func whitespace(text string) analysis.TokenStream {
	tok := analysis.NewWhitespaceTokenizer()
	tok.SetInput(text, nil)
	return tok
}

func keyword(text string) analysis.TokenStream {
	tok := analysis.NewKeywordTokenizer()
	tok.SetInput(text, nil)
	return tok
}

// largeGap gives "largegap" and "/" a position increment of 10.
type largeGap struct {
	input analysis.TokenStream
}

func (f *largeGap) Next() (analysis.Token, bool) {
	tok, ok := f.input.Next()
	if ok && (tok.Term == "largegap" || tok.Term == "/") {
		tok.PosInc = 10
	}
	return tok, ok
}

func (f *largeGap) Reset() {
	f.input.Reset()
}

func words(ws ...string) map[string]struct{} {
	return analysis.StopWordSet(ws)
}

func TestFilterPositions(t *testing.T) {
	catWords := DefaultFlags | CatenateWords
	catAll := DefaultFlags | CatenateAll
	same := AllPartsAtSamePosition

	tests := []struct {
		name      string
		in        analysis.TokenStream
		flags     Flags
		protected map[string]struct{}
		expected  []posTok
	}{
		{
			"plain words", whitespace("LUCENE / SOLR"), catWords, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"SOLR", 9, 13, 1}},
		},
		{
			"case split", whitespace("LUCENE / solR"), catWords, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"sol", 9, 12, 1}, {"R", 12, 13, 1}, {"solR", 9, 13, 0}},
		},
		{
			"case split same position", whitespace("LUCENE / solR"), catWords | same, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"sol", 9, 12, 1}, {"R", 12, 13, 0}, {"solR", 9, 13, 0}},
		},
		{
			"protected", whitespace("LUCENE / NUTCH SOLR"), catWords, map[string]struct{}{"NUTCH": {}},
			[]posTok{{"LUCENE", 0, 6, 1}, {"NUTCH", 9, 14, 1}, {"SOLR", 15, 19, 1}},
		},
		{
			"catenate all", whitespace("LUCENE4.0.0"), catAll, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"4", 6, 7, 1}, {"0", 8, 9, 1}, {"0", 10, 11, 1}, {"LUCENE400", 0, 11, 0}},
		},
		{
			"catenate all and words", whitespace("LUCENE4.0.0"), catAll | CatenateWords, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"4", 6, 7, 1}, {"0", 8, 9, 1}, {"0", 10, 11, 1}, {"LUCENE400", 0, 11, 0}},
		},
		{
			"catenate all same position", whitespace("LUCENE4.0.0"), catAll | same, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"4", 6, 7, 0}, {"0", 8, 9, 0}, {"0", 10, 11, 0}, {"LUCENE400", 0, 11, 0}},
		},
		{
			"large gap word", &largeGap{whitespace("LUCENE largegap SOLR")}, catWords, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"largegap", 7, 15, 10}, {"SOLR", 16, 20, 1}},
		},
		{
			"large gap delimiter", &largeGap{whitespace("LUCENE / SOLR")}, catWords, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"SOLR", 9, 13, 11}},
		},
		{
			"large gap before split", &largeGap{whitespace("LUCENE / solR")}, catWords, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"sol", 9, 12, 11}, {"R", 12, 13, 1}, {"solR", 9, 13, 0}},
		},
		{
			"large gap before split same position", &largeGap{whitespace("LUCENE / solR")}, catWords | same, nil,
			[]posTok{{"LUCENE", 0, 6, 1}, {"sol", 9, 12, 11}, {"R", 12, 13, 0}, {"solR", 9, 13, 0}},
		},
		{
			"stop words", analysis.NewStopFilter(whitespace("lucene.solr"), words("the"), false), catWords, nil,
			[]posTok{{"lucene", 0, 6, 1}, {"solr", 7, 11, 1}, {"lucenesolr", 0, 11, 0}},
		},
		{
			"stop words same position", analysis.NewStopFilter(whitespace("lucene.solr"), words("the"), false), catWords | same, nil,
			[]posTok{{"lucene", 0, 6, 1}, {"solr", 7, 11, 0}, {"lucenesolr", 0, 11, 0}},
		},
		{
			"stop word gap", analysis.NewStopFilter(whitespace("the lucene.solr"), words("the"), false), catWords, nil,
			[]posTok{{"lucene", 4, 10, 2}, {"solr", 11, 15, 1}, {"lucenesolr", 4, 15, 0}},
		},
		{
			"stop word gap same position", analysis.NewStopFilter(whitespace("the lucene.solr"), words("the"), false), catWords | same, nil,
			[]posTok{{"lucene", 4, 10, 2}, {"solr", 11, 15, 0}, {"lucenesolr", 4, 15, 0}},
		},
		{
			"keyword tokenizer", keyword("foo-bar"), catWords, nil,
			[]posTok{{"foo", 0, 3, 1}, {"bar", 4, 7, 1}, {"foobar", 0, 7, 0}},
		},
		{
			"keyword tokenizer umlaut", keyword("übelkeit"), catWords, nil,
			[]posTok{{"übelkeit", 0, 8, 1}},
		},
		{
			"leading delimiter token", whitespace("/ foo"), DefaultFlags, nil,
			[]posTok{{"foo", 2, 5, 1}},
		},
		{
			"preserve original", whitespace("wi-fi"), GenerateWordParts | CatenateWords | PreserveOriginal, nil,
			[]posTok{{"wi-fi", 0, 5, 1}, {"wi", 0, 2, 0}, {"fi", 3, 5, 1}, {"wifi", 0, 5, 0}},
		},
		{
			"catenate only", whitespace("wi-fi"), CatenateWords, nil,
			[]posTok{{"wifi", 0, 5, 1}},
		},
		{
			"catenate numbers", whitespace("500-42"), DefaultFlags | CatenateNumbers, nil,
			[]posTok{{"500", 0, 3, 1}, {"42", 4, 6, 1}, {"50042", 0, 6, 0}},
		},
	}

	for _, tt := range tests {
		result := posToks(analysis.Drain(NewFilter(tt.in, tt.flags, tt.protected, nil)))
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("%s: Drain = %v, want %v", tt.name, result, tt.expected)
		}
	}
}

func TestFilterStackedSource(t *testing.T) {
	stacked := func() analysis.TokenStream {
		return analysis.NewSliceStream(
			analysis.Token{Term: "Haus", Start: 0, End: 4, PosInc: 1},
			analysis.Token{Term: "foo-bar", Start: 0, End: 7, PosInc: 0},
			analysis.Token{Term: "wi-fi", Start: 8, End: 13, PosInc: 1},
		)
	}

	tests := []struct {
		name     string
		flags    Flags
		expected []posTok
	}{
		{
			"parts", GenerateWordParts,
			[]posTok{{"Haus", 0, 4, 1}, {"foo", 0, 3, 0}, {"bar", 4, 7, 1}, {"wi", 8, 10, 1}, {"fi", 11, 13, 1}},
		},
		{
			"parts same position", GenerateWordParts | AllPartsAtSamePosition,
			[]posTok{{"Haus", 0, 4, 1}, {"foo", 0, 3, 0}, {"bar", 4, 7, 0}, {"wi", 8, 10, 1}, {"fi", 11, 13, 0}},
		},
		{
			"catenate words", GenerateWordParts | CatenateWords,
			[]posTok{
				{"Haus", 0, 4, 1}, {"foo", 0, 3, 0}, {"bar", 4, 7, 1}, {"foobar", 0, 7, 0},
				{"wi", 8, 10, 1}, {"fi", 11, 13, 1}, {"wifi", 8, 13, 0},
			},
		},
	}

	for _, tt := range tests {
		result := posToks(analysis.Drain(NewFilter(stacked(), tt.flags, nil, nil)))
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("%s: Drain = %v, want %v", tt.name, result, tt.expected)
		}
	}
}

func TestFilterDroppedDelimiterBeforeStackedSource(t *testing.T) {
	in := analysis.NewSliceStream(
		analysis.Token{Term: "Haus", Start: 0, End: 4, PosInc: 1},
		analysis.Token{Term: "/", Start: 5, End: 6, PosInc: 1},
		analysis.Token{Term: "foo-bar", Start: 7, End: 14, PosInc: 0},
	)
	result := posToks(analysis.Drain(NewFilter(in, GenerateWordParts, nil, nil)))
	expected := []posTok{{"Haus", 0, 4, 1}, {"foo", 7, 10, 0}, {"bar", 11, 14, 1}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Drain = %v, want %v", result, expected)
	}
}

func TestFilterInconsistentOffsets(t *testing.T) {
	// The term is longer than its source span, so parts keep the source span.
	in := analysis.NewSliceStream(analysis.Token{Term: "foo-bar", Start: 10, End: 15, PosInc: 1})
	result := posToks(analysis.Drain(NewFilter(in, DefaultFlags|CatenateWords, nil, nil)))
	expected := []posTok{{"foo", 10, 15, 1}, {"bar", 10, 15, 1}, {"foobar", 10, 15, 0}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Drain = %v, want %v", result, expected)
	}
}

func TestFilterKeepsAttributes(t *testing.T) {
	in := analysis.NewSliceStream(analysis.Token{
		Term: "foo-bar", End: 7, PosInc: 1, Type: analysis.TokenHyphenated, Payload: "p",
	})
	for _, tok := range analysis.Drain(NewFilter(in, DefaultFlags, nil, nil)) {
		if tok.Type != analysis.TokenHyphenated || tok.Payload != "p" {
			t.Errorf("token %q lost attributes: %+v", tok.Term, tok)
		}
	}
}

func TestFilterRespectKeywords(t *testing.T) {
	in := analysis.NewSliceStream(
		analysis.Token{Term: "/", Start: 0, End: 1, PosInc: 1},
		analysis.Token{Term: "wi-fi", Start: 2, End: 7, PosInc: 1, Keyword: true},
		analysis.Token{Term: "wi-fi", Start: 8, End: 13, PosInc: 1},
	)
	f := Factory{Flags: DefaultFlags, RespectKeywords: true}.Create(in)
	result := posToks(analysis.Drain(f))
	expected := []posTok{{"wi-fi", 2, 7, 1}, {"wi", 8, 10, 1}, {"fi", 11, 13, 1}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Drain = %v, want %v", result, expected)
	}
}

func TestFilterTypeTable(t *testing.T) {
	table, err := ParseTypeTable([]string{"$ => DIGIT"})
	if err != nil {
		t.Fatalf("ParseTypeTable: %v", err)
	}

	result := posToks(analysis.Drain(NewFilter(whitespace("$100"), DefaultFlags, nil, table)))
	expected := []posTok{{"$100", 0, 4, 1}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("with table: Drain = %v, want %v", result, expected)
	}

	result = posToks(analysis.Drain(NewFilter(whitespace("$100"), DefaultFlags, nil, nil)))
	expected = []posTok{{"100", 1, 4, 1}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("without table: Drain = %v, want %v", result, expected)
	}
}

func TestFilterReset(t *testing.T) {
	f := NewFilter(whitespace("/ solR"), DefaultFlags, nil, nil)
	first := analysis.Drain(f)
	f.Reset()
	second := analysis.Drain(f)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("after Reset got %v, want %v", second, first)
	}
}
