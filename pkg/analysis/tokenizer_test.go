package analysis

import (
	"reflect"
	"strings"
	"testing"
)

type span struct {
	Term       string
	Start, End int
}

func spans(tokens []Token) []span {
	out := []span{}
	for _, tok := range tokens {
		out = append(out, span{tok.Term, tok.Start, tok.End})
	}
	return out
}

func tokenize(newTokenizer TokenizerFactory, text string) []Token {
	tok := newTokenizer()
	tok.SetInput(text, nil)
	return Drain(tok)
}

func TestWordTokenizer(t *testing.T) {
	tests := []struct {
		input    string
		expected []span
	}{
		{"Der fährt!", []span{{"Der", 0, 3}, {"fährt", 4, 9}}},
		{"Wärmedämmung", []span{{"Wärmedämmung", 0, 12}}},
		{"", []span{}},
		{"  ", []span{}},
		{"123abc 42", []span{{"123abc", 0, 6}, {"42", 7, 9}}},
		{"Bindestrich-Wort", []span{{"Bindestrich", 0, 11}, {"Wort", 12, 16}}},
	}

	for _, tt := range tests {
		result := spans(tokenize(NewWordTokenizer, tt.input))
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("WordTokenizer(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestWordTokenizerTypes(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"Haus", TokenWord},
		{"2024", TokenNumeric},
		{"A380", TokenAlphanum},
	}

	for _, tt := range tests {
		tokens := tokenize(NewWordTokenizer, tt.input)
		if len(tokens) != 1 || tokens[0].Type != tt.expected {
			t.Errorf("WordTokenizer(%q) = %v, want one token of type %v", tt.input, tokens, tt.expected)
		}
	}
}

func TestHyphenTokenizer(t *testing.T) {
	tests := []struct {
		input    string
		expected []span
	}{
		{"Bindestrich-Wort", []span{{"Bindestrich-Wort", 0, 16}}},
		{"Dipl.-Ing.", []span{{"Dipl", 0, 4}, {"Ing", 6, 9}}},
		{"wird's", []span{{"wird's", 0, 6}}},
		{"-Vorsilbe Nachsilbe-", []span{{"Vorsilbe", 1, 9}, {"Nachsilbe", 10, 19}}},
		{"a--b", []span{{"a", 0, 1}, {"b", 3, 4}}},
		{"Procter&Gamble.", []span{{"Procter&Gamble", 0, 14}}},
		{"für U.S.A. Oder", []span{{"für", 0, 3}, {"U.S.A", 4, 9}, {"Oder", 11, 15}}},
		{"mit C++, C#", []span{{"mit", 0, 3}, {"C++", 4, 7}, {"C#", 9, 11}}},
		{"1+1", []span{{"1", 0, 1}, {"1", 2, 3}}},
	}

	for _, tt := range tests {
		result := spans(tokenize(NewHyphenTokenizer, tt.input))
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("HyphenTokenizer(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}

	tokens := tokenize(NewHyphenTokenizer, "E-Book")
	if len(tokens) != 1 || tokens[0].Type != TokenHyphenated {
		t.Errorf("HyphenTokenizer(%q) = %v, want one hyphenated token", "E-Book", tokens)
	}
}

func TestWhitespaceTokenizer(t *testing.T) {
	result := spans(tokenize(NewWhitespaceTokenizer, " LUCENE / solR\t"))
	expected := []span{{"LUCENE", 1, 7}, {"/", 8, 9}, {"solR", 10, 14}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("WhitespaceTokenizer = %v, want %v", result, expected)
	}
}

func TestKeywordTokenizer(t *testing.T) {
	result := spans(tokenize(NewKeywordTokenizer, "Jörg Prante"))
	expected := []span{{"Jörg Prante", 0, 11}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("KeywordTokenizer = %v, want %v", result, expected)
	}

	if tokens := tokenize(NewKeywordTokenizer, ""); len(tokens) != 0 {
		t.Errorf("KeywordTokenizer(\"\") = %v, want no tokens", tokens)
	}
}

func TestTokenizerReset(t *testing.T) {
	tok := NewWordTokenizer()
	tok.SetInput("eins zwei", nil)
	first := Drain(tok)
	tok.Reset()
	second := Drain(tok)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("after Reset got %v, want %v", second, first)
	}
}

func TestTokenizerPositionIncrements(t *testing.T) {
	for _, tok := range tokenize(NewWordTokenizer, "ein zwei drei") {
		if tok.PosInc != 1 {
			t.Errorf("token %q PosInc = %d, want 1", tok.Term, tok.PosInc)
		}
	}
}

func FuzzWordTokenizer(f *testing.F) {
	f.Add("Der fährt!")
	f.Add("Rechtsanwaltskanzleien 2024")
	f.Add("é\u0000x")
	f.Fuzz(func(t *testing.T, text string) {
		n := len([]rune(text))
		for _, tok := range tokenize(NewWordTokenizer, text) {
			if tok.Start < 0 || tok.End > n || tok.Start >= tok.End {
				t.Fatalf("token %q has invalid span [%d,%d) in %d runes", tok.Term, tok.Start, tok.End, n)
			}
			if got := string([]rune(text)[tok.Start:tok.End]); got != tok.Term {
				t.Fatalf("token %q does not match source span %q", tok.Term, got)
			}
			if strings.TrimSpace(tok.Term) != tok.Term {
				t.Fatalf("token %q contains whitespace", tok.Term)
			}
		}
	})
}
