package config

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
	"github.com/kerem-kaynak/german-analysis/pkg/baseform"
	"github.com/kerem-kaynak/german-analysis/pkg/decompound"
)

const testConfig = `
logging: {level: debug}
filters:
  decomp:   {type: decompound, words: words.txt, min_fragment_length: 3, cache_size: 100}
  decomp2:  {type: decompound, words: words.txt, min_fragment_length: 3, cache_size: 100}
  baseform: {type: baseform}
  wd:       {type: word_delimiter, flags: [generate_word_parts, catenate_words, split_on_case_change], protected_words: [NUTCH]}
  hyphen:   {type: hyphen, hyphens: "-"}
  fold:     {type: fold}
  norm:     {type: normalize, form: nfkc_cf}
  sort:     {type: collation, language: de, strength: primary}
  stop:     {type: stop}
  stem:     {type: stem}
  lower:    {type: lowercase}
  search:   {type: normalizer, steps: [lowercase, convert_eszett]}
analyzers:
  default:  {tokenizer: hyphen, filters: [decomp]}
  lemma:    {tokenizer: word, filters: [lower, baseform]}
  twice:    {tokenizer: word, filters: [decomp2]}
  parts:    {tokenizer: whitespace, filters: [wd]}
  folded:   {char_filters: [fold], tokenizer: word}
  sortform: {tokenizer: keyword, filters: [sort]}
  search:   {tokenizer: hyphen, filters: [hyphen, stop, search]}
  misc:     {tokenizer: word, filters: [fold, norm, stem]}
`

func testLoader() *Loader {
	return &Loader{FS: fstest.MapFS{
		"words.txt":    {Data: []byte("donau\ndampf\nschiff\njahr\nfeier\n")},
		"de-lemma.txt": {Data: []byte("hat\thaben\n")},
		"config.yaml":  {Data: []byte(testConfig)},
	}}
}

func terms(tokens []analysis.Token) []string {
	out := []string{}
	for _, tok := range tokens {
		out = append(out, tok.Term)
	}
	return out
}

func buildTestAnalyzers(t *testing.T) (map[string]*analysis.Analyzer, *Registry) {
	t.Helper()
	loader := testLoader()
	cfg, err := loader.Config("config.yaml")
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	reg := NewRegistry(loader)
	analyzers, err := cfg.Build(reg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return analyzers, reg
}

func TestBuildAnalyzers(t *testing.T) {
	analyzers, _ := buildTestAnalyzers(t)
	if len(analyzers) != 8 {
		t.Fatalf("Build returned %d analyzers, want 8", len(analyzers))
	}

	tests := []struct {
		analyzer string
		input    string
		expected []string
	}{
		{"default", "Donaudampfschiff hat", []string{"Donaudampfschiff", "donau", "dampf", "schiff", "hat", "hat"}},
		{"lemma", "Er hat", []string{"er", "er", "hat", "haben"}},
		{"parts", "LUCENE / NUTCH solR", []string{"LUCENE", "NUTCH", "sol", "R", "solR"}},
		{"folded", "Jörg Straße", []string{"jorg", "strasse"}},
		{"search", "Das E-Book der Straße", []string{"e-book", "ebook", "book", "strasse"}},
	}

	for _, tt := range tests {
		if result := terms(analyzers[tt.analyzer].Analyze(tt.input)); !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("%s: Analyze(%q) = %v, want %v", tt.analyzer, tt.input, result, tt.expected)
		}
	}

	keys := analyzers["sortform"].Analyze("Äpfel")
	if len(keys) != 1 || keys[0].Type != analysis.TokenCollationKey {
		t.Errorf("sortform: Analyze = %v, want one collation key", keys)
	}
}

func TestRegistrySharesEqualFilters(t *testing.T) {
	_, reg := buildTestAnalyzers(t)

	segs := reg.Segmenters()
	if len(segs) != 1 {
		t.Fatalf("Segmenters() = %v, want one shared segmenter", segs)
	}
	if _, ok := segs["decomp"]; !ok {
		t.Errorf("Segmenters() = %v, want key decomp", segs)
	}

	cfg, _ := Parse([]byte(testConfig))
	f1, err := reg.Filter("decomp", cfg.Filters["decomp"])
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	f2, err := reg.Filter("decomp2", cfg.Filters["decomp2"])
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if f1.(decompound.Factory) != f2.(decompound.Factory) {
		t.Error("equal decompound options built different factories")
	}
}

func TestParseStrict(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown top level key", "analysers: {}"},
		{"filter without type", "filters: {x: {words: a.txt}}"},
		{"bad yaml", "filters: ["},
	}

	for _, tt := range tests {
		if _, err := Parse([]byte(tt.input)); err == nil {
			t.Errorf("%s: Parse succeeded, want error", tt.name)
		}
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(cfg.Analyzers, Default().Analyzers) {
		t.Errorf("Analyzers = %v, want %v", cfg.Analyzers, Default().Analyzers)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			"unknown option",
			"filters: {d: {type: decompound, words: words.txt, colour: red}}\nanalyzers: {a: {filters: [d]}}",
			"colour",
		},
		{
			"unknown filter type",
			"filters: {d: {type: magic}}\nanalyzers: {a: {filters: [d]}}",
			"magic",
		},
		{
			"undefined filter",
			"analyzers: {a: {filters: [missing]}}",
			"missing",
		},
		{
			"unknown tokenizer",
			"analyzers: {a: {tokenizer: sentence}}",
			"sentence",
		},
		{
			"bad flag",
			"filters: {w: {type: word_delimiter, flags: [split_everything]}}\nanalyzers: {a: {filters: [w]}}",
			"split_everything",
		},
		{
			"bad form",
			"filters: {n: {type: normalize, form: nfx}}\nanalyzers: {a: {filters: [n]}}",
			"nfx",
		},
		{
			"unknown char filter",
			"analyzers: {a: {char_filters: [html]}}",
			"html",
		},
	}

	for _, tt := range tests {
		cfg, err := Parse([]byte(tt.input))
		if err != nil {
			t.Fatalf("%s: Parse: %v", tt.name, err)
		}
		_, err = cfg.Build(NewRegistry(testLoader()))
		var ce *Error
		if !errors.As(err, &ce) || ce.Analyzer != "a" || !strings.Contains(err.Error(), tt.contains) {
			t.Errorf("%s: Build error = %v, want *Error for analyzer a mentioning %q", tt.name, err, tt.contains)
		}
	}
}

func TestBuildResourceErrors(t *testing.T) {
	loader := &Loader{FS: fstest.MapFS{
		"bad.fst":   {Data: []byte("not an fst")},
		"bad.txt":   {Data: []byte("hat\n")},
		"words.txt": {Data: []byte("haus\tthing\n")},
	}}

	cfg, err := Parse([]byte(`
filters:
  missing: {type: decompound, words: nowhere.fst}
  blob:    {type: decompound, words: bad.fst}
  list:    {type: decompound, words: words.txt}
  lemma:   {type: baseform, lexicon: bad.txt}
  lang:    {type: baseform, language: fr}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	reg := NewRegistry(loader)
	for _, name := range []string{"missing", "blob", "list"} {
		_, err := reg.Filter(name, cfg.Filters[name])
		var loadErr *decompound.LoadError
		if !errors.As(err, &loadErr) {
			t.Errorf("Filter(%q) error = %v, want *decompound.LoadError", name, err)
		}
	}

	_, err = reg.Filter("lemma", cfg.Filters["lemma"])
	var lexErr *baseform.LoadError
	if !errors.As(err, &lexErr) {
		t.Errorf("Filter(lemma) error = %v, want *baseform.LoadError", err)
	}

	if _, err := reg.Filter("lang", cfg.Filters["lang"]); err == nil || !strings.Contains(err.Error(), "fr-lemma.txt") {
		t.Errorf("Filter(lang) error = %v, want a missing fr-lemma.txt", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal): %v", err)
	}
	if strings.Contains(string(data), "[]") {
		t.Errorf("Marshal wrote empty lists:\n%s", data)
	}
	if !reflect.DeepEqual(again.Analyzers, cfg.Analyzers) || len(again.Filters) != len(cfg.Filters) {
		t.Errorf("round trip changed the config:\n%s", data)
	}
	for name, fc := range cfg.Filters {
		if again.Filters[name].Type != fc.Type {
			t.Errorf("filter %q type = %q, want %q", name, again.Filters[name].Type, fc.Type)
		}
	}
}
