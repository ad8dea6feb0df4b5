package config

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
	"github.com/kerem-kaynak/german-analysis/pkg/baseform"
	"github.com/kerem-kaynak/german-analysis/pkg/decompound"
	"github.com/kerem-kaynak/german-analysis/pkg/folding"
	"github.com/kerem-kaynak/german-analysis/pkg/hyphen"
	"github.com/kerem-kaynak/german-analysis/pkg/worddelimiter"
)

// DefaultLanguage selects the lexicon "<language>-lemma.txt" when a
// baseform filter names none.
const DefaultLanguage = "de"

type decompoundOptions struct {
	Type              string   `yaml:"type"`
	Words             string   `yaml:"words"`
	MinFragmentLength int      `yaml:"min_fragment_length,omitempty"`
	ShortPenalty      *int     `yaml:"short_penalty,omitempty"`
	MaxWordLength     int      `yaml:"max_word_length,omitempty"`
	Glue              []string `yaml:"glue,omitempty"`
	UmlautFallback    *bool    `yaml:"umlaut_fallback,omitempty"`
	Lowercase         *bool    `yaml:"lowercase,omitempty"`
	CacheSize         int      `yaml:"cache_size,omitempty"`
	RespectKeywords   bool     `yaml:"respect_keywords,omitempty"`
}

type baseformOptions struct {
	Type            string `yaml:"type"`
	Lexicon         string `yaml:"lexicon,omitempty"`
	Language        string `yaml:"language,omitempty"`
	RespectKeywords bool   `yaml:"respect_keywords,omitempty"`
}

type wordDelimiterOptions struct {
	Type            string   `yaml:"type"`
	Flags           []string `yaml:"flags,omitempty"`
	ProtectedWords  []string `yaml:"protected_words,omitempty"`
	TypeTable       []string `yaml:"type_table,omitempty"`
	RespectKeywords bool     `yaml:"respect_keywords,omitempty"`
}

type hyphenOptions struct {
	Type            string `yaml:"type"`
	Hyphens         string `yaml:"hyphens,omitempty"`
	Subwords        *bool  `yaml:"subwords,omitempty"`
	RespectKeywords bool   `yaml:"respect_keywords,omitempty"`
}

type normalizeOptions struct {
	Type string `yaml:"type"`
	Form string `yaml:"form,omitempty"`
}

type collationOptions struct {
	Type     string `yaml:"type"`
	Language string `yaml:"language,omitempty"`
	Strength string `yaml:"strength,omitempty"`
	Numeric  bool   `yaml:"numeric,omitempty"`
}

type stopOptions struct {
	Type       string   `yaml:"type"`
	Words      []string `yaml:"words,omitempty"`
	IgnoreCase *bool    `yaml:"ignore_case,omitempty"`
}

type normalizerOptions struct {
	Type  string   `yaml:"type"`
	Steps []string `yaml:"steps,omitempty"`
}

type plainOptions struct {
	Type string `yaml:"type"`
}

// Registry builds filter factories. Filters with equal options share one
// factory, and resources are loaded once per name.
type Registry struct {
	loader *Loader

	mu         sync.Mutex
	factories  map[string]analysis.FilterFactory
	dicts      map[string]*decompound.Dictionary
	lexicons   map[string]*baseform.Lexicon
	segmenters map[string]*decompound.Segmenter
}

// NewRegistry creates a registry loading resources through loader.
func NewRegistry(loader *Loader) *Registry {
	return &Registry{
		loader:     loader,
		factories:  make(map[string]analysis.FilterFactory),
		dicts:      make(map[string]*decompound.Dictionary),
		lexicons:   make(map[string]*baseform.Lexicon),
		segmenters: make(map[string]*decompound.Segmenter),
	}
}

// Segmenters returns the segmenters built so far, keyed by the name of the
// first filter that created them.
func (r *Registry) Segmenters() map[string]*decompound.Segmenter {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*decompound.Segmenter, len(r.segmenters))
	for k, v := range r.segmenters {
		out[k] = v
	}
	return out
}

// Filter returns the factory for the filter named name.
func (r *Registry) Filter(name string, fc FilterConfig) (analysis.FilterFactory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts, err := decodeOptions(fc)
	if err != nil {
		return nil, &Error{Filter: name, Err: err}
	}
	key, err := yaml.Marshal(opts)
	if err != nil {
		return nil, &Error{Filter: name, Err: err}
	}
	if f, ok := r.factories[string(key)]; ok {
		return f, nil
	}

	f, err := r.build(name, opts)
	if err != nil {
		return nil, &Error{Filter: name, Err: err}
	}
	r.factories[string(key)] = f
	return f, nil
}

func decodeOptions(fc FilterConfig) (interface{}, error) {
	var opts interface{}
	switch fc.Type {
	case "decompound":
		opts = &decompoundOptions{}
	case "baseform":
		opts = &baseformOptions{}
	case "word_delimiter":
		opts = &wordDelimiterOptions{}
	case "hyphen":
		opts = &hyphenOptions{}
	case "normalize":
		opts = &normalizeOptions{}
	case "collation":
		opts = &collationOptions{}
	case "stop":
		opts = &stopOptions{}
	case "normalizer":
		opts = &normalizerOptions{}
	case "fold", "lowercase", "stem":
		opts = &plainOptions{}
	default:
		return nil, fmt.Errorf("unknown filter type %q", fc.Type)
	}
	if err := fc.decode(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func (r *Registry) build(name string, opts interface{}) (analysis.FilterFactory, error) {
	switch o := opts.(type) {
	case *decompoundOptions:
		return r.decompound(name, o)
	case *baseformOptions:
		return r.baseform(o)
	case *wordDelimiterOptions:
		return wordDelimiter(o)
	case *hyphenOptions:
		subwords := o.Subwords == nil || *o.Subwords
		return hyphen.Factory{Hyphens: o.Hyphens, Subwords: subwords, RespectKeywords: o.RespectKeywords}, nil
	case *normalizeOptions:
		form, err := folding.ParseForm(o.Form)
		if err != nil {
			return nil, err
		}
		return analysis.FilterFactoryFunc(func(in analysis.TokenStream) analysis.TokenStream {
			return folding.NewNormalizeFilter(in, form)
		}), nil
	case *collationOptions:
		strength, err := folding.ParseStrength(o.Strength)
		if err != nil {
			return nil, err
		}
		return folding.NewCollationFactory(folding.Collation{
			Language: o.Language,
			Strength: strength,
			Numeric:  o.Numeric,
		})
	case *stopOptions:
		return stop(o), nil
	case *normalizerOptions:
		return normalizer(o)
	case *plainOptions:
		switch o.Type {
		case "fold":
			return analysis.FilterFactoryFunc(folding.NewFoldFilter), nil
		case "lowercase":
			return analysis.FilterFactoryFunc(analysis.NewLowercaseFilter), nil
		default:
			return analysis.FilterFactoryFunc(analysis.NewStemFilter), nil
		}
	}
	return nil, fmt.Errorf("unsupported options %T", opts)
}

func (r *Registry) decompound(name string, o *decompoundOptions) (analysis.FilterFactory, error) {
	if o.Words == "" {
		return nil, fmt.Errorf("decompound filter needs a words file")
	}
	dict, ok := r.dicts[o.Words]
	if !ok {
		var err error
		dict, err = r.loader.Dictionary(o.Words)
		if err != nil {
			return nil, err
		}
		r.dicts[o.Words] = dict
	}

	var segOpts []decompound.Option
	if o.MinFragmentLength > 0 {
		segOpts = append(segOpts, decompound.WithMinFragmentLength(o.MinFragmentLength))
	}
	if o.ShortPenalty != nil {
		segOpts = append(segOpts, decompound.WithShortPenalty(*o.ShortPenalty))
	}
	if o.MaxWordLength > 0 {
		segOpts = append(segOpts, decompound.WithMaxWordLength(o.MaxWordLength))
	}
	if o.Glue != nil {
		segOpts = append(segOpts, decompound.WithGlue(o.Glue))
	}
	if o.UmlautFallback != nil {
		segOpts = append(segOpts, decompound.WithUmlautFallback(*o.UmlautFallback))
	}
	if o.Lowercase != nil {
		segOpts = append(segOpts, decompound.WithLowercase(*o.Lowercase))
	}
	if o.CacheSize > 0 {
		segOpts = append(segOpts, decompound.WithCache(o.CacheSize))
	}

	seg := decompound.NewSegmenter(dict, segOpts...)
	r.segmenters[name] = seg
	return decompound.Factory{Segmenter: seg, RespectKeywords: o.RespectKeywords}, nil
}

func (r *Registry) baseform(o *baseformOptions) (analysis.FilterFactory, error) {
	path := o.Lexicon
	if path == "" {
		language := o.Language
		if language == "" {
			language = DefaultLanguage
		}
		path = language + "-lemma.txt"
	}
	lex, ok := r.lexicons[path]
	if !ok {
		var err error
		lex, err = r.loader.Lexicon(path)
		if err != nil {
			return nil, err
		}
		r.lexicons[path] = lex
	}
	return baseform.Factory{Lexicon: lex, RespectKeywords: o.RespectKeywords}, nil
}

func wordDelimiter(o *wordDelimiterOptions) (analysis.FilterFactory, error) {
	flags := worddelimiter.DefaultFlags
	if o.Flags != nil {
		var err error
		flags, err = worddelimiter.ParseFlags(o.Flags)
		if err != nil {
			return nil, err
		}
	}
	var table worddelimiter.TypeTable
	if len(o.TypeTable) > 0 {
		var err error
		table, err = worddelimiter.ParseTypeTable(o.TypeTable)
		if err != nil {
			return nil, err
		}
	}
	var protected map[string]struct{}
	if len(o.ProtectedWords) > 0 {
		protected = make(map[string]struct{}, len(o.ProtectedWords))
		for _, w := range o.ProtectedWords {
			protected[w] = struct{}{}
		}
	}
	return worddelimiter.Factory{
		Flags:           flags,
		Protected:       protected,
		Types:           table,
		RespectKeywords: o.RespectKeywords,
	}, nil
}

func stop(o *stopOptions) analysis.FilterFactory {
	words := o.Words
	if len(words) == 0 {
		words = analysis.GermanStopWords
	}
	set := analysis.StopWordSet(words)
	ignoreCase := o.IgnoreCase == nil || *o.IgnoreCase
	return analysis.FilterFactoryFunc(func(in analysis.TokenStream) analysis.TokenStream {
		return analysis.NewStopFilter(in, set, ignoreCase)
	})
}

func normalizer(o *normalizerOptions) (analysis.FilterFactory, error) {
	n := analysis.NewNormalizer()
	if len(o.Steps) > 0 {
		steps := make([]analysis.NormalizerFunc, 0, len(o.Steps))
		for _, name := range o.Steps {
			step, ok := analysis.NormalizerStep(name)
			if !ok {
				return nil, fmt.Errorf("unknown normalizer step %q", name)
			}
			steps = append(steps, step)
		}
		n = analysis.NewNormalizerWithSteps(steps...)
	}
	return analysis.FilterFactoryFunc(func(in analysis.TokenStream) analysis.TokenStream {
		return analysis.NewNormalizerFilter(in, n)
	}), nil
}

var tokenizers = map[string]analysis.TokenizerFactory{
	"word":       analysis.NewWordTokenizer,
	"hyphen":     analysis.NewHyphenTokenizer,
	"whitespace": analysis.NewWhitespaceTokenizer,
	"keyword":    analysis.NewKeywordTokenizer,
}

var charFilters = map[string]analysis.CharFilter{
	"fold": folding.FoldCharFilter,
}

// Build builds every analyzer of cfg.
func (cfg *Config) Build(r *Registry) (map[string]*analysis.Analyzer, error) {
	names := make([]string, 0, len(cfg.Analyzers))
	for name := range cfg.Analyzers {
		names = append(names, name)
	}
	sort.Strings(names)

	analyzers := make(map[string]*analysis.Analyzer, len(names))
	for _, name := range names {
		a, err := cfg.BuildAnalyzer(r, name)
		if err != nil {
			return nil, err
		}
		analyzers[name] = a
	}
	return analyzers, nil
}

// BuildAnalyzer builds the analyzer called name.
func (cfg *Config) BuildAnalyzer(r *Registry, name string) (*analysis.Analyzer, error) {
	ac, ok := cfg.Analyzers[name]
	if !ok {
		return nil, &Error{Analyzer: name, Err: fmt.Errorf("not defined")}
	}

	tokenizerName := ac.Tokenizer
	if tokenizerName == "" {
		tokenizerName = "word"
	}
	tok, ok := tokenizers[tokenizerName]
	if !ok {
		return nil, &Error{Analyzer: name, Err: fmt.Errorf("unknown tokenizer %q", ac.Tokenizer)}
	}

	a := &analysis.Analyzer{Tokenizer: tok}
	for _, cf := range ac.CharFilters {
		f, ok := charFilters[cf]
		if !ok {
			return nil, &Error{Analyzer: name, Err: fmt.Errorf("unknown char filter %q", cf)}
		}
		a.CharFilters = append(a.CharFilters, f)
	}
	for _, fname := range ac.Filters {
		fc, ok := cfg.Filters[fname]
		if !ok {
			return nil, &Error{Analyzer: name, Filter: fname, Err: fmt.Errorf("not defined")}
		}
		f, err := r.Filter(fname, fc)
		if err != nil {
			var ce *Error
			if errors.As(err, &ce) {
				ce.Analyzer = name
			}
			return nil, err
		}
		a.Filters = append(a.Filters, f)
	}
	return a, nil
}
