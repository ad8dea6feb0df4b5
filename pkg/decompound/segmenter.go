package decompound

import (
	"slices"
	"sync/atomic"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Defaults for NewSegmenter.
const (
	DefaultMinFragmentLength = 3
	DefaultShortPenalty      = 1
	DefaultMaxWordLength     = 100
)

// DefaultGlue lists the German linking morphemes (Fugenelemente) that may
// join two fragments, as in "Jahr-es-feier" or "Recht-s-anwalt".
var DefaultGlue = []string{"e", "es", "en", "er", "n", "ens", "ns", "s"}

// Fragment is one piece of a segmented word. Start and Len are rune offsets
// within the word.
type Fragment struct {
	Text  string
	Start int
	Len   int
	Class Class
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithMinFragmentLength sets the length below which fragments are penalized
// and words are never split.
func WithMinFragmentLength(n int) Option {
	return func(s *Segmenter) { s.minFragment = n }
}

// WithShortPenalty sets the extra cost of a fragment shorter than the
// minimum fragment length.
func WithShortPenalty(n int) Option {
	return func(s *Segmenter) { s.shortPenalty = n }
}

// WithMaxWordLength caps the word length, in runes, that is searched.
// Longer words are returned whole.
func WithMaxWordLength(n int) Option {
	return func(s *Segmenter) { s.maxWordLength = n }
}

// WithGlue replaces the linking morphemes.
func WithGlue(morphemes []string) Option {
	return func(s *Segmenter) {
		s.glue = s.glue[:0]
		for _, m := range morphemes {
			if m != "" {
				s.glue = append(s.glue, []rune(m))
			}
		}
	}
}

// WithUmlautFallback retries spans with ä, ö, ü and ß folded to a, o, u
// and s when the exact form is not a fragment.
func WithUmlautFallback(enabled bool) Option {
	return func(s *Segmenter) { s.umlautFallback = enabled }
}

// WithLowercase matches the lowercased word against the dictionary.
func WithLowercase(enabled bool) Option {
	return func(s *Segmenter) { s.lowercase = enabled }
}

// WithCache enables an LRU cache of the given size. Zero disables caching.
func WithCache(size int) Option {
	return func(s *Segmenter) { s.cacheSize = size }
}

// Segmenter splits compound words into dictionary fragments.
// It is safe for concurrent use.
type Segmenter struct {
	dict           *Dictionary
	minFragment    int
	shortPenalty   int
	maxWordLength  int
	glue           [][]rune
	umlautFallback bool
	lowercase      bool
	cacheSize      int

	cache  *lru.Cache[string, []Fragment]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewSegmenter creates a segmenter over dict.
func NewSegmenter(dict *Dictionary, opts ...Option) *Segmenter {
	s := &Segmenter{
		dict:           dict,
		minFragment:    DefaultMinFragmentLength,
		shortPenalty:   DefaultShortPenalty,
		maxWordLength:  DefaultMaxWordLength,
		umlautFallback: true,
		lowercase:      true,
	}
	WithGlue(DefaultGlue)(s)
	for _, opt := range opts {
		opt(s)
	}
	if s.cacheSize > 0 {
		s.cache, _ = lru.New[string, []Fragment](s.cacheSize)
	}
	return s
}

// Dictionary returns the fragment dictionary.
func (s *Segmenter) Dictionary() *Dictionary {
	return s.dict
}

// Segment returns the cheapest segmentation of word. The fragments always
// tile the word; when no split is found the result is the word itself.
func (s *Segmenter) Segment(word string) []Fragment {
	if s.cache == nil {
		return s.segment(word)
	}

	if result, ok := s.cache.Get(word); ok {
		s.hits.Add(1)
		return slices.Clone(result)
	}
	s.misses.Add(1)

	result := s.segment(word)
	s.cache.Add(word, result)
	return slices.Clone(result)
}

// Decompound returns the fragment texts of word.
func (s *Segmenter) Decompound(word string) []string {
	fragments := s.Segment(word)
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return texts
}

// CacheStats returns cache hits and misses since creation.
func (s *Segmenter) CacheStats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

// CacheLen returns the number of cached words.
func (s *Segmenter) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

// ClearCache empties the cache.
func (s *Segmenter) ClearCache() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// edge is a lattice edge from some position to end.
type edge struct {
	end   int
	class Class
}

func (s *Segmenter) segment(word string) []Fragment {
	runes := []rune(word)
	n := len(runes)
	whole := []Fragment{{Text: word, Start: 0, Len: n}}
	if n == 0 || n < s.minFragment || n > s.maxWordLength {
		return whole
	}

	key := runes
	if s.lowercase {
		key = make([]rune, n)
		for i, r := range runes {
			key[i] = unicode.ToLower(r)
		}
	}
	var folded []rune
	if s.umlautFallback {
		folded = foldUmlauts(key)
	}

	edges := make([][]edge, n)
	for i := 0; i < n; i++ {
		edges[i] = s.edgesFrom(key, folded, i)
	}

	// Right-to-left: cost[i] is the cheapest cost from i to n, next[i] the
	// earliest boundary that achieves it.
	const inf = int(^uint(0) >> 1)
	cost := make([]int, n+1)
	next := make([]edge, n+1)
	for i := 0; i < n; i++ {
		cost[i] = inf
	}
	for i := n - 1; i >= 0; i-- {
		for _, e := range edges[i] {
			if cost[e.end] == inf {
				continue
			}
			c := 1 + cost[e.end]
			if e.end-i < s.minFragment {
				c += s.shortPenalty
			}
			if c < cost[i] || (c == cost[i] && e.end < next[i].end) {
				cost[i] = c
				next[i] = e
			}
		}
	}

	if cost[0] == inf || next[0].end == n {
		return whole
	}

	var fragments []Fragment
	for i := 0; i < n; i = next[i].end {
		e := next[i]
		fragments = append(fragments, Fragment{
			Text:  string(key[i:e.end]),
			Start: i,
			Len:   e.end - i,
			Class: e.class,
		})
	}
	return fragments
}

// edgesFrom collects the lattice edges leaving position i: every fragment
// starting at i, the same fragment extended by a linking morpheme, and the
// umlaut-folded matches. Plain matches take precedence for equal ends.
func (s *Segmenter) edgesFrom(key, folded []rune, i int) []edge {
	var out []edge
	add := func(end int, class Class) {
		for _, e := range out {
			if e.end == end {
				return
			}
		}
		out = append(out, edge{end: end, class: class})
	}

	s.dict.Walk(key, i, add)
	if folded != nil {
		s.dict.Walk(folded, i, add)
	}

	n := len(key)
	plain := len(out)
	for _, e := range out[:plain] {
		for _, g := range s.glue {
			j := e.end + len(g)
			if j < n && slices.Equal(key[e.end:j], g) {
				add(j, e.class)
			}
		}
	}
	return out
}

// foldUmlauts maps ä→a, ö→o, ü→u and ß→s rune for rune. It returns nil
// when nothing changes.
func foldUmlauts(runes []rune) []rune {
	var folded []rune
	for i, r := range runes {
		var f rune
		switch r {
		case 'ä', 'Ä':
			f = 'a'
		case 'ö', 'Ö':
			f = 'o'
		case 'ü', 'Ü':
			f = 'u'
		case 'ß':
			f = 's'
		default:
			continue
		}
		if folded == nil {
			folded = slices.Clone(runes)
		}
		folded[i] = f
	}
	return folded
}
