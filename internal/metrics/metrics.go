// Package metrics exposes Prometheus counters for analysis throughput and
// the segmentation cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
	"github.com/kerem-kaynak/german-analysis/pkg/decompound"
)

// Metrics holds the collectors of one registry.
type Metrics struct {
	reg    prometheus.Registerer
	Tokens *prometheus.CounterVec
	Texts  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reg: reg,
		Tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analysis_tokens_total",
				Help: "Tokens emitted by an analyzer.",
			},
			[]string{"analyzer"},
		),
		Texts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analysis_texts_total",
				Help: "Texts analyzed.",
			},
			[]string{"analyzer"},
		),
	}
	reg.MustRegister(m.Tokens, m.Texts)
	return m
}

// Instrument returns a copy of a whose output is counted under name.
func (m *Metrics) Instrument(name string, a *analysis.Analyzer) *analysis.Analyzer {
	filters := make([]analysis.FilterFactory, 0, len(a.Filters)+1)
	filters = append(filters, a.Filters...)
	filters = append(filters, analysis.FilterFactoryFunc(func(in analysis.TokenStream) analysis.TokenStream {
		m.Texts.WithLabelValues(name).Inc()
		return &countingStream{input: in, tokens: m.Tokens.WithLabelValues(name)}
	}))
	return &analysis.Analyzer{
		CharFilters: a.CharFilters,
		Tokenizer:   a.Tokenizer,
		Filters:     filters,
	}
}

type countingStream struct {
	input  analysis.TokenStream
	tokens prometheus.Counter
}

func (s *countingStream) Next() (analysis.Token, bool) {
	tok, ok := s.input.Next()
	if ok {
		s.tokens.Inc()
	}
	return tok, ok
}

func (s *countingStream) Reset() {
	s.input.Reset()
}

// WatchSegmenter exports the cache statistics of seg under the filter name.
func (m *Metrics) WatchSegmenter(filter string, seg *decompound.Segmenter) {
	labels := prometheus.Labels{"filter": filter}
	m.reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "decompound_cache_hits_total",
			Help:        "Segmentation cache hits.",
			ConstLabels: labels,
		}, func() float64 {
			hits, _ := seg.CacheStats()
			return float64(hits)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "decompound_cache_misses_total",
			Help:        "Segmentation cache misses.",
			ConstLabels: labels,
		}, func() float64 {
			_, misses := seg.CacheStats()
			return float64(misses)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "decompound_cache_entries",
			Help:        "Words held in the segmentation cache.",
			ConstLabels: labels,
		}, func() float64 {
			return float64(seg.CacheLen())
		}),
	)
}
