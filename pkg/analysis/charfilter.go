package analysis

import "strings"

// CharFilter rewrites source text before tokenization.
//
// Filter returns the rewritten text and, for every rune of the output, the
// rune offset in the input that produced it (len(out)+1 entries, the last
// one being the input length). A nil map means offsets are unchanged.
type CharFilter interface {
	Filter(text string) (string, []int)
}

// RuneMapper is a CharFilter that rewrites each input rune independently.
type RuneMapper func(r rune) string

// Filter applies m to every rune and records the correction map.
func (m RuneMapper) Filter(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	offsets := make([]int, 0, len(text)+1)

	i := 0
	for _, r := range text {
		for _, o := range m(r) {
			b.WriteRune(o)
			offsets = append(offsets, i)
		}
		i++
	}
	offsets = append(offsets, i)
	return b.String(), offsets
}

// ApplyCharFilters runs filters in order and composes their offset maps so
// the result maps straight back to the original text.
func ApplyCharFilters(text string, filters []CharFilter) (string, []int) {
	var offsets []int
	for _, cf := range filters {
		out, m := cf.Filter(text)
		offsets = composeOffsets(offsets, m)
		text = out
	}
	return text, offsets
}

func composeOffsets(outer, inner []int) []int {
	if outer == nil {
		return inner
	}
	if inner == nil {
		return outer
	}
	composed := make([]int, len(inner))
	for i, o := range inner {
		composed[i] = outer[o]
	}
	return composed
}

// CorrectStart maps a start offset in filtered text back to the source.
func CorrectStart(offsets []int, start int) int {
	if offsets == nil {
		return start
	}
	return offsets[start]
}

// CorrectEnd maps an exclusive end offset in filtered text back to the
// source. The end never falls before the rune that produced the last
// character of the span.
func CorrectEnd(offsets []int, end int) int {
	if offsets == nil {
		return end
	}
	if end == 0 {
		return offsets[0]
	}
	return max(offsets[end], offsets[end-1]+1)
}
