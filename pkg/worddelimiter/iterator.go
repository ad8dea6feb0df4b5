package worddelimiter

// Done is returned by Iterator.Next when no sub-words remain.
const Done = -1

// Iterator walks the sub-word boundaries of one word.
type Iterator struct {
	text  []rune
	types TypeTable

	splitOnCaseChange     bool
	splitOnNumerics       bool
	stemEnglishPossessive bool

	startBounds, endBounds int
	// Current and End delimit the current sub-word in runes.
	Current, End int

	hasFinalPossessive bool
	skipPossessive     bool
}

// NewIterator creates an iterator configured from flags. A nil table uses
// DefaultCharType.
func NewIterator(types TypeTable, flags Flags) *Iterator {
	return &Iterator{
		types:                 types,
		splitOnCaseChange:     flags.Has(SplitOnCaseChange),
		splitOnNumerics:       flags.Has(SplitOnNumerics),
		stemEnglishPossessive: flags.Has(StemEnglishPossessive),
	}
}

// SetText starts iteration over text.
func (it *Iterator) SetText(text []rune) {
	it.text = text
	it.startBounds, it.endBounds = 0, len(text)
	it.Current, it.End = 0, 0
	it.hasFinalPossessive, it.skipPossessive = false, false
	it.setBounds()
}

func (it *Iterator) charType(r rune) CharType {
	return it.types.Of(r)
}

// setBounds trims leading and trailing delimiters and notes a final
// possessive.
func (it *Iterator) setBounds() {
	for it.startBounds < len(it.text) && it.charType(it.text[it.startBounds]).isDelim() {
		it.startBounds++
	}
	for it.endBounds > it.startBounds && it.charType(it.text[it.endBounds-1]).isDelim() {
		it.endBounds--
	}
	if it.endsWithPossessive(it.endBounds) {
		it.hasFinalPossessive = true
	}
	it.Current = it.startBounds
}

// Next advances to the next sub-word and returns its end, or Done.
func (it *Iterator) Next() int {
	it.Current = it.End
	if it.Current == Done {
		return Done
	}

	if it.skipPossessive {
		it.Current += 2
		it.skipPossessive = false
	}

	var lastType CharType
	for it.Current < it.endBounds {
		lastType = it.charType(it.text[it.Current])
		if !lastType.isDelim() {
			break
		}
		it.Current++
	}
	if it.Current >= it.endBounds {
		it.End = Done
		return Done
	}

	for it.End = it.Current + 1; it.End < it.endBounds; it.End++ {
		t := it.charType(it.text[it.End])
		if it.isBreak(lastType, t) {
			break
		}
		lastType = t
	}

	if it.End < it.endBounds-1 && it.endsWithPossessive(it.End+2) {
		it.skipPossessive = true
	}
	return it.End
}

// Type returns Alpha, Digit or SubwordDelim for the current sub-word, or 0
// when iteration is done.
func (it *Iterator) Type() CharType {
	if it.End == Done {
		return 0
	}
	t := it.charType(it.text[it.Current])
	if t == Lower || t == Upper {
		return Alpha
	}
	return t
}

// IsSingleWord reports whether the current sub-word spans the whole text
// apart from surrounding delimiters and a final possessive.
func (it *Iterator) IsSingleWord() bool {
	if it.hasFinalPossessive {
		return it.Current == it.startBounds && it.End == it.endBounds-2
	}
	return it.Current == it.startBounds && it.End == it.endBounds
}

func (it *Iterator) isBreak(lastType, t CharType) bool {
	if t&lastType != 0 {
		return false
	}
	if !it.splitOnCaseChange && lastType.isAlpha() && t.isAlpha() {
		return false
	}
	if lastType.isUpper() && t.isAlpha() {
		return false
	}
	if !it.splitOnNumerics && (lastType.isAlpha() && t.isDigit() || lastType.isDigit() && t.isAlpha()) {
		return false
	}
	return true
}

// endsWithPossessive reports whether text[:pos] ends in a letter followed
// by "'s" or "'S" at a word end.
func (it *Iterator) endsWithPossessive(pos int) bool {
	return it.stemEnglishPossessive &&
		pos > 2 &&
		it.text[pos-2] == '\'' &&
		(it.text[pos-1] == 's' || it.text[pos-1] == 'S') &&
		it.charType(it.text[pos-3]).isAlpha() &&
		(pos == it.endBounds || it.charType(it.text[pos]).isDelim())
}
