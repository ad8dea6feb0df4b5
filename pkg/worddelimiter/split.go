package worddelimiter

import "unicode/utf8"

// SubWord is one output of splitting a word. Offsets are rune offsets; Split
// reports them relative to the word.
type SubWord struct {
	Text         string
	Start, End   int
	PosInc       int
	Type         CharType
	Concatenated bool
}

// Split splits word with the default character table. Protected words and
// words without internal breaks come back whole; a word made only of
// delimiters yields nothing.
func Split(word string, flags Flags, protected map[string]struct{}) []SubWord {
	s := newSplitter(flags, protected, nil)
	return s.split(nil, word, 0, utf8.RuneCountInString(word), 1)
}

type concatenation struct {
	text       []rune
	start, end int
	typ        CharType
	count      int
}

func (c *concatenation) isEmpty() bool {
	return c.count == 0
}

func (c *concatenation) clear() {
	c.text = c.text[:0]
	c.start, c.end, c.typ, c.count = 0, 0, 0, 0
}

// splitter carries the per-stream state of the word delimiter. accumPosInc
// survives from one word to the next; it holds the adjustment for dropped
// delimiter tokens whose increment was absorbed.
type splitter struct {
	flags     Flags
	protected map[string]struct{}
	it        *Iterator

	accumPosInc int

	// per-word state
	out                        []SubWord
	text                       []rune
	savedStart, savedEnd       int
	illegalOffsets             bool
	hasOutputToken             bool
	hasOutputFollowingOriginal bool
	lastConcatCount            int
	emitted                    int
	concat, concatAll          concatenation
}

func newSplitter(flags Flags, protected map[string]struct{}, table TypeTable) *splitter {
	return &splitter{
		flags:     flags,
		protected: protected,
		it:        NewIterator(table, flags),
	}
}

func (s *splitter) reset() {
	s.accumPosInc = 0
}

// split appends the sub-words of term to dst. start and end are the source
// offsets of term, posInc its position increment.
func (s *splitter) split(dst []SubWord, term string, start, end, posInc int) []SubWord {
	s.out = dst
	s.accumPosInc += posInc

	if _, ok := s.protected[term]; ok {
		return s.whole(term, start, end, 0)
	}

	s.text = []rune(term)
	s.it.SetText(s.text)
	s.it.Next()

	if s.it.Current == 0 && s.it.End == len(s.text) {
		return s.whole(term, start, end, s.it.Type())
	}

	// A word of delimiters only is dropped. The caller carries its
	// increment; an increment of one is absorbed.
	if s.it.End == Done && !s.flags.Has(PreserveOriginal) {
		s.accumPosInc -= posInc
		if posInc == 1 {
			s.accumPosInc--
		}
		return s.out
	}

	s.savedStart, s.savedEnd = start, end
	s.illegalOffsets = end-start != len(s.text)
	s.hasOutputToken = false
	s.hasOutputFollowingOriginal = !s.flags.Has(PreserveOriginal)
	s.lastConcatCount = 0
	s.emitted = 0
	s.concat.clear()
	s.concatAll.clear()

	if s.flags.Has(PreserveOriginal) {
		s.out = append(s.out, SubWord{Text: term, Start: start, End: end, PosInc: s.accumPosInc})
		s.accumPosInc = 0
		s.emitted++
	}

	for s.it.End != Done {
		if s.it.IsSingleWord() {
			s.generatePart(true)
			s.it.Next()
			continue
		}

		wordType := s.it.Type()
		if !s.concat.isEmpty() && s.concat.typ&wordType == 0 {
			s.flushConcatenation(&s.concat)
			s.hasOutputToken = false
		}
		if s.shouldConcatenate(wordType) {
			if s.concat.isEmpty() {
				s.concat.typ = wordType
			}
			s.concatenate(&s.concat)
		}
		if s.flags.Has(CatenateAll) {
			s.concatenate(&s.concatAll)
		}
		if s.shouldGenerateParts(wordType) {
			s.generatePart(false)
		}
		s.it.Next()
	}

	if !s.concat.isEmpty() {
		s.flushConcatenation(&s.concat)
	}
	if !s.concatAll.isEmpty() {
		if s.concatAll.count > s.lastConcatCount {
			s.write(&s.concatAll)
		}
		s.concatAll.clear()
	}
	return s.out
}

func (s *splitter) shouldConcatenate(wordType CharType) bool {
	return s.flags.Has(CatenateWords) && wordType.isAlpha() ||
		s.flags.Has(CatenateNumbers) && wordType.isDigit()
}

func (s *splitter) shouldGenerateParts(wordType CharType) bool {
	return s.flags.Has(GenerateWordParts) && wordType.isAlpha() ||
		s.flags.Has(GenerateNumberParts) && wordType.isDigit()
}

func (s *splitter) concatenate(c *concatenation) {
	if c.isEmpty() {
		c.start = s.savedStart + s.it.Current
	}
	c.text = append(c.text, s.text[s.it.Current:s.it.End]...)
	c.end = s.savedStart + s.it.End
	c.count++
}

// flushConcatenation writes c unless it holds a single part that is emitted
// on its own anyway.
func (s *splitter) flushConcatenation(c *concatenation) {
	s.lastConcatCount = c.count
	if c.count != 1 || !s.shouldGenerateParts(c.typ) {
		s.write(c)
	}
	c.clear()
}

func (s *splitter) write(c *concatenation) {
	start, end := c.start, c.end
	if s.illegalOffsets {
		start, end = s.savedStart, s.savedEnd
	}
	s.emit(SubWord{
		Text:         string(c.text),
		Start:        start,
		End:          end,
		PosInc:       s.position(true),
		Type:         c.typ,
		Concatenated: true,
	})
	s.accumPosInc = 0
}

func (s *splitter) generatePart(singleWord bool) {
	start := s.savedStart + s.it.Current
	end := s.savedStart + s.it.End
	if s.illegalOffsets {
		if singleWord && start <= s.savedEnd {
			end = s.savedEnd
		} else {
			start, end = s.savedStart, s.savedEnd
		}
	}
	s.emit(SubWord{
		Text:   string(s.text[s.it.Current:s.it.End]),
		Start:  start,
		End:    end,
		PosInc: s.position(false),
		Type:   s.it.Type(),
	})
}

func (s *splitter) emit(sw SubWord) {
	if s.flags.Has(AllPartsAtSamePosition) && s.emitted > 0 {
		sw.PosInc = 0
	}
	s.emitted++
	s.out = append(s.out, sw)
}

// position returns the increment of the next part. The first part after a
// preserved original is stacked on it; otherwise the first part takes the
// accumulated increment unchanged, so a stacked source keeps its parts
// stacked. Later parts advance by at least one and injected concatenations
// stay on the current position.
func (s *splitter) position(inject bool) int {
	posInc := s.accumPosInc
	if s.hasOutputToken {
		s.accumPosInc = 0
		if inject {
			return 0
		}
		return max(1, posInc)
	}

	s.hasOutputToken = true
	if !s.hasOutputFollowingOriginal {
		s.hasOutputFollowingOriginal = true
		return 0
	}
	s.accumPosInc = 0
	return posInc
}

// whole appends term unsplit with the accumulated increment.
func (s *splitter) whole(term string, start, end int, typ CharType) []SubWord {
	s.out = append(s.out, SubWord{
		Text:   term,
		Start:  start,
		End:    end,
		PosInc: s.accumPosInc,
		Type:   typ,
	})
	s.accumPosInc = 0
	return s.out
}
