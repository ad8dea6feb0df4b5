package analysis

// Expansion turns one source token into zero or more parts. Implementations
// may keep state across tokens of one stream; Reset clears it.
type Expansion interface {
	Expand(dst []Part, src Token) []Part
	Reset()
}

// Strategy selects how an ExpandFilter surfaces the source token.
type Strategy int

const (
	// KeepSource emits the source token unchanged, then every part stacked
	// on the same position (PosInc 0).
	KeepSource Strategy = iota
	// ReplaceSource emits only the parts, with the increments the expansion
	// assigned. An expansion that leaves a source alone returns it as its
	// single part. A source with no parts is dropped and its position
	// increment is added to the next token emitted.
	ReplaceSource
)

// State is the expansion state of an ExpandFilter.
type State int

const (
	StateEmpty State = iota
	StateHasSource
	StateDraining
)

// ExpandFilter is the shared one-to-many token protocol used by the
// decompound, baseform, hyphen and word delimiter filters.
type ExpandFilter struct {
	input     TokenStream
	expansion Expansion
	strategy  Strategy

	queue    []Part
	head     int
	snapshot Token
	captured bool
	state    State

	// carry is the increment of dropped sources not yet emitted.
	carry int
}

// NewExpandFilter wraps input with expansion.
func NewExpandFilter(input TokenStream, expansion Expansion, strategy Strategy) *ExpandFilter {
	return &ExpandFilter{
		input:     input,
		expansion: expansion,
		strategy:  strategy,
	}
}

// Next returns the next source token or derived part.
func (f *ExpandFilter) Next() (Token, bool) {
	for {
		if f.head < len(f.queue) {
			return f.pop(), true
		}

		src, ok := f.input.Next()
		if !ok {
			f.clear()
			f.carry = 0
			return Token{}, false
		}

		f.queue = f.expansion.Expand(f.queue[:0], src)
		f.head = 0
		if len(f.queue) == 0 {
			f.clear()
			if f.strategy == KeepSource {
				return src, true
			}
			f.carry += src.PosInc
			continue
		}

		f.snapshot = src
		f.captured = true
		f.state = StateHasSource
		if f.strategy == KeepSource {
			return src, true
		}
		return f.pop(), true
	}
}

func (f *ExpandFilter) pop() Token {
	if !f.captured {
		panic("analysis: pending parts without a captured source token")
	}
	p := f.queue[f.head]
	f.head++

	tok := f.snapshot
	tok.Term = p.Term
	tok.Start = p.Start
	tok.End = p.End
	if f.strategy == KeepSource {
		tok.PosInc = 0
	} else {
		tok.PosInc = p.PosInc + f.carry
		f.carry = 0
	}

	if f.head < len(f.queue) {
		f.state = StateDraining
	} else {
		f.clear()
	}
	return tok
}

func (f *ExpandFilter) clear() {
	f.queue = f.queue[:0]
	f.head = 0
	f.snapshot = Token{}
	f.captured = false
	f.state = StateEmpty
}

// State reports where the filter is in its expansion cycle.
func (f *ExpandFilter) State() State {
	return f.state
}

// Pending returns the number of queued parts not yet emitted.
func (f *ExpandFilter) Pending() int {
	return len(f.queue) - f.head
}

// Reset drops queued parts and the captured snapshot and resets upstream.
func (f *ExpandFilter) Reset() {
	f.clear()
	f.carry = 0
	f.expansion.Reset()
	f.input.Reset()
}

// SubSpan maps a span of the source term, given in runes relative to the
// term, to absolute offsets. When the source's own offsets do not span
// exactly its term (an upstream filter changed the text), the source offsets
// are returned unchanged.
func SubSpan(src Token, offset, length int) (start, end int) {
	if !HasConsistentOffsets(src) {
		return src.Start, src.End
	}
	return src.Start + offset, src.Start + offset + length
}

// HasConsistentOffsets reports whether src.End-src.Start equals the rune
// length of src.Term.
func HasConsistentOffsets(src Token) bool {
	return src.End-src.Start == src.Len()
}
