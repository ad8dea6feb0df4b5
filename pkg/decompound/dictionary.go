package decompound

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/blevesearch/vellum"
)

// Class is the word class stored with a fragment.
type Class uint8

const (
	ClassNone Class = iota
	ClassNoun
	ClassVerb
	ClassAdjective
	ClassAdverb
	ClassParticle
)

var classNames = []string{"none", "noun", "verb", "adjective", "adverb", "particle"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// ParseClass parses a class name as written in word lists. Single-letter
// abbreviations (n, v, a, d, p) are accepted.
func ParseClass(s string) (Class, error) {
	for i, name := range classNames {
		if s == name {
			return Class(i), nil
		}
	}
	switch s {
	case "", "-":
		return ClassNone, nil
	case "n":
		return ClassNoun, nil
	case "v":
		return ClassVerb, nil
	case "a":
		return ClassAdjective, nil
	case "d":
		return ClassAdverb, nil
	case "p":
		return ClassParticle, nil
	}
	return ClassNone, fmt.Errorf("unknown word class %q", s)
}

// Entry is one fragment of the dictionary.
type Entry struct {
	Text  string
	Class Class
}

// LoadError reports a dictionary that could not be read or decoded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("decompound: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Dictionary holds compound fragments in an FST. It is read-only after
// construction and safe for concurrent use.
type Dictionary struct {
	fst *vellum.FST
}

// Load decodes a serialized FST.
func Load(data []byte) (*Dictionary, error) {
	fst, err := loadFST(data)
	if err != nil {
		return nil, &LoadError{Source: "bytes", Err: err}
	}
	return &Dictionary{fst: fst}, nil
}

// loadFST guards against decoder panics on corrupt input with a valid header.
func loadFST(data []byte) (fst *vellum.FST, err error) {
	defer func() {
		if r := recover(); r != nil {
			fst, err = nil, fmt.Errorf("corrupt fst: %v", r)
		}
	}()
	fst, err = vellum.Load(data)
	if err != nil {
		return nil, err
	}
	// Decode the root so truncated blobs fail here rather than on first lookup.
	if _, _, err := fst.Get(nil); err != nil {
		return nil, err
	}
	return fst, nil
}

// Read reads a serialized FST from r.
func Read(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: "reader", Err: err}
	}
	fst, err := loadFST(data)
	if err != nil {
		return nil, &LoadError{Source: "reader", Err: err}
	}
	return &Dictionary{fst: fst}, nil
}

// Open memory-maps a compiled dictionary file.
func Open(path string) (*Dictionary, error) {
	fst, err := vellum.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return &Dictionary{fst: fst}, nil
}

// Lookup returns the entry for text, which must match exactly.
func (d *Dictionary) Lookup(text string) (Entry, bool) {
	val, ok, err := d.fst.Get([]byte(text))
	if err != nil || !ok {
		return Entry{}, false
	}
	return Entry{Text: text, Class: Class(val)}, true
}

// Contains reports whether text is a fragment.
func (d *Dictionary) Contains(text string) bool {
	_, ok := d.Lookup(text)
	return ok
}

// HasPrefix reports whether some fragment starts with text.
func (d *Dictionary) HasPrefix(text string) bool {
	addr := d.fst.Start()
	for i := 0; i < len(text); i++ {
		addr = d.fst.Accept(addr, text[i])
		if !d.fst.CanMatch(addr) {
			return false
		}
	}
	return true
}

// Walk reports every fragment that is a prefix of runes[from:] through fn,
// with the exclusive rune end of the match. Traversal stops as soon as no
// fragment can start with the runes consumed so far.
func (d *Dictionary) Walk(runes []rune, from int, fn func(end int, class Class)) {
	var buf [utf8.UTFMax]byte
	addr := d.fst.Start()
	var total uint64
	for i := from; i < len(runes); i++ {
		n := utf8.EncodeRune(buf[:], runes[i])
		for _, b := range buf[:n] {
			var out uint64
			addr, out = d.fst.AcceptWithVal(addr, b)
			if !d.fst.CanMatch(addr) {
				return
			}
			total += out
		}
		if ok, final := d.fst.IsMatchWithVal(addr); ok {
			fn(i+1, Class(total+final))
		}
	}
}

// Entries calls fn for every fragment in key order.
func (d *Dictionary) Entries(fn func(Entry) error) error {
	it, err := d.fst.Iterator(nil, nil)
	for err == nil {
		key, val := it.Current()
		if ferr := fn(Entry{Text: string(key), Class: Class(val)}); ferr != nil {
			return ferr
		}
		err = it.Next()
	}
	if err == vellum.ErrIteratorDone {
		return nil
	}
	return err
}

// Len returns the number of fragments.
func (d *Dictionary) Len() int {
	return d.fst.Len()
}

// Close releases the FST; for opened files this unmaps the data.
func (d *Dictionary) Close() error {
	if d.fst == nil {
		return nil
	}
	err := d.fst.Close()
	d.fst = nil
	return err
}
