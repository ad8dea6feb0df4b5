package baseform

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/blevesearch/vellum"
)

// LoadError reports a lexicon that could not be read or parsed. Line is
// zero when the error is not tied to a line.
type LoadError struct {
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("baseform: lexicon line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("baseform: lexicon: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Lexicon maps surface forms to base forms. Surface forms are keys of an
// FST whose value indexes a table of distinct base forms. A Lexicon is
// immutable and safe for concurrent use.
type Lexicon struct {
	fst   *vellum.FST
	forms []string
}

// ReadLexicon reads "surface<TAB>baseform" lines. Blank lines and lines
// starting with '#' are skipped; for duplicate surface forms the last line
// wins. Matching is case-sensitive.
func ReadLexicon(r io.Reader) (*Lexicon, error) {
	entries := make(map[string]string)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		surface, base, ok := strings.Cut(line, "\t")
		if !ok || surface == "" {
			return nil, &LoadError{Line: lineNo, Err: fmt.Errorf("expected surface<TAB>baseform, got %q", line)}
		}
		entries[surface] = strings.TrimSpace(base)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Err: err}
	}

	lex, err := build(entries)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return lex, nil
}

func build(entries map[string]string) (*Lexicon, error) {
	surfaces := make([]string, 0, len(entries))
	for s := range entries {
		surfaces = append(surfaces, s)
	}
	sort.Strings(surfaces)

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}

	lex := &Lexicon{}
	index := make(map[string]uint64)
	for _, s := range surfaces {
		base := entries[s]
		id, ok := index[base]
		if !ok {
			id = uint64(len(lex.forms))
			index[base] = id
			lex.forms = append(lex.forms, base)
		}
		if err := builder.Insert([]byte(s), id); err != nil {
			builder.Close()
			return nil, err
		}
	}
	if err := builder.Close(); err != nil {
		return nil, err
	}

	lex.fst, err = vellum.Load(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return lex, nil
}

// Lookup returns the base form of surface, or surface itself when the
// lexicon has no entry.
func (l *Lexicon) Lookup(surface string) string {
	if base, ok := l.Get(surface); ok {
		return base
	}
	return surface
}

// Get returns the base form of surface and whether it is known.
func (l *Lexicon) Get(surface string) (string, bool) {
	id, ok, err := l.fst.Get([]byte(surface))
	if err != nil || !ok {
		return "", false
	}
	return l.forms[id], true
}

// Len returns the number of surface forms.
func (l *Lexicon) Len() int {
	return l.fst.Len()
}

// Forms returns the number of distinct base forms.
func (l *Lexicon) Forms() int {
	return len(l.forms)
}
