package decompound

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/blevesearch/vellum"
)

// WordList is the editable source of a Dictionary: one fragment per line,
// optionally followed by a tab and a word class.
type WordList struct {
	words map[string]Class
}

// NewWordList creates an empty word list.
func NewWordList() *WordList {
	return &WordList{words: make(map[string]Class)}
}

// ReadWordList parses "word" or "word<TAB>class" lines. Blank lines and
// lines starting with '#' are skipped; words are lowercased.
func ReadWordList(r io.Reader) (*WordList, error) {
	l := NewWordList()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, classField, _ := strings.Cut(line, "\t")
		class, err := ParseClass(strings.TrimSpace(classField))
		if err != nil {
			return nil, &LoadError{Source: fmt.Sprintf("word list line %d", lineNo), Err: err}
		}
		l.Add(strings.TrimSpace(word), class)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Source: "word list", Err: err}
	}
	return l, nil
}

// Add inserts or reclassifies a word.
func (l *WordList) Add(word string, class Class) {
	word = strings.ToLower(word)
	if word == "" {
		return
	}
	l.words[word] = class
}

// Remove deletes a word. It reports whether the word was present.
func (l *WordList) Remove(word string) bool {
	word = strings.ToLower(word)
	_, ok := l.words[word]
	delete(l.words, word)
	return ok
}

// Contains checks if a word exists in the list (case-insensitive).
func (l *WordList) Contains(word string) bool {
	_, ok := l.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of words.
func (l *WordList) Len() int {
	return len(l.words)
}

// Sorted returns the words in byte order, the order the FST builder needs.
func (l *WordList) Sorted() []string {
	sorted := make([]string, 0, len(l.words))
	for word := range l.words {
		sorted = append(sorted, word)
	}
	sort.Strings(sorted)
	return sorted
}

// WriteTo writes the list back in its text format, sorted.
func (l *WordList) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, word := range l.Sorted() {
		line := word
		if class := l.words[word]; class != ClassNone {
			line += "\t" + class.String()
		}
		n, err := bw.WriteString(line + "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// Compile writes the word list as a vellum FST whose value is the class.
func Compile(l *WordList, w io.Writer) error {
	builder, err := vellum.New(w, nil)
	if err != nil {
		return fmt.Errorf("create fst builder: %w", err)
	}

	for _, word := range l.Sorted() {
		if err := builder.Insert([]byte(word), uint64(l.words[word])); err != nil {
			builder.Close()
			return fmt.Errorf("insert %q: %w", word, err)
		}
	}

	if err := builder.Close(); err != nil {
		return fmt.Errorf("finish fst: %w", err)
	}
	return nil
}

// Build compiles l into an in-memory Dictionary.
func Build(l *WordList) (*Dictionary, error) {
	var buf bytes.Buffer
	if err := Compile(l, &buf); err != nil {
		return nil, err
	}
	return Load(buf.Bytes())
}
