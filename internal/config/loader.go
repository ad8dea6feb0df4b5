package config

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kerem-kaynak/german-analysis/pkg/baseform"
	"github.com/kerem-kaynak/german-analysis/pkg/decompound"
)

// Loader reads configuration files and resources (word lists, FST blobs,
// lexicons) from a file system.
type Loader struct {
	FS     fs.FS
	Logger *slog.Logger
}

// NewLoader reads resources relative to dir.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	return &Loader{FS: os.DirFS(dir), Logger: logger}
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.Logger
}

// ReadFile reads a named resource.
func (l *Loader) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.FS, filepath.ToSlash(name))
	if err != nil {
		return nil, err
	}
	l.logger().Debug("resource loaded", "name", name, "bytes", len(data))
	return data, nil
}

// Config reads and parses a configuration file.
func (l *Loader) Config(name string) (*Config, error) {
	data, err := l.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Dictionary loads a fragment dictionary. Files ending in .txt are read as
// word lists and compiled in memory; anything else is a compiled FST.
func (l *Loader) Dictionary(name string) (*decompound.Dictionary, error) {
	data, err := l.ReadFile(name)
	if err != nil {
		return nil, &decompound.LoadError{Source: name, Err: err}
	}
	if strings.HasSuffix(name, ".txt") {
		list, err := decompound.ReadWordList(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		dict, err := decompound.Build(list)
		if err != nil {
			return nil, err
		}
		l.logger().Debug("word list compiled", "name", name, "entries", dict.Len())
		return dict, nil
	}
	return decompound.Load(data)
}

// Lexicon loads a base form lexicon.
func (l *Loader) Lexicon(name string) (*baseform.Lexicon, error) {
	data, err := l.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("baseform: %w", err)
	}
	lex, err := baseform.ReadLexicon(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	l.logger().Debug("lexicon loaded", "name", name, "entries", lex.Len())
	return lex, nil
}
