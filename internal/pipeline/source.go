package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tkutschbach/RST-Tace/internal/parser"
	"github.com/tkutschbach/RST-Tace/internal/rsttree"
)

// ErrSourceUnavailable is returned when a source cannot supply its document.
var ErrSourceUnavailable = errors.New("annotation source unavailable")

// Source supplies the discourse tree of one document.
type Source interface {
	Name() string
	Read() (*rsttree.Tree, error)
}

// FileSource reads an annotation file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return parser.Stem(s.Path) }

func (s FileSource) Read() (*rsttree.Tree, error) {
	p, err := parser.ForFile(s.Path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()
	return p.Parse(f, s.Path)
}

// ReaderSource parses an annotation already held in memory, e.g. an upload.
type ReaderSource struct {
	Filename string
	R        io.Reader
}

func (s ReaderSource) Name() string { return parser.Stem(s.Filename) }

func (s ReaderSource) Read() (*rsttree.Tree, error) {
	if s.R == nil {
		return nil, fmt.Errorf("%w: %s: no content", ErrSourceUnavailable, s.Filename)
	}
	p, err := parser.ForFile(s.Filename)
	if err != nil {
		return nil, err
	}
	return p.Parse(s.R, s.Filename)
}
