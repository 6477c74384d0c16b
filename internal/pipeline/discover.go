package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tkutschbach/RST-Tace/internal/parser"
)

// PairSpec names two annotations of the same document.
type PairSpec struct {
	Name  string
	PathA string
	PathB string
}

// DiscoverPairs matches annotation files of two directories by file stem.
// Unsupported files are ignored; stems present on one side only are
// returned as unmatched paths.
func DiscoverPairs(dirA, dirB string) (pairs []PairSpec, unmatched []string, err error) {
	filesA, err := listAnnotations(dirA)
	if err != nil {
		return nil, nil, err
	}
	filesB, err := listAnnotations(dirB)
	if err != nil {
		return nil, nil, err
	}

	for _, stem := range sortedKeys(filesA) {
		if pathB, ok := filesB[stem]; ok {
			pairs = append(pairs, PairSpec{Name: stem, PathA: filesA[stem], PathB: pathB})
		} else {
			unmatched = append(unmatched, filesA[stem])
		}
	}
	for _, stem := range sortedKeys(filesB) {
		if _, ok := filesA[stem]; !ok {
			unmatched = append(unmatched, filesB[stem])
		}
	}
	return pairs, unmatched, nil
}

func listAnnotations(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		files[parser.Stem(e.Name())] = filepath.Join(dir, e.Name())
	}
	return files, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
