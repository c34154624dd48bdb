package chunker

import (
	"fmt"
	"strings"
)

// Splitter cuts text into overlapping chunks of roughly fixed size.
// Cuts prefer paragraph breaks, then line breaks, then sentence ends, then
// word breaks, falling back to a hard cut at the size limit. Splitting is
// fully deterministic: the same text and parameters always produce the
// same chunk sequence.
type Splitter struct {
	size    int
	overlap int
}

// New creates a Splitter. size must be positive and overlap must be
// non-negative and smaller than size.
func New(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// boundaries are tried in order of preference; the first one found within
// the cut window wins.
var boundaries = []string{"\n\n", "\n", ". ", " "}

// Split cuts text into chunks. Empty (or whitespace-only) input yields no
// chunks; text that fits within the size limit yields exactly one.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= s.size {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	start := 0
	for {
		if len(text)-start <= s.size {
			if tail := strings.TrimSpace(text[start:]); tail != "" {
				chunks = append(chunks, tail)
			}
			return chunks
		}

		end := s.cut(text, start)
		if piece := strings.TrimSpace(text[start:end]); piece != "" {
			chunks = append(chunks, piece)
		}
		start = end - s.overlap
	}
}

// cut picks the end offset for the chunk starting at start. The boundary
// search is restricted to the second half of the window so chunks never
// degenerate below size/2, and always past the overlap so the next window
// makes forward progress.
func (s *Splitter) cut(text string, start int) int {
	window := text[start : start+s.size]

	minCut := s.size / 2
	if minCut <= s.overlap {
		minCut = s.overlap + 1
	}

	for _, sep := range boundaries {
		if i := strings.LastIndex(window[minCut:], sep); i >= 0 {
			return start + minCut + i + len(sep)
		}
	}

	// No usable boundary: hard cut at the size limit.
	return start + s.size
}
