package ingestion

import (
	"strings"

	"github.com/poiesic/tutorkit/core"
)

const (
	// DefaultChunkSize is the default maximum chunk length in bytes.
	DefaultChunkSize = 512

	// DefaultOverlap is the default number of bytes shared between
	// consecutive chunks.
	DefaultOverlap = 50
)

// Splitter splits document text into bounded, overlapping chunks.
//
// Chunks are at most ChunkSize bytes long, except when a single
// unbroken run of non-whitespace exceeds ChunkSize. When a chunk would
// cut mid-word, the split point snaps back to the nearest whitespace
// within the last 20% of the chunk. Consecutive chunks overlap by
// Overlap bytes where possible.
type Splitter struct {
	chunkSize int
	overlap   int
}

// SplitterOption configures a Splitter.
type SplitterOption func(*Splitter)

// WithChunkSize sets the maximum chunk length.
// Values below 1 are clamped to 1.
func WithChunkSize(size int) SplitterOption {
	return func(s *Splitter) {
		if size < 1 {
			size = 1
		}
		s.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive chunks.
// Negative values are clamped to 0. Overlaps at or above the chunk
// size are allowed; forward progress is still guaranteed.
func WithOverlap(overlap int) SplitterOption {
	return func(s *Splitter) {
		if overlap < 0 {
			overlap = 0
		}
		s.overlap = overlap
	}
}

// NewSplitter creates a splitter with the given options.
func NewSplitter(opts ...SplitterOption) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split splits text into ordered chunks. Empty text yields nil.
// The returned chunks carry offsets into text but no source; use
// SplitDocument to produce fully identified chunks.
//
// The scan always advances start by at least one byte per iteration,
// so the loop terminates for any chunk size and overlap.
func (s *Splitter) Split(text string) []core.Chunk {
	if text == "" {
		return nil
	}

	var chunks []core.Chunk
	start := 0
	textLen := len(text)

	for start < textLen {
		end := start + s.chunkSize
		if end > textLen {
			end = textLen
		}

		// Snap to a whitespace boundary in the last 20% of the chunk
		// so words are not cut mid-way. The final chunk keeps its hard
		// end at the text boundary.
		if end < textLen {
			lookback := s.chunkSize / 5
			floor := end - lookback
			if floor < start {
				floor = start
			}
			if idx := strings.LastIndexByte(text[floor:end], ' '); idx != -1 {
				end = floor + idx
			}
		}

		if end > start {
			chunks = append(chunks, core.Chunk{
				Ordinal: len(chunks),
				Start:   start,
				End:     end,
				Text:    text[start:end],
			})
		}

		// The last window covers the remainder of the text; advancing
		// into the overlap region would only emit shrinking tails.
		if end == textLen {
			break
		}

		next := end - s.overlap
		if next < start+1 {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// SplitDocument splits a document's text and stamps each chunk with the
// document source and a content-derived ID.
func (s *Splitter) SplitDocument(doc *core.Document) []core.Chunk {
	if doc == nil {
		return nil
	}

	chunks := s.Split(doc.Text)
	for i := range chunks {
		chunks[i].Source = doc.Source
		chunks[i].Id = core.IDFromContent(chunks[i].RecordID())
	}
	return chunks
}
