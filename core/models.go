package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so identical content
// always maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is raw course material loaded from a file.
// Documents are ephemeral: they are read once, split into chunks, and discarded.
// The source file may persist externally but is not managed here.
type Document struct {
	Source      string // Original filename or identifier
	ContentType string // MIME-ish type hint, e.g. "text/plain", "application/pdf"
	Text        string // Full extracted text
}

// Chunk is a contiguous substring of a Document produced by the splitter.
// Start and End are byte offsets into the original document text, so
// Text == document.Text[Start:End].
type Chunk struct {
	Id      ID
	Source  string // Source document identifier
	Ordinal int    // Position of the chunk within its document, starting at 0
	Start   int
	End     int
	Text    string
}

// RecordID returns the stable string identifier used for this chunk in the
// vector store. It is derived from the document source and chunk position,
// so re-ingesting the same document produces the same IDs.
func (c *Chunk) RecordID() string {
	return fmt.Sprintf("%s#%d", c.Source, c.Ordinal)
}

// ScoredChunk is a single retrieval hit: the stored chunk text together with
// its distance to the query vector. Lower distance means more similar.
// Distance is a non-negative dissimilarity measure and is not bounded to [0,1].
type ScoredChunk struct {
	ID       string
	Text     string
	Distance float32
	Metadata map[string]string
}

// RetrievalResult is an ordered list of retrieval hits, ascending by distance.
type RetrievalResult []ScoredChunk
