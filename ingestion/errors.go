package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNilDocument is returned when a nil document is passed for ingestion.
	ErrNilDocument = errors.New("document cannot be nil")

	// ErrEmbeddingCountMismatch is returned when the embedder returns a
	// different number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")
)

// UnsupportedFileTypeError is returned by LoadDocument for file
// extensions it does not know how to read.
type UnsupportedFileTypeError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported file type: %q has no extension", e.Path)
	}
	return fmt.Sprintf("unsupported file type %q: only .txt, .md and .pdf are supported", e.Ext)
}
