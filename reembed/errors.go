package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrStoreRequired is returned when a reembedder is built without a store
	ErrStoreRequired = errors.New("record store is required")

	// ErrEmbedderRequired is returned when a reembedder is built without an embedder
	ErrEmbedderRequired = errors.New("embedder is required")
)
