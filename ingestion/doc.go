// Package ingestion turns course documents into vector store records.
//
// The workflow is load → split → embed → store:
//   - LoadDocument reads .txt, .md or .pdf files into a core.Document
//   - Splitter produces bounded, overlapping chunks from document text
//   - Pipeline embeds chunk texts on a worker pool and appends the
//     records to a vector store collection
//
// Chunk record IDs are derived from the document source and chunk
// position, so re-ingesting a document without clearing its prior
// chunks collides on purpose rather than silently duplicating.
package ingestion
