// Package reembed regenerates the vector embeddings of stored course
// material, batch by batch, with retry and progress reporting.
//
// Embeddings from different models live in incompatible vector spaces, so
// after switching embedding models every record in a collection must be
// reembedded before retrieval distances mean anything again. The Reembedder
// lists a collection's records, runs them through the configured embedder in
// batches, normalizes the resulting vectors, and writes them back in place.
package reembed
