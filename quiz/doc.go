// Package quiz generates quiz questions with LLM providers.
//
// Questions can be generated from a free topic, from supplied content,
// or from course material retrieved out of a vector store collection.
// Providers are instructed to answer with a strict JSON array; the
// response is fence-stripped and lightly repaired before parsing, and
// unparseable output fails with a *ParseError carrying a snippet of
// the raw response.
package quiz
