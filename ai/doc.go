// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI services used in Tutorkit.
//
// This package defines interfaces for text embeddings and multi-backend text
// generation. It follows the dependency inversion principle, allowing the core
// domain and business logic to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around two key interfaces and one registry:
//
//   - Embedder: Generates vector embeddings from text
//   - Provider: Generates text completions from a hosted backend
//   - Registry: Selects providers by string key with availability checks
//
// # Implementation Packages
//
// The ai package includes implementation sub-packages:
//
//   - ai/openai: Embedder using OpenAI-compatible APIs (Ollama, LocalAI, vLLM)
//   - ai/gemini: Provider wrapping the Google Gemini API
//   - ai/mistral: Provider wrapping the Mistral API
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Error Contract
//
// Generation backends fail in ordinary, recoverable ways: a missing credential
// is ErrUnavailable, an unknown registry key is *UnknownProviderError, and a
// transient backend failure is a wrapped error from Generate. None of these
// conditions panic; callers at the answering and quiz-generation boundaries
// translate them into response payloads.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithGeminiKey(os.Getenv("GEMINI_API_KEY")))
//	registry, err := ai.NewRegistry(config,
//	    ai.WithProviderFactory(gemini.ProviderName, gemini.Factory),
//	    ai.WithProviderFactory(mistral.ProviderName, mistral.Factory),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	provider, err := registry.Provider("gemini", "")
//	answer, err := provider.Generate(ctx, "Explain photosynthesis.", "")
package ai
