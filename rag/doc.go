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


// Package rag answers course questions from retrieved material.
//
// Retriever embeds a question and fetches the nearest chunks from the
// vector store. Generator filters those chunks by a relevance
// threshold, builds a prompt restricted to the surviving context, and
// delegates generation to a provider from the registry. When nothing
// relevant is found the generator declines rather than letting the
// provider answer from its own knowledge.
package rag
