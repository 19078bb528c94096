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


// Package store defines the vector storage abstraction used by Tutorkit.
//
// A VectorStore persists (id, text, vector, metadata) records in named,
// independent collections and answers nearest-neighbor queries against them.
// Collections are created lazily on first write; querying a collection that
// was never written to yields an empty result rather than an error, so
// callers never have to distinguish "empty" from "missing".
//
// Distances are squared euclidean: non-negative, lower is more similar, and
// not bounded to [0,1].
//
// The store/badger sub-package provides the production implementation on
// BadgerDB. Records are serialized with the MUS binary format.
package store
