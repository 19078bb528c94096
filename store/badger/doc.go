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


// Package badger implements the store.VectorStore interface on BadgerDB.
//
// Collections map to key prefixes; each collection's registry entry pins the
// vector dimension set by the first record added to it. Queries scan the
// collection's records and rank them by squared euclidean distance.
//
// An in-memory mode is available through NewMemoryStore for tests.
package badger
