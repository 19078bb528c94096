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


package store

import "errors"

var (
	// ErrDuplicateID indicates a record ID already exists in the collection.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrDimensionMismatch indicates a vector's dimension differs from the
	// dimension pinned to the collection.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrLengthMismatch indicates parallel input sequences have different lengths.
	ErrLengthMismatch = errors.New("parallel sequences have mismatched lengths")

	// ErrEmptyCollectionName indicates an empty collection name was provided.
	ErrEmptyCollectionName = errors.New("collection name cannot be empty")

	// ErrInvalidCollectionName indicates a collection name containing
	// reserved characters.
	ErrInvalidCollectionName = errors.New("invalid collection name")

	// ErrEmptyRecordID indicates a record with an empty ID was provided.
	ErrEmptyRecordID = errors.New("record id cannot be empty")

	// ErrEmptyVector indicates a record with an empty vector was provided.
	ErrEmptyVector = errors.New("record vector cannot be empty")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidQuery indicates invalid query parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
