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


package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrRegistryRequired is returned when a provider registry is not provided.
	ErrRegistryRequired = errors.New("provider registry required")

	// ErrRetrieverRequired is returned by FromCollection when the
	// generator was built without a retriever.
	ErrRetrieverRequired = errors.New("retriever required for collection quizzes")

	// ErrEmptyTopic is returned when an empty topic is given.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrEmptyContent is returned when empty content is given.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrNoContent is returned when a collection holds no material to
	// generate questions from.
	ErrNoContent = errors.New("no content found in the course materials")
)

// rawSnippetLen bounds how much raw provider output a ParseError carries.
const rawSnippetLen = 200

// ParseError reports provider output that could not be parsed as a
// question array, carrying a snippet of the raw response.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse generated questions: %v: raw response starting with: %q", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(raw string, err error) *ParseError {
	if len(raw) > rawSnippetLen {
		raw = raw[:rawSnippetLen]
	}
	return &ParseError{Raw: raw, Err: err}
}
