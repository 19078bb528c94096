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


package ai

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable indicates the backend credential is not configured.
	ErrUnavailable = errors.New("provider is not available")

	// ErrEmptyPrompt indicates an empty prompt was passed to Generate.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrConfigRequired is returned when a nil config is passed to a constructor.
	ErrConfigRequired = errors.New("ai config required")

	// ErrFactoryRequired is returned when a provider factory registration is incomplete.
	ErrFactoryRequired = errors.New("provider name and factory required")

	// ErrEmptyResponse indicates the backend returned no completion choices.
	ErrEmptyResponse = errors.New("backend returned no choices")
)

// UnknownProviderError is returned by the registry for unrecognized provider keys.
type UnknownProviderError struct {
	Name  string
	Known []string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q, available: %s", e.Name, strings.Join(e.Known, ", "))
}
