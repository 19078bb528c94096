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


package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/tutorkit/ai"
)

// MockProvider is a test double for ai.Provider.
// By default it is available and echoes a canned response; both behaviors can
// be overridden via the public fields.
type MockProvider struct {
	// GenerateFunc is called by Generate if set.
	// If nil, Generate returns Response (or a default echo).
	GenerateFunc func(ctx context.Context, prompt, systemPrompt string) (string, error)

	// Response is returned by Generate when GenerateFunc is nil and Response
	// is non-empty.
	Response string

	// Available controls IsAvailable.
	Available bool

	// Models is returned by ListModels.
	Models []string

	callCount int
	// LastPrompt and LastSystemPrompt record the most recent Generate inputs
	// for test assertions.
	LastPrompt       string
	LastSystemPrompt string
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates an available mock provider with a default model list.
// Returns the concrete type to allow behavior injection and assertions.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Available: true,
		Models:    []string{"mock-small", "mock-large"},
	}
}

// Name returns the registry key of this provider.
func (m *MockProvider) Name() string {
	return "mock"
}

// IsAvailable reports the configured availability.
func (m *MockProvider) IsAvailable() bool {
	return m.Available
}

// ListModels returns the configured model list.
func (m *MockProvider) ListModels() []string {
	return m.Models
}

// Generate records its inputs and returns the scripted response.
func (m *MockProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	m.callCount++
	m.LastPrompt = prompt
	m.LastSystemPrompt = systemPrompt

	if !m.Available {
		return "", fmt.Errorf("mock: %w", ai.ErrUnavailable)
	}

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, systemPrompt)
	}

	if m.Response != "" {
		return m.Response, nil
	}

	return "mock response", nil
}

// CallCount returns the number of times Generate was called.
func (m *MockProvider) CallCount() int {
	return m.callCount
}

// Reset clears recorded state and injected behavior.
func (m *MockProvider) Reset() {
	m.callCount = 0
	m.LastPrompt = ""
	m.LastSystemPrompt = ""
	m.GenerateFunc = nil
	m.Response = ""
}
