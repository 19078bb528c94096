package ai

import (
	"log/slog"
	"sort"
	"sync"
)

// ProviderFactory constructs a Provider for the given model.
// An empty model selects the provider's configured default.
type ProviderFactory func(config *Config, model string) (Provider, error)

// Registry selects text-generation providers by string key.
//
// It replaces ad-hoc global provider instances with an explicit object that is
// constructed once at process start and passed by reference to the components
// that need it. Provider instances are cached so expensive client setup
// happens once per (provider, model) pair.
type Registry struct {
	config    *Config
	factories map[string]ProviderFactory
	logger    *slog.Logger

	mu    sync.Mutex
	cache map[string]Provider
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry) error

// WithProviderFactory registers a provider factory under the given key.
// Registering the same key twice replaces the earlier factory.
func WithProviderFactory(name string, factory ProviderFactory) RegistryOption {
	return func(r *Registry) error {
		if name == "" || factory == nil {
			return ErrFactoryRequired
		}
		r.factories[name] = factory
		return nil
	}
}

// WithRegistryLogger sets a custom logger.
// Default is slog.Default().
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRegistry creates a provider registry from the given configuration.
// The set of providers is closed at construction time; unknown keys passed to
// Provider later fail with *UnknownProviderError.
func NewRegistry(config *Config, opts ...RegistryOption) (*Registry, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		config:    config,
		factories: make(map[string]ProviderFactory),
		cache:     make(map[string]Provider),
		logger:    slog.Default().With("component", "ai-registry"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Provider returns the provider registered under name, configured for the
// given model. An empty model selects the provider's default model.
// Returns *UnknownProviderError for unrecognized names.
func (r *Registry) Provider(name, model string) (Provider, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, &UnknownProviderError{Name: name, Known: r.Names()}
	}

	key := name + "/" + model

	r.mu.Lock()
	defer r.mu.Unlock()

	if provider, ok := r.cache[key]; ok {
		return provider, nil
	}

	provider, err := factory(r.config, model)
	if err != nil {
		r.logger.Error("failed to construct provider", "provider", name, "model", model, "err", err)
		return nil, err
	}

	r.cache[key] = provider
	return provider, nil
}

// Names returns the registered provider keys in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Available reports, for each registered provider, whether its backend
// credential is configured.
func (r *Registry) Available() map[string]bool {
	availability := make(map[string]bool, len(r.factories))
	for _, name := range r.Names() {
		provider, err := r.Provider(name, "")
		if err != nil {
			availability[name] = false
			continue
		}
		availability[name] = provider.IsAvailable()
	}
	return availability
}

// AllModels returns the recommended model names for each registered provider.
func (r *Registry) AllModels() map[string][]string {
	models := make(map[string][]string, len(r.factories))
	for _, name := range r.Names() {
		provider, err := r.Provider(name, "")
		if err != nil {
			continue
		}
		models[name] = provider.ListModels()
	}
	return models
}
