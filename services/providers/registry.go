package providers

import (
	"errors"
	"sort"
)

// ErrNoProvidersConfigured is returned when zero providers are credentialed
var ErrNoProvidersConfigured = errors.New("no AI providers configured: set at least one of OPENAI_API_KEY, HF_API_KEY, COHERE_API_KEY, GEMINI_API_KEY, DEEPSEEK_API_KEY")

// ErrProviderNotFound is returned when a named provider is not registered
var ErrProviderNotFound = errors.New("provider not found")

// Registry holds the ordered set of credentialed provider adapters,
// assembled once at startup. Read-only after construction.
type Registry struct {
	providers  []Provider
	identities []Identity
}

// NewRegistry assembles a registry from the given adapters, sorted by
// fixed priority rank. The identity list covers every supported provider,
// with the credentialed flag set for those present.
func NewRegistry(adapters ...Provider) *Registry {
	ordered := make([]Provider, len(adapters))
	copy(ordered, adapters)
	sort.SliceStable(ordered, func(i, j int) bool {
		return Priority(ordered[i].Name()) < Priority(ordered[j].Name())
	})

	credentialed := make(map[Name]bool, len(ordered))
	for _, p := range ordered {
		credentialed[p.Name()] = true
	}

	identities := make([]Identity, 0, len(priorityRanks))
	for _, name := range Supported() {
		identities = append(identities, Identity{
			Name:         name,
			Priority:     Priority(name),
			Credentialed: credentialed[name],
		})
	}

	return &Registry{providers: ordered, identities: identities}
}

// Providers returns the credentialed adapters in priority order.
// Callers must not modify the returned slice.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// Identities returns every supported provider's identity in priority
// order, credentialed or not.
func (r *Registry) Identities() []Identity {
	return r.identities
}

// Lookup returns the registered adapter with the given name
func (r *Registry) Lookup(name Name) (Provider, error) {
	for _, p := range r.providers {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, ErrProviderNotFound
}

// Count returns the number of credentialed providers
func (r *Registry) Count() int {
	return len(r.providers)
}
