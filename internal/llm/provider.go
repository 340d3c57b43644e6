// Package llm provides the provider abstraction over heterogeneous LLM
// backends: request construction, raw-response parsing, usage normalization,
// and the retry executor that translates backend failures into the shared
// error taxonomy.
package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/quorumci/quorum/internal/core"
)

// CompletionRequest is the uniform request shape sent to every backend.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// RawUsage is a provider's token accounting payload before normalization.
// Field names differ per backend family; NormalizeUsage collapses them.
type RawUsage map[string]any

// Completion is the uniform response shape. Adapters either return a complete
// Completion or a categorized error, never partial data.
type Completion struct {
	Text  string
	Usage RawUsage
}

// Provider is the capability implemented once per backend family. An adapter
// is responsible only for request construction and raw-response parsing;
// retry policy belongs to the caller.
type Provider interface {
	Name() string
	RunCompletion(ctx context.Context, req CompletionRequest) (Completion, error)
}

// Factory builds a Provider bound to a concrete model name.
type Factory func(model string) (Provider, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a provider family under its discriminator name. Adapters
// register themselves at init time; additional families plug in the same way.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New builds the Provider for a ModelSpec, or an error when the provider
// family is not registered.
func New(spec core.ModelSpec) (Provider, error) {
	registryMu.RLock()
	factory, ok := registry[spec.Provider]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (registered: %v)", spec.Provider, RegisteredProviders())
	}
	return factory(spec.Model)
}

// RegisteredProviders lists the known provider families in sorted order.
func RegisteredProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
