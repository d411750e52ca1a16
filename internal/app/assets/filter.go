package assets

import (
	"sort"

	"github.com/osa030/showreel/internal/domain/asset"
)

// Result represents the result of a filter check.
type Result struct {
	Accepted bool
	Code     string // e.g., "unsupported_extension", "duplicate_asset"
}

// Accept returns an accepted result.
func Accept() Result {
	return Result{Accepted: true}
}

// Reject returns a rejected result with the given code.
func Reject(code string) Result {
	return Result{Accepted: false, Code: code}
}

// Filter decides whether an asset enters its playlist.
type Filter interface {
	// Name returns the filter name (used in config).
	Name() string
	// Description returns a human-readable description.
	Description() string
	// ReturnCodes returns the codes this filter can return.
	ReturnCodes() []string
	// ValidateConfig validates the filter configuration.
	ValidateConfig(settings map[string]any) error
	// Check performs the filter check.
	Check(a asset.Asset) Result
}

// registry holds registered filter factories.
var registry = make(map[string]func() Filter)

// Register registers a filter factory.
func Register(name string, factory func() Filter) {
	registry[name] = factory
}

// GetRegistered returns all registered filter factories.
func GetRegistered() map[string]func() Filter {
	return registry
}

// RegisteredNames returns the registered filter names in order.
func RegisteredNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resetter is implemented by filters that keep state across one playlist.
type Resetter interface {
	Reset()
}

// Chain executes filters in sequence.
type Chain struct {
	filters []Filter
}

// NewChain creates a new filter chain.
func NewChain() *Chain {
	return &Chain{
		filters: make([]Filter, 0),
	}
}

// Add adds a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters in sequence.
// Returns immediately if any filter rejects the asset.
func (c *Chain) Execute(a asset.Asset) Result {
	for _, f := range c.filters {
		result := f.Check(a)
		if !result.Accepted {
			return result
		}
	}
	return Accept()
}

// Reset clears the state of stateful filters.
func (c *Chain) Reset() {
	for _, f := range c.filters {
		if r, ok := f.(Resetter); ok {
			r.Reset()
		}
	}
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}
