package assets

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// Candidate is a reference with the provider it came from.
type Candidate struct {
	Ref         string
	DisplayName string
}

// ProviderWithMetadata wraps a provider with its metadata.
type ProviderWithMetadata struct {
	Provider    Provider
	DisplayName string
}

// ProviderChain concatenates the references of several providers in order.
type ProviderChain struct {
	providers []ProviderWithMetadata
}

// NewProviderChain creates a new provider chain.
func NewProviderChain(providers []ProviderWithMetadata) *ProviderChain {
	return &ProviderChain{
		providers: providers,
	}
}

// List asks every provider in turn. A failing provider is skipped; a reference
// returned by an earlier provider is not repeated.
func (c *ProviderChain) List(ctx context.Context) ([]Candidate, error) {
	var all []Candidate
	seen := make(map[string]bool)
	var errs error

	for i, pm := range c.providers {
		zlog.Debug().Msgf("assets: listing provider: index=%d total=%d name=%s provider_type=%s",
			i+1, len(c.providers), pm.DisplayName, pm.Provider.Name())

		refs, err := pm.Provider.List(ctx)
		if err != nil {
			zlog.Warn().Msgf("assets: provider failed, trying next: provider=%s error=%v", pm.DisplayName, err)
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "provider %s", pm.DisplayName))
			continue
		}

		added := 0
		for _, ref := range refs {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			all = append(all, Candidate{Ref: ref, DisplayName: pm.DisplayName})
			added++
		}
		zlog.Info().Msgf("assets: provider returned references: provider=%s count=%d total_so_far=%d",
			pm.DisplayName, added, len(all))
	}

	if len(all) == 0 && errs != nil {
		return nil, errors.Wrap(errs, "all providers failed")
	}
	return all, nil
}

// Len returns the number of providers.
func (c *ProviderChain) Len() int {
	return len(c.providers)
}
