package assets

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/infra/config"
)

// NewProviderChainFromConfig creates a provider chain from a playlist configuration.
func NewProviderChainFromConfig(root string, pl config.PlaylistConfig) (*ProviderChain, error) {
	if len(pl.Providers) == 0 {
		return nil, errors.New("no asset providers configured")
	}

	var providers []ProviderWithMetadata
	for i, pcfg := range pl.Providers {
		var provider Provider
		var err error
		zlog.Debug().Msgf("assets: creating provider: index=%d type=%s settings=%+v", i+1, pcfg.Type, pcfg.Settings)
		switch pcfg.Type {
		case "sequence":
			provider, err = NewSequenceProvider(pcfg.Settings)
		case "directory":
			provider, err = NewDirectoryProvider(root, pcfg.Settings)
		case "list":
			provider, err = NewListProvider(pcfg.Settings)
		default:
			return nil, errors.Newf("unsupported provider type: %s (provider index %d)", pcfg.Type, i)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create provider (index %d, type %s)", i, pcfg.Type)
		}

		name := pcfg.DisplayName
		if name == "" {
			name = pcfg.Type
		}
		providers = append(providers, ProviderWithMetadata{
			Provider:    provider,
			DisplayName: name,
		})
	}

	return NewProviderChain(providers), nil
}
