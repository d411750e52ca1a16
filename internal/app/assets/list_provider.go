package assets

import (
	"context"

	zlog "github.com/rs/zerolog/log"
)

type ListProviderConfig struct {
	Refs []string `mapstructure:"refs" validate:"required,min=1,dive,required"`
}

// ListProvider returns an explicit list of references.
type ListProvider struct {
	config *ListProviderConfig
}

// NewListProvider creates a new ListProvider.
func NewListProvider(settings map[string]any) (*ListProvider, error) {
	var config ListProviderConfig
	if err := decodeSettings(settings, &config); err != nil {
		zlog.Error().Msgf("list provider validation failed: %v", err)
		return nil, err
	}
	return &ListProvider{config: &config}, nil
}

// List returns a copy of the configured references.
func (p *ListProvider) List(ctx context.Context) ([]string, error) {
	refs := make([]string, len(p.config.Refs))
	copy(refs, p.config.Refs)
	return refs, nil
}

// Name returns the provider name.
func (p *ListProvider) Name() string {
	return "list"
}
