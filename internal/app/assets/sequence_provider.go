package assets

import (
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"
)

type SequenceProviderConfig struct {
	Pattern string `mapstructure:"pattern" validate:"required,contains=%"`
	Start   int    `mapstructure:"start" default:"1" validate:"gte=0"`
	Count   int    `mapstructure:"count" validate:"gte=1,lte=10000"`
}

// SequenceProvider lists numbered file names such as photo1.jpeg ... photo20.jpeg.
type SequenceProvider struct {
	config *SequenceProviderConfig
}

// NewSequenceProvider creates a new SequenceProvider.
func NewSequenceProvider(settings map[string]any) (*SequenceProvider, error) {
	var config SequenceProviderConfig
	if err := decodeSettings(settings, &config); err != nil {
		zlog.Error().Msgf("sequence provider validation failed: %v", err)
		return nil, err
	}
	zlog.Debug().Msgf("sequence provider config: %+v", config)
	return &SequenceProvider{config: &config}, nil
}

// List returns Count references starting at Start.
func (p *SequenceProvider) List(ctx context.Context) ([]string, error) {
	refs := make([]string, 0, p.config.Count)
	for i := 0; i < p.config.Count; i++ {
		refs = append(refs, fmt.Sprintf(p.config.Pattern, p.config.Start+i))
	}
	return refs, nil
}

// Name returns the provider name.
func (p *SequenceProvider) Name() string {
	return "sequence"
}
