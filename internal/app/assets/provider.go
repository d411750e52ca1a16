// Package assets resolves the photo and video playlists from configured providers.
package assets

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Provider lists asset references.
// Different implementations list references through various strategies
// (e.g., numbered file names, a directory scan, an explicit list).
type Provider interface {
	// List returns references in playback order, relative to the asset root.
	List(ctx context.Context) ([]string, error)

	// Name returns the provider name (used in config).
	Name() string
}

// decodeSettings decodes a provider settings map into cfg, applies defaults and validates it.
func decodeSettings(settings map[string]any, cfg any) error {
	if err := mapstructure.Decode(settings, cfg); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(cfg); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}
