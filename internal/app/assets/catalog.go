package assets

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/app/sequencer"
	"github.com/osa030/showreel/internal/domain/asset"
	"github.com/osa030/showreel/internal/infra/config"
)

// Catalog resolves the playlists of a show.
type Catalog struct {
	root    string
	photos  *ProviderChain
	videos  *ProviderChain
	final   string
	music   string
	filters *Chain
}

// NewCatalog creates a catalog. filters may be nil.
func NewCatalog(root string, photos, videos *ProviderChain, final, music string, filters *Chain) *Catalog {
	if filters == nil {
		filters = NewChain()
	}
	return &Catalog{
		root:    root,
		photos:  photos,
		videos:  videos,
		final:   final,
		music:   music,
		filters: filters,
	}
}

// NewCatalogFromConfig creates a catalog and its filter chain from configuration.
func NewCatalogFromConfig(cfg *config.Config) (*Catalog, error) {
	photos, err := NewProviderChainFromConfig(cfg.Assets.Root, cfg.Assets.Photos)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create photo providers")
	}
	videos, err := NewProviderChainFromConfig(cfg.Assets.Root, cfg.Assets.Videos)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create video providers")
	}

	chain := NewChain()
	registered := GetRegistered()
	for _, name := range RegisteredNames() {
		if !cfg.IsFilterEnabled(name) {
			continue
		}
		f := registered[name]()
		if err := f.ValidateConfig(cfg.FilterSettings(f.Name())); err != nil {
			return nil, errors.Wrapf(err, "invalid %s settings", f.Name())
		}
		chain.Add(f)
		zlog.Debug().Msgf("assets: filter enabled: name=%s", f.Name())
	}

	return NewCatalog(cfg.Assets.Root, photos, videos, cfg.Assets.FinalVideo, cfg.Assets.Music, chain), nil
}

// Build lists and filters every playlist. A rejected final video leaves
// Playlists.Final empty.
func (c *Catalog) Build(ctx context.Context) (sequencer.Playlists, error) {
	var pl sequencer.Playlists

	photos, err := c.collect(ctx, asset.KindPhoto, c.photos)
	if err != nil {
		return pl, errors.Wrap(err, "failed to list photos")
	}
	videos, err := c.collect(ctx, asset.KindVideo, c.videos)
	if err != nil {
		return pl, errors.Wrap(err, "failed to list videos")
	}
	pl.Photos = photos
	pl.Videos = videos

	if c.final != "" {
		c.filters.Reset()
		final := asset.New(asset.KindFinalVideo, c.root, c.final)
		if res := c.filters.Execute(final); res.Accepted {
			pl.Final = final
		} else {
			zlog.Warn().Msgf("assets: final video rejected: ref=%s code=%s", final.Ref, res.Code)
		}
	}

	zlog.Info().Msgf("assets: catalog built: photos=%d videos=%d final=%s", len(pl.Photos), len(pl.Videos), pl.Final.Ref)
	return pl, nil
}

// Music returns the background music asset.
func (c *Catalog) Music() asset.Asset {
	return asset.New(asset.KindMusic, c.root, c.music)
}

func (c *Catalog) collect(ctx context.Context, kind asset.Kind, chain *ProviderChain) ([]asset.Asset, error) {
	if chain == nil {
		return nil, nil
	}
	candidates, err := chain.List(ctx)
	if err != nil {
		return nil, err
	}

	c.filters.Reset()
	out := make([]asset.Asset, 0, len(candidates))
	for _, cand := range candidates {
		a := asset.New(kind, c.root, cand.Ref)
		res := c.filters.Execute(a)
		if !res.Accepted {
			zlog.Warn().Msgf("assets: asset rejected: kind=%s ref=%s provider=%s code=%s", kind, a.Ref, cand.DisplayName, res.Code)
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
