package assets

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/maruel/natural"
	zlog "github.com/rs/zerolog/log"
)

type DirectoryProviderConfig struct {
	Dir        string   `mapstructure:"dir" validate:"required"`
	Extensions []string `mapstructure:"extensions"`
}

// DirectoryProvider lists the files of a directory below the asset root in
// natural order, so photo2.jpeg sorts before photo10.jpeg.
type DirectoryProvider struct {
	root   string
	config *DirectoryProviderConfig
}

// NewDirectoryProvider creates a new DirectoryProvider.
func NewDirectoryProvider(root string, settings map[string]any) (*DirectoryProvider, error) {
	var config DirectoryProviderConfig
	if err := decodeSettings(settings, &config); err != nil {
		zlog.Error().Msgf("directory provider validation failed: %v", err)
		return nil, err
	}
	for i, ext := range config.Extensions {
		config.Extensions[i] = normalizeExt(ext)
	}
	return &DirectoryProvider{root: root, config: &config}, nil
}

// List scans the directory. References are relative to the asset root.
func (p *DirectoryProvider) List(ctx context.Context) ([]string, error) {
	dir := p.config.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.root, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if len(p.config.Extensions) > 0 && !containsExt(p.config.Extensions, filepath.Ext(e.Name())) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.SortStableFunc(names, compareNames)

	refs := make([]string, len(names))
	for i, name := range names {
		refs[i] = filepath.Join(p.config.Dir, name)
	}
	return refs, nil
}

// Name returns the provider name.
func (p *DirectoryProvider) Name() string {
	return "directory"
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func containsExt(exts []string, ext string) bool {
	ext = normalizeExt(ext)
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// compareNames orders names naturally ignoring case, so photo2 sorts before
// Photo10. Names equal apart from case fall back to byte order.
func compareNames(a, b string) int {
	if c := natural.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
