package assets

import (
	"path/filepath"
	"strings"

	"github.com/osa030/showreel/internal/domain/asset"
)

// DuplicateFilter rejects an asset already accepted into the same playlist.
// References are compared after cleaning the path and folding case, so
// "./Photo1.JPEG" and "photo1.jpeg" are the same asset.
type DuplicateFilter struct {
	seen map[string]bool
}

// NewDuplicateFilter creates a new duplicate filter.
func NewDuplicateFilter() *DuplicateFilter {
	return &DuplicateFilter{seen: make(map[string]bool)}
}

func init() {
	Register("duplicate_filter", func() Filter {
		return NewDuplicateFilter()
	})
}

// Name returns the filter name.
func (f *DuplicateFilter) Name() string {
	return "duplicate_filter"
}

// Description returns the filter description.
func (f *DuplicateFilter) Description() string {
	return "Rejects a file already listed in the same playlist"
}

// ReturnCodes returns possible return codes.
func (f *DuplicateFilter) ReturnCodes() []string {
	return []string{"duplicate_asset"}
}

// ValidateConfig validates the filter configuration.
func (f *DuplicateFilter) ValidateConfig(settings map[string]any) error {
	// No configuration needed
	return nil
}

// Check checks if the asset was seen before and records it.
func (f *DuplicateFilter) Check(a asset.Asset) Result {
	key := normalizeRef(a.Location())
	if f.seen[key] {
		return Reject("duplicate_asset")
	}
	f.seen[key] = true
	return Accept()
}

// Reset forgets every recorded asset.
func (f *DuplicateFilter) Reset() {
	f.seen = make(map[string]bool)
}

func normalizeRef(ref string) string {
	return strings.ToLower(filepath.ToSlash(filepath.Clean(ref)))
}
