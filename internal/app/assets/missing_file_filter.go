package assets

import (
	"os"

	"github.com/osa030/showreel/internal/domain/asset"
)

// MissingFileFilter rejects assets with a local path that does not exist.
// Assets without a local path pass.
type MissingFileFilter struct {
	stat func(name string) (os.FileInfo, error)
}

// NewMissingFileFilter creates a new missing file filter.
func NewMissingFileFilter() *MissingFileFilter {
	return &MissingFileFilter{stat: os.Stat}
}

func init() {
	Register("missing_file_filter", func() Filter {
		return NewMissingFileFilter()
	})
}

// Name returns the filter name.
func (f *MissingFileFilter) Name() string {
	return "missing_file_filter"
}

// Description returns the filter description.
func (f *MissingFileFilter) Description() string {
	return "Rejects files that do not exist under the asset root"
}

// ReturnCodes returns possible return codes.
func (f *MissingFileFilter) ReturnCodes() []string {
	return []string{"missing_file"}
}

// ValidateConfig validates the filter configuration.
func (f *MissingFileFilter) ValidateConfig(settings map[string]any) error {
	return nil
}

// Check checks that the asset's file exists.
func (f *MissingFileFilter) Check(a asset.Asset) Result {
	if a.Path == "" {
		return Accept()
	}
	info, err := f.stat(a.Path)
	if err != nil || info.IsDir() {
		return Reject("missing_file")
	}
	return Accept()
}
