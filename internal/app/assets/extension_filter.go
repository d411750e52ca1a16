package assets

import (
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"

	"github.com/osa030/showreel/internal/domain/asset"
)

// Default accepted extensions per asset kind.
var (
	DefaultPhotoExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
	DefaultVideoExtensions = []string{".mp4", ".webm", ".mov", ".mkv", ".m4v"}
)

type extensionFilterConfig struct {
	Photo []string `mapstructure:"photo"`
	Video []string `mapstructure:"video"`
}

// ExtensionFilter rejects assets whose extension does not match their kind.
type ExtensionFilter struct {
	photo []string
	video []string
}

// NewExtensionFilter creates an extension filter with the default extensions.
func NewExtensionFilter() *ExtensionFilter {
	return &ExtensionFilter{
		photo: DefaultPhotoExtensions,
		video: DefaultVideoExtensions,
	}
}

func init() {
	Register("extension_filter", func() Filter {
		return NewExtensionFilter()
	})
}

// Name returns the filter name.
func (f *ExtensionFilter) Name() string {
	return "extension_filter"
}

// Description returns the filter description.
func (f *ExtensionFilter) Description() string {
	return "Rejects files whose extension does not match the playlist kind"
}

// ReturnCodes returns possible return codes.
func (f *ExtensionFilter) ReturnCodes() []string {
	return []string{"unsupported_extension"}
}

// ValidateConfig applies the optional photo and video extension lists.
func (f *ExtensionFilter) ValidateConfig(settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}
	var cfg extensionFilterConfig
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return errors.Wrap(err, "failed to decode extension filter settings")
	}
	if len(cfg.Photo) > 0 {
		f.photo = normalizeExts(cfg.Photo)
	}
	if len(cfg.Video) > 0 {
		f.video = normalizeExts(cfg.Video)
	}
	return nil
}

// Check checks the extension against the asset kind.
func (f *ExtensionFilter) Check(a asset.Asset) Result {
	exts := f.video
	if a.Kind == asset.KindPhoto {
		exts = f.photo
	}
	if !containsExt(exts, a.Ext()) {
		return Reject("unsupported_extension")
	}
	return Accept()
}

func normalizeExts(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = normalizeExt(e)
	}
	return out
}
