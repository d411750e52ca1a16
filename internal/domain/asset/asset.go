// Package asset provides the media asset entity.
package asset

import (
	"path/filepath"
	"strings"
)

// Kind represents the playlist an asset belongs to.
type Kind string

const (
	KindPhoto      Kind = "PHOTO"
	KindVideo      Kind = "VIDEO"
	KindFinalVideo Kind = "FINAL_VIDEO"
	KindMusic      Kind = "MUSIC"
)

// Asset is an opaque reference to one photo or video.
type Asset struct {
	Ref  string // Reference handed to the media element (file name or URL path)
	Kind Kind   // Playlist kind
	Path string // Resolved local path, empty when the reference is used as is
}

// New creates an asset for ref rooted at root. An empty root leaves Path empty.
func New(kind Kind, root, ref string) Asset {
	a := Asset{Ref: ref, Kind: kind}
	if root != "" && !filepath.IsAbs(ref) {
		a.Path = filepath.Join(root, ref)
	} else if filepath.IsAbs(ref) {
		a.Path = ref
	}
	return a
}

// Location returns Path when set, otherwise Ref.
func (a Asset) Location() string {
	if a.Path != "" {
		return a.Path
	}
	return a.Ref
}

// Ext returns the lower-cased file extension of the reference.
func (a Asset) Ext() string {
	return strings.ToLower(filepath.Ext(a.Ref))
}

// Refs returns the references of assets in order.
func Refs(assets []Asset) []string {
	refs := make([]string, len(assets))
	for i, a := range assets {
		refs[i] = a.Ref
	}
	return refs
}
