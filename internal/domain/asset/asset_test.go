package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		ref      string
		wantPath string
		wantLoc  string
	}{
		{
			name:     "relative ref under root",
			root:     "/srv/show",
			ref:      "photo1.jpeg",
			wantPath: "/srv/show/photo1.jpeg",
			wantLoc:  "/srv/show/photo1.jpeg",
		},
		{
			name:     "no root keeps ref",
			root:     "",
			ref:      "photo1.jpeg",
			wantPath: "",
			wantLoc:  "photo1.jpeg",
		},
		{
			name:     "absolute ref ignores root",
			root:     "/srv/show",
			ref:      "/media/final.mp4",
			wantPath: "/media/final.mp4",
			wantLoc:  "/media/final.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(KindPhoto, tt.root, tt.ref)
			assert.Equal(t, tt.ref, a.Ref)
			assert.Equal(t, tt.wantPath, a.Path)
			assert.Equal(t, tt.wantLoc, a.Location())
		})
	}
}

func TestAsset_Ext(t *testing.T) {
	assert.Equal(t, ".jpeg", Asset{Ref: "IMG_01.JPEG"}.Ext())
	assert.Equal(t, "", Asset{Ref: "noext"}.Ext())
}

func TestRefs(t *testing.T) {
	assets := []Asset{{Ref: "a"}, {Ref: "b"}}
	assert.Equal(t, []string{"a", "b"}, Refs(assets))
	assert.Equal(t, []string{}, Refs(nil))
}
