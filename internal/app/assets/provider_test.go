package assets

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/showreel/internal/infra/config"
)

func TestSequenceProvider(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		want     []string
		wantErr  bool
	}{
		{
			name:     "default start",
			settings: map[string]any{"pattern": "photo%d.jpeg", "count": 3},
			want:     []string{"photo1.jpeg", "photo2.jpeg", "photo3.jpeg"},
		},
		{
			name:     "custom start and padding",
			settings: map[string]any{"pattern": "clip_%02d.mp4", "start": 9, "count": 2},
			want:     []string{"clip_09.mp4", "clip_10.mp4"},
		},
		{
			name:     "pattern without a number",
			settings: map[string]any{"pattern": "photo.jpeg", "count": 3},
			wantErr:  true,
		},
		{
			name:     "missing count",
			settings: map[string]any{"pattern": "photo%d.jpeg"},
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewSequenceProvider(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			got, err := p.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "sequence", p.Name())
		})
	}
}

func TestListProvider(t *testing.T) {
	p, err := NewListProvider(map[string]any{"refs": []any{"b.mp4", "a.mp4"}})
	require.NoError(t, err)
	got, err := p.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b.mp4", "a.mp4"}, got)

	_, err = NewListProvider(map[string]any{"refs": []any{}})
	assert.Error(t, err)
	_, err = NewListProvider(map[string]any{"refs": []any{"a.mp4", ""}})
	assert.Error(t, err)
}

func TestDirectoryProvider(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "album")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"photo10.jpeg", "photo2.jpeg", "photo1.JPEG", ".hidden.jpeg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	p, err := NewDirectoryProvider(root, map[string]any{"dir": "album", "extensions": []any{"jpeg"}})
	require.NoError(t, err)
	got, err := p.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("album", "photo1.JPEG"),
		filepath.Join("album", "photo2.jpeg"),
		filepath.Join("album", "photo10.jpeg"),
	}, got)

	missing, err := NewDirectoryProvider(root, map[string]any{"dir": "nope"})
	require.NoError(t, err)
	_, err = missing.List(context.Background())
	assert.Error(t, err)
}

func TestCompareNames(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "numeric runs by value",
			input: []string{"video10.mp4", "video2.mp4", "video1.mp4"},
			want:  []string{"video1.mp4", "video2.mp4", "video10.mp4"},
		},
		{
			name:  "prefix differing only in case",
			input: []string{"Photo10.jpg", "photo2.jpg", "photo1.jpg"},
			want:  []string{"photo1.jpg", "photo2.jpg", "Photo10.jpg"},
		},
		{
			name:  "digit run longer than an int",
			input: []string{"a100000000000000000000.jpg", "a3.jpg", "a99999999999999999999.jpg"},
			want:  []string{"a3.jpg", "a99999999999999999999.jpg", "a100000000000000000000.jpg"},
		},
		{
			name:  "shorter name first",
			input: []string{"clip1", "clip"},
			want:  []string{"clip", "clip1"},
		},
		{
			name:  "case only tie keeps byte order",
			input: []string{"b.jpg", "a.jpg", "A.jpg"},
			want:  []string{"A.jpg", "a.jpg", "b.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Clone(tt.input)
			slices.SortStableFunc(got, compareNames)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Zero(t, compareNames("same", "same"))
}

type failingProvider struct{}

func (failingProvider) List(context.Context) ([]string, error) { return nil, errors.New("boom") }
func (failingProvider) Name() string                           { return "failing" }

func TestProviderChain(t *testing.T) {
	first, err := NewListProvider(map[string]any{"refs": []any{"a.jpg", "b.jpg"}})
	require.NoError(t, err)
	second, err := NewListProvider(map[string]any{"refs": []any{"b.jpg", "c.jpg"}})
	require.NoError(t, err)

	chain := NewProviderChain([]ProviderWithMetadata{
		{Provider: first, DisplayName: "first"},
		{Provider: failingProvider{}, DisplayName: "broken"},
		{Provider: second, DisplayName: "second"},
	})
	got, err := chain.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Candidate{
		{Ref: "a.jpg", DisplayName: "first"},
		{Ref: "b.jpg", DisplayName: "first"},
		{Ref: "c.jpg", DisplayName: "second"},
	}, got)

	broken := NewProviderChain([]ProviderWithMetadata{{Provider: failingProvider{}, DisplayName: "broken"}})
	_, err = broken.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all providers failed")
}

func TestNewProviderChainFromConfig(t *testing.T) {
	chain, err := NewProviderChainFromConfig("", config.PlaylistConfig{Providers: []config.ProviderConfig{
		{Type: "sequence", Settings: map[string]any{"pattern": "video%d.mp4", "count": 2}},
		{Type: "list", DisplayName: "extras", Settings: map[string]any{"refs": []any{"bonus.mp4"}}},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, chain.Len())

	got, err := chain.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "sequence", got[0].DisplayName)
	assert.Equal(t, "extras", got[2].DisplayName)

	_, err = NewProviderChainFromConfig("", config.PlaylistConfig{})
	assert.Error(t, err)

	_, err = NewProviderChainFromConfig("", config.PlaylistConfig{Providers: []config.ProviderConfig{
		{Type: "spotify", Settings: map[string]any{}},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider type")

	_, err = NewProviderChainFromConfig("", config.PlaylistConfig{Providers: []config.ProviderConfig{
		{Type: "list", Settings: map[string]any{}},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create provider")
}
