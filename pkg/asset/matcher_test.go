package asset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	}
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		entry    string
		wantName string
		wantExt  string
		wantOK   bool
	}{
		{"a.JPG", "a", "JPG", true},
		{"trip.day1.JPG", "trip.day1", "JPG", true},
		{"noext", "", "", false},
		{".xmp", "", "", false},
		{"trailing.", "trailing", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			name, ext, ok := SplitName(tt.entry)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestMatchImages(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []MediaAsset
	}{
		{
			name:  "jpeg_with_sidecar",
			files: []string{"a.JPG", "a.xmp"},
			want:  []MediaAsset{{Kind: KindImage, Primary: "a.JPG", Sidecar: "a.xmp"}},
		},
		{
			name:  "jpeg_with_sidecar_and_raw",
			files: []string{"a.JPG", "a.xmp", "a.raf"},
			want:  []MediaAsset{{Kind: KindImage, Primary: "a.JPG", Sidecar: "a.xmp", Secondary: "a.raf"}},
		},
		{
			name:  "missing_sidecar_is_skipped",
			files: []string{"a.JPG", "a.raf", "b.JPG", "b.xmp"},
			want:  []MediaAsset{{Kind: KindImage, Primary: "b.JPG", Sidecar: "b.xmp"}},
		},
		{
			name:  "lowercase_extension_is_not_matched",
			files: []string{"photo.jpg", "photo.xmp"},
			want:  nil,
		},
		{
			name:  "dotted_basename",
			files: []string{"trip.day1.JPG", "trip.day1.xmp"},
			want:  []MediaAsset{{Kind: KindImage, Primary: "trip.day1.JPG", Sidecar: "trip.day1.xmp"}},
		},
		{
			name:  "entries_without_extension_are_skipped",
			files: []string{"README", "a.xmp"},
			want:  nil,
		},
		{
			name:  "nested_images_are_not_matched",
			files: []string{"sub/a.JPG", "sub/a.xmp"},
			want:  nil,
		},
		{
			name:  "empty_directory",
			files: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			touch(t, root, tt.files...)

			m, err := NewMatcher(DefaultRules())
			require.NoError(t, err)

			got, err := m.MatchImages(testContext(t), root)
			require.NoError(t, err)

			var want []MediaAsset
			for _, a := range tt.want {
				a.Primary = filepath.Join(root, a.Primary)
				a.Sidecar = filepath.Join(root, a.Sidecar)
				if a.Secondary != "" {
					a.Secondary = filepath.Join(root, a.Secondary)
				}
				want = append(want, a)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestMatchImages_DirectoryNamedLikeImage(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "a.JPG"), 0755))
	touch(t, root, "a.xmp")

	m, err := NewMatcher(DefaultRules())
	require.NoError(t, err)

	got, err := m.MatchImages(testContext(t), root)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatchImages_MissingRoot(t *testing.T) {
	m, err := NewMatcher(DefaultRules())
	require.NoError(t, err)

	_, err = m.MatchImages(testContext(t), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading directory")
}

func TestMatchVideos(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"clip.mov", "clip.xmp",
		"CLIP2.MOV", "CLIP2.xmp",
		"orphan.MOV",
		"a/b/c/deep.MOV", "a/b/c/deep.xmp",
		"a/still.JPG", "a/still.xmp",
	)

	m, err := NewMatcher(DefaultRules())
	require.NoError(t, err)

	got, err := m.MatchVideos(testContext(t), root)
	require.NoError(t, err)

	var primaries []string
	for _, a := range got {
		assert.Equal(t, KindVideo, a.Kind)
		assert.Empty(t, a.Secondary)
		rel, err := filepath.Rel(root, a.Primary)
		require.NoError(t, err)
		primaries = append(primaries, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"clip.mov", "CLIP2.MOV", "a/b/c/deep.MOV"}, primaries)
}

func TestMatchVideos_SidecarRoot(t *testing.T) {
	root := t.TempDir()
	sidecars := t.TempDir()
	touch(t, root, "day1/clip.MOV", "other.MOV")
	touch(t, sidecars, "day1/clip.xmp")

	rules := DefaultRules()
	rules.VideoSidecarRoot = sidecars
	m, err := NewMatcher(rules)
	require.NoError(t, err)

	got, err := m.MatchVideos(testContext(t), root)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(root, "day1", "clip.MOV"), got[0].Primary)
	assert.Equal(t, filepath.Join(sidecars, "day1", "clip.xmp"), got[0].Sidecar)
}

func TestMatch_IgnorePatterns(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"a.JPG", "a.xmp",
		"skip.JPG", "skip.xmp",
		"exports/clip.MOV", "exports/clip.xmp",
		"keep/clip.MOV", "keep/clip.xmp",
	)

	rules := DefaultRules()
	rules.Ignore = []string{"skip.*", "exports"}
	m, err := NewMatcher(rules)
	require.NoError(t, err)

	got, err := m.Match(testContext(t), root, KindImage, KindVideo)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, filepath.Join(root, "a.JPG"), got[0].Primary)
	assert.Equal(t, filepath.Join(root, "keep", "clip.MOV"), got[1].Primary)
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	rules := DefaultRules()
	rules.Ignore = []string{"[unterminated"}
	_, err := NewMatcher(rules)
	require.Error(t, err)
}

func TestMediaAsset_Files(t *testing.T) {
	assert.Equal(t, []string{"a.JPG"}, MediaAsset{Primary: "a.JPG"}.Files())
	assert.Equal(t, []string{"a.JPG", "a.raf"}, MediaAsset{Primary: "a.JPG", Secondary: "a.raf"}.Files())
}
