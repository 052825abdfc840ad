// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asset

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📏 Rules controls which files the matcher pairs up
type Rules struct {
	ImageExt         string   // Primary image extension, case-sensitive
	RawExt           string   // Secondary RAW extension
	SidecarExt       string   // Sidecar extension
	VideoExt         string   // Primary video extension, case-insensitive
	Ignore           []string // Doublestar patterns relative to the root
	VideoSidecarRoot string   // Optional mirrored tree holding video sidecars
}

// DefaultRules returns the camera defaults: JPG + raf + xmp, MOV.
func DefaultRules() Rules {
	return Rules{
		ImageExt:   "JPG",
		RawExt:     "raf",
		SidecarExt: "xmp",
		VideoExt:   "MOV",
	}
}

// 🔍 Matcher discovers media assets in a directory tree
type Matcher struct {
	rules Rules
}

// 🏭 NewMatcher creates a matcher, rejecting malformed ignore patterns
func NewMatcher(rules Rules) (*Matcher, error) {
	for _, pattern := range rules.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return &Matcher{rules: rules}, nil
}

// Match discovers assets of every requested kind, images first.
func (m *Matcher) Match(ctx context.Context, root string, kinds ...Kind) ([]MediaAsset, error) {
	var all []MediaAsset
	for _, kind := range kinds {
		var (
			found []MediaAsset
			err   error
		)
		switch kind {
		case KindImage:
			found, err = m.MatchImages(ctx, root)
		case KindVideo:
			found, err = m.MatchVideos(ctx, root)
		default:
			return nil, errors.Errorf("unknown asset kind %d", kind)
		}
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}
	return all, nil
}

// 📸 MatchImages pairs every image in root (not recursive) with its sidecar
func (m *Matcher) MatchImages(ctx context.Context, root string) ([]MediaAsset, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", root, err)
	}

	var assets []MediaAsset
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, ext, ok := SplitName(entry.Name())
		if !ok || ext != m.rules.ImageExt {
			continue
		}
		if m.ignored(entry.Name()) {
			logger.Debug().Str("file", entry.Name()).Msg("image ignored by pattern")
			continue
		}

		primary := filepath.Join(root, entry.Name())
		if !isFile(primary) {
			continue
		}

		sidecar := filepath.Join(root, name+"."+m.rules.SidecarExt)
		if !isFile(sidecar) {
			logger.Debug().Str("file", primary).Msg("no sidecar, skipping")
			continue
		}

		a := MediaAsset{Kind: KindImage, Primary: primary, Sidecar: sidecar}
		if m.rules.RawExt != "" {
			raw := filepath.Join(root, name+"."+m.rules.RawExt)
			if isFile(raw) {
				a.Secondary = raw
			}
		}
		assets = append(assets, a)
	}

	return assets, nil
}

// 🎬 MatchVideos walks root and pairs every video with its sidecar
func (m *Matcher) MatchVideos(ctx context.Context, root string) ([]MediaAsset, error) {
	logger := zerolog.Ctx(ctx)

	var assets []MediaAsset
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel != "." && m.ignored(filepath.ToSlash(rel)) {
			logger.Debug().Str("path", rel).Msg("path ignored by pattern")
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name, ext, ok := SplitName(d.Name())
		if !ok || !strings.EqualFold(ext, m.rules.VideoExt) || !isFile(path) {
			return nil
		}

		sidecar := m.videoSidecar(filepath.Dir(rel), filepath.Dir(path), name)
		if !isFile(sidecar) {
			logger.Debug().Str("file", path).Msg("no sidecar, skipping")
			return nil
		}

		assets = append(assets, MediaAsset{Kind: KindVideo, Primary: path, Sidecar: sidecar})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	return assets, nil
}

// videoSidecar returns the sidecar location for a video, honoring the
// mirrored sidecar root when one is configured.
func (m *Matcher) videoSidecar(relDir, dir, name string) string {
	file := name + "." + m.rules.SidecarExt
	if m.rules.VideoSidecarRoot != "" {
		return filepath.Join(m.rules.VideoSidecarRoot, relDir, file)
	}
	return filepath.Join(dir, file)
}

func (m *Matcher) ignored(rel string) bool {
	for _, pattern := range m.rules.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
