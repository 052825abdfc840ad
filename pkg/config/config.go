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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/xmpsync/pkg/asset"
	"github.com/walteh/xmpsync/pkg/exiftool"
	"github.com/walteh/xmpsync/pkg/prompt"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is looked up in the root directory when no config file is named.
const DefaultFile = ".xmpsync.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes the file overlay from bytes
	Parse(ctx context.Context, filename string, data []byte) (*File, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔧 Exiftool configures the external metadata tool
type Exiftool struct {
	Path       string   // Binary name or path
	RetimeTags []string // File timestamps derived from DateCreated
}

// 🏷️ Extensions names the file types the matcher pairs, without leading dot
type Extensions struct {
	Image   string // Case-sensitive
	Raw     string
	Sidecar string
	Video   string // Case-insensitive
}

// 📚 Config represents the complete configuration
type Config struct {
	Exiftool      Exiftool
	Extensions    Extensions
	Ignore        []string // Doublestar patterns relative to the root
	VideoSidecars string   // Optional mirrored tree holding video sidecars
	Workers       int      // Assets processed in parallel
	MaxAttempts   int      // Invalid answers tolerated per prompt
}

// 📄 File is the overlay a config file applies on top of Default. Unset
// fields keep their default.
type File struct {
	Workers       *int            `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`
	MaxAttempts   *int            `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" hcl:"max_attempts,optional"`
	VideoSidecars *string         `json:"video_sidecars,omitempty" yaml:"video_sidecars,omitempty" hcl:"video_sidecars,optional"`
	Ignore        []string        `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	Exiftool      *ExiftoolFile   `json:"exiftool,omitempty" yaml:"exiftool,omitempty" hcl:"exiftool,block"`
	Extensions    *ExtensionsFile `json:"extensions,omitempty" yaml:"extensions,omitempty" hcl:"extensions,block"`
}

// ExiftoolFile is the exiftool section of a config file.
type ExiftoolFile struct {
	Path       *string  `json:"path,omitempty" yaml:"path,omitempty" hcl:"path,optional"`
	RetimeTags []string `json:"retime_tags,omitempty" yaml:"retime_tags,omitempty" hcl:"retime_tags,optional"`
}

// ExtensionsFile is the extensions section of a config file.
type ExtensionsFile struct {
	Image   *string `json:"image,omitempty" yaml:"image,omitempty" hcl:"image,optional"`
	Raw     *string `json:"raw,omitempty" yaml:"raw,omitempty" hcl:"raw,optional"`
	Sidecar *string `json:"sidecar,omitempty" yaml:"sidecar,omitempty" hcl:"sidecar,optional"`
	Video   *string `json:"video,omitempty" yaml:"video,omitempty" hcl:"video,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	rules := asset.DefaultRules()
	return &Config{
		Exiftool: Exiftool{
			Path:       exiftool.DefaultBinary,
			RetimeTags: append([]string(nil), exiftool.DefaultRetimeTags...),
		},
		Extensions: Extensions{
			Image:   rules.ImageExt,
			Raw:     rules.RawExt,
			Sidecar: rules.SidecarExt,
			Video:   rules.VideoExt,
		},
		Workers:     1,
		MaxAttempts: prompt.DefaultMaxAttempts,
	}
}

// 🎯 Load reads path on top of Default. When required is false a missing file
// yields the defaults.
func Load(ctx context.Context, path string, required bool) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return cfg, nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}
	logger.Debug().Str("path", path).Msg("loading configuration")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	file, err := p.Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.Apply(file)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Apply copies every field set in f onto cfg.
func (cfg *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.Workers != nil {
		cfg.Workers = *f.Workers
	}
	if f.MaxAttempts != nil {
		cfg.MaxAttempts = *f.MaxAttempts
	}
	if f.VideoSidecars != nil {
		cfg.VideoSidecars = *f.VideoSidecars
	}
	if f.Ignore != nil {
		cfg.Ignore = f.Ignore
	}
	if e := f.Exiftool; e != nil {
		setString(&cfg.Exiftool.Path, e.Path)
		if e.RetimeTags != nil {
			cfg.Exiftool.RetimeTags = e.RetimeTags
		}
	}
	if x := f.Extensions; x != nil {
		setString(&cfg.Extensions.Image, x.Image)
		setString(&cfg.Extensions.Raw, x.Raw)
		setString(&cfg.Extensions.Sidecar, x.Sidecar)
		setString(&cfg.Extensions.Video, x.Video)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.MaxAttempts < 1 {
		return errors.Errorf("max_attempts must be at least 1, got %d", cfg.MaxAttempts)
	}
	if cfg.Exiftool.Path == "" {
		return errors.Errorf("exiftool.path is required")
	}

	// Clean up extensions
	for name, ext := range map[string]*string{
		"image":   &cfg.Extensions.Image,
		"sidecar": &cfg.Extensions.Sidecar,
		"video":   &cfg.Extensions.Video,
		"raw":     &cfg.Extensions.Raw,
	} {
		*ext = strings.TrimPrefix(strings.TrimSpace(*ext), ".")
		if *ext == "" && name != "raw" {
			return errors.Errorf("extensions.%s is required", name)
		}
		if strings.ContainsAny(*ext, `./\`) {
			return errors.Errorf("extensions.%s %q must not contain dots or separators", name, *ext)
		}
	}

	if cfg.VideoSidecars != "" {
		cfg.VideoSidecars = filepath.Clean(cfg.VideoSidecars)
	}

	return nil
}

// Rules returns the matcher rules this configuration describes.
func (cfg *Config) Rules() asset.Rules {
	return asset.Rules{
		ImageExt:         cfg.Extensions.Image,
		RawExt:           cfg.Extensions.Raw,
		SidecarExt:       cfg.Extensions.Sidecar,
		VideoExt:         cfg.Extensions.Video,
		Ignore:           cfg.Ignore,
		VideoSidecarRoot: cfg.VideoSidecars,
	}
}
