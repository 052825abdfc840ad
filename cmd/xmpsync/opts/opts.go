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

package opts

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/walteh/xmpsync/pkg/asset"
	"github.com/walteh/xmpsync/pkg/config"
	"github.com/walteh/xmpsync/pkg/controller"
	"github.com/walteh/xmpsync/pkg/exiftool"
	"github.com/walteh/xmpsync/pkg/log"
	"github.com/walteh/xmpsync/pkg/prompt"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	Root          string
	ConfigFile    string
	Debug         bool
	Workers       int
	Exiftool      string
	AssumeYes     bool
	VideoSidecars string

	// Streams
	In  io.Reader
	Out io.Writer

	// Set by Prepare
	Config *config.Config
}

// Prepare resolves the root, loads the config file and applies flag overrides.
// The default config file lives in the root and may be missing; a file named
// with --config must exist. The returned context carries the console logger.
func (o *RootOpts) Prepare(ctx context.Context) (context.Context, error) {
	if o.Root == "" {
		return nil, errors.Errorf("--path is required")
	}
	root, err := filepath.Abs(o.Root)
	if err != nil {
		return nil, errors.Errorf("resolving path %s: %w", o.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("reading path: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("path %s is not a directory", root)
	}
	o.Root = root

	path, required := filepath.Join(root, config.DefaultFile), false
	if o.ConfigFile != "" {
		path, required = o.ConfigFile, true
	}
	cfg, err := config.Load(ctx, path, required)
	if err != nil {
		return nil, err
	}

	if o.Workers != 0 {
		cfg.Workers = o.Workers
	}
	if o.Exiftool != "" {
		cfg.Exiftool.Path = o.Exiftool
	}
	if o.VideoSidecars != "" {
		sidecars, err := filepath.Abs(o.VideoSidecars)
		if err != nil {
			return nil, errors.Errorf("resolving video sidecars %s: %w", o.VideoSidecars, err)
		}
		cfg.VideoSidecars = sidecars
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}
	// a relative video_sidecars from the config file is relative to the root
	if cfg.VideoSidecars != "" && !filepath.IsAbs(cfg.VideoSidecars) {
		cfg.VideoSidecars = filepath.Join(root, cfg.VideoSidecars)
	}
	o.Config = cfg

	zerolog.Ctx(ctx).Debug().
		Str("root", o.Root).
		Int("workers", cfg.Workers).
		Str("exiftool", cfg.Exiftool.Path).
		Str("video_sidecars", cfg.VideoSidecars).
		Msg("options prepared")

	return log.NewContext(ctx, log.New(o.Out, *zerolog.Ctx(ctx))), nil
}

// Controller builds a controller from the prepared options and the console
// logger on ctx. A nil removeOriginals leaves the question to the prompt.
func (o *RootOpts) Controller(ctx context.Context, removeOriginals *bool) (*controller.Controller, error) {
	if o.Config == nil {
		return nil, errors.Errorf("options not prepared")
	}

	matcher, err := asset.NewMatcher(o.Config.Rules())
	if err != nil {
		return nil, errors.Errorf("creating matcher: %w", err)
	}

	cfg := o.Config
	return controller.New(controller.Options{
		Root:    o.Root,
		Matcher: matcher,
		NewTool: func() (exiftool.Tool, error) {
			client, err := exiftool.New(cfg.Exiftool.Path, cfg.Exiftool.RetimeTags)
			if err != nil {
				return nil, err
			}
			zerolog.Ctx(ctx).Debug().Str("binary", client.Binary()).Msg("resolved exiftool")
			return client, nil
		},
		Prompter:        prompt.New(o.In, o.Out, cfg.MaxAttempts),
		Logger:          log.FromContext(ctx),
		Workers:         cfg.Workers,
		AssumeYes:       o.AssumeYes,
		RemoveOriginals: removeOriginals,
		Overwrite:       IsTerminal(o.Out),
	})
}

// IsTerminal reports whether w is a terminal, so progress can rewrite its line.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
