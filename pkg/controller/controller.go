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

package controller

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/xmpsync/pkg/asset"
	"github.com/walteh/xmpsync/pkg/exiftool"
	"github.com/walteh/xmpsync/pkg/lock"
	"github.com/walteh/xmpsync/pkg/log"
	"github.com/walteh/xmpsync/pkg/operation"
	"github.com/walteh/xmpsync/pkg/prompt"
	"github.com/walteh/xmpsync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains the collaborators of a controller
type Options struct {
	// Root is the directory operated on
	Root string
	// Matcher discovers assets under Root
	Matcher *asset.Matcher
	// NewTool resolves exiftool; only called for sync actions
	NewTool func() (exiftool.Tool, error)
	// Prompter asks the menu and confirmation questions
	Prompter *prompt.Prompter
	// Logger prints user-facing lines
	Logger *log.Logger
	// Workers is the number of assets processed in parallel
	Workers int
	// AssumeYes skips the confirmation question
	AssumeYes bool
	// RemoveOriginals answers the remove-originals question up front when set
	RemoveOriginals *bool
	// Overwrite rewrites the progress line in place
	Overwrite bool
	// LockDir holds the per-root lock file, the system temp dir when empty
	LockDir string
}

// 🎮 Controller drives one action from menu to summary
type Controller struct {
	opts Options
}

// 🏭 New creates a controller with the given options
func New(opts Options) (*Controller, error) {
	if opts.Root == "" {
		return nil, errors.Errorf("root is required")
	}
	if opts.Matcher == nil {
		return nil, errors.Errorf("matcher is required")
	}
	if opts.Prompter == nil {
		return nil, errors.Errorf("prompter is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.LockDir == "" {
		opts.LockDir = os.TempDir()
	}
	return &Controller{opts: opts}, nil
}

// Run shows the menu and executes the chosen action.
func (c *Controller) Run(ctx context.Context) error {
	action, err := c.SelectAction(ctx)
	if err != nil {
		return err
	}
	_, err = c.Execute(ctx, action)
	return err
}

// 📋 SelectAction asks for a menu entry until a valid one is given
func (c *Controller) SelectAction(ctx context.Context) (Action, error) {
	n, err := c.opts.Prompter.Choose(ctx, "Menu", titles())
	if err != nil {
		return 0, errors.Errorf("reading action: %w", err)
	}
	action := Actions[n-1]
	zerolog.Ctx(ctx).Debug().Int("action", int(action)).Str("title", action.Title()).Msg("action selected")
	return action, nil
}

// 🏃 Execute discovers the assets of action, confirms and runs the batch.
// A nil report means nothing ran: no assets matched or the user declined.
func (c *Controller) Execute(ctx context.Context, action Action) (*operation.Report, error) {
	if !action.Valid() {
		return nil, errors.Errorf("unknown action %d", action)
	}
	def := defs[action]
	logger := c.opts.Logger

	var tool exiftool.Tool
	if def.sync {
		if c.opts.NewTool == nil {
			return nil, errors.Errorf("exiftool is required to sync")
		}
		t, err := c.opts.NewTool()
		if err != nil {
			return nil, errors.Errorf("resolving exiftool: %w", err)
		}
		tool = t
	}

	logger.Stepf("Getting %s to %s at %s ...", def.noun, def.verb, c.opts.Root)
	assets, err := c.opts.Matcher.Match(ctx, c.opts.Root, def.kinds...)
	if err != nil {
		return nil, errors.Errorf("discovering %s: %w", def.noun, err)
	}
	logger.Stepf("Found %d %s to %s ...", len(assets), def.noun, def.verb)
	if len(assets) == 0 {
		return nil, nil
	}

	var op operation.Operation
	switch {
	case def.sync:
		removeOriginals, err := c.removeOriginals(ctx)
		if err != nil {
			return nil, err
		}
		op = operation.NewSyncOperation(tool, def.noun, removeOriginals)
	case action == ActionCleanOriginals:
		op = operation.NewCleanOriginalsOperation()
	default:
		op = operation.NewCleanSidecarsOperation()
	}

	if !c.opts.AssumeYes {
		ok, err := c.opts.Prompter.Confirm(ctx, "> "+fmt.Sprintf(def.confirm, len(assets)))
		if err != nil {
			return nil, errors.Errorf("reading confirmation: %w", err)
		}
		if !ok {
			logger.Warning(def.cancelled)
			return nil, nil
		}
	}

	l, err := lock.AcquireIn(ctx, c.opts.LockDir, c.opts.Root)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := l.Release(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("releasing lock")
		}
	}()

	report := operation.NewRunner(c.opts.Workers, status.NewReporter(logger.Console(), op.Labels(), c.opts.Overwrite)).
		Run(ctx, op, assets)
	c.summarize(report)

	return &report, report.Err()
}

func (c *Controller) removeOriginals(ctx context.Context) (bool, error) {
	if c.opts.RemoveOriginals != nil {
		return *c.opts.RemoveOriginals, nil
	}
	remove, err := c.opts.Prompter.Confirm(ctx, "> Remove originals after new file created?")
	if err != nil {
		return false, errors.Errorf("reading remove originals answer: %w", err)
	}
	return remove, nil
}

func (c *Controller) summarize(report operation.Report) {
	logger := c.opts.Logger
	line := status.FormatSummary(report.Labels, report.Succeeded(), report.Total(), report.BytesRemoved())
	failures := report.Failures()
	if len(failures) == 0 {
		logger.Success(line)
		return
	}
	logger.Error(line)
	status.RenderFailures(logger.Console(), failures)
}

// 🔍 List prints the assets of the given kinds without touching them.
func (c *Controller) List(ctx context.Context, kinds ...asset.Kind) ([]asset.MediaAsset, error) {
	assets, err := c.opts.Matcher.Match(ctx, c.opts.Root, kinds...)
	if err != nil {
		return nil, errors.Errorf("discovering assets: %w", err)
	}
	for _, a := range assets {
		c.opts.Logger.LogAsset(ctx, c.opts.Root, a)
	}
	c.opts.Logger.Stepf("Found %d assets at %s", len(assets), c.opts.Root)
	return assets, nil
}
