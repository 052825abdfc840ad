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

package exiftool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultBinary is looked up on PATH when no explicit path is configured.
	DefaultBinary = "exiftool"
	// BackupSuffix is appended by exiftool to the copy it keeps of every file it rewrites.
	BackupSuffix = "_original"
)

// ErrNotFound is returned when the exiftool binary cannot be located.
var ErrNotFound = errors.Base("exiftool not found")

// DefaultRetimeTags are the file timestamps derived from DateCreated.
var DefaultRetimeTags = []string{"FileCreateDate", "FileModifyDate"}

// 🛠️ Tool is the subset of exiftool behavior the executors rely on
type Tool interface {
	// ImportSidecar writes every XMP tag of sidecar into target
	ImportSidecar(ctx context.Context, sidecar, target string) error
	// Retime sets the file timestamps of target from its DateCreated tag
	Retime(ctx context.Context, target string) error
}

// ❌ ExitError describes an exiftool invocation that did not succeed
type ExitError struct {
	Args   []string // Arguments passed after the binary
	Code   int      // Exit code, -1 when the process never ran
	Stderr string   // Trimmed standard error
	Err    error    // Underlying exec error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("exiftool %s: exit %d", strings.Join(e.Args, " "), e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// BackupPath returns the backup exiftool leaves next to file.
func BackupPath(file string) string {
	return file + BackupSuffix
}

// ImportArgs returns the arguments that copy every XMP tag from sidecar into target.
func ImportArgs(sidecar, target string) []string {
	return []string{"-q", "-xmp<=" + sidecar, target}
}

// RetimeArgs returns the arguments that derive the given file timestamps of
// target from its DateCreated tag.
func RetimeArgs(target string, tags []string) []string {
	args := []string{"-q"}
	for _, tag := range tags {
		args = append(args, "-"+tag+"<DateCreated")
	}
	return append(args, target)
}

// 🔧 Client runs the exiftool binary
type Client struct {
	binary     string
	retimeTags []string
}

// 🏭 New resolves binary (a name on PATH or a path) and returns a client for it
func New(binary string, retimeTags []string) (*Client, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	resolved, err := exec.LookPath(binary)
	if err != nil {
		return nil, errors.WithDetails(ErrNotFound, "binary", binary, "cause", err.Error())
	}
	if len(retimeTags) == 0 {
		retimeTags = DefaultRetimeTags
	}
	return &Client{binary: resolved, retimeTags: retimeTags}, nil
}

// Binary returns the resolved path of the exiftool executable.
func (c *Client) Binary() string {
	return c.binary
}

// ImportSidecar implements Tool.
func (c *Client) ImportSidecar(ctx context.Context, sidecar, target string) error {
	return c.run(ctx, ImportArgs(sidecar, target))
}

// Retime implements Tool.
func (c *Client) Retime(ctx context.Context, target string) error {
	return c.run(ctx, RetimeArgs(target, c.retimeTags))
}

func (c *Client) run(ctx context.Context, args []string) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("binary", c.binary).Strs("args", args).Msg("running exiftool")

	cmd := exec.CommandContext(ctx, c.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitErr := &ExitError{
			Args:   args,
			Code:   -1,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exitErr.Code = ee.ExitCode()
		}
		logger.Debug().Err(err).Int("code", exitErr.Code).Str("stderr", exitErr.Stderr).Msg("exiftool failed")
		return errors.WithStack(exitErr)
	}

	return nil
}
