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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/xmpsync/pkg/asset"
	"github.com/walteh/xmpsync/pkg/exiftool"
	"github.com/walteh/xmpsync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔄 NewSyncOperation creates an operation that applies each sidecar to its
// media files and retimes them. noun names the assets ("images", "videos").
func NewSyncOperation(tool exiftool.Tool, noun string, removeBackups bool) Operation {
	return &syncOperation{
		tool:          tool,
		noun:          noun,
		removeBackups: removeBackups,
	}
}

type syncOperation struct {
	tool          exiftool.Tool
	noun          string
	removeBackups bool
}

func (op *syncOperation) Labels() status.Labels {
	return status.Labels{Action: "Syncing " + op.noun, Noun: op.noun, Past: "synced"}
}

// 🏃 Process imports the sidecar into every file of the asset, primary first
func (op *syncOperation) Process(ctx context.Context, a asset.MediaAsset) Result {
	res := Result{Asset: a}
	for _, file := range a.Files() {
		if err := op.syncFile(ctx, a.Sidecar, file, &res); err != nil {
			res.Err = err
			zerolog.Ctx(ctx).Warn().Err(err).Str("file", file).Msg("sync failed")
			return res
		}
	}
	return res
}

func (op *syncOperation) syncFile(ctx context.Context, sidecar, file string, res *Result) error {
	if err := op.tool.ImportSidecar(ctx, sidecar, file); err != nil {
		return errors.Errorf("importing %s: %w", sidecar, err)
	}

	if err := op.tool.Retime(ctx, file); err != nil {
		return errors.Errorf("retiming %s: %w", file, err)
	}

	if !op.removeBackups {
		return nil
	}

	backup := exiftool.BackupPath(file)
	size, removed, err := removeIfExists(backup)
	if err != nil {
		return err
	}
	if removed {
		res.Removed = append(res.Removed, backup)
		res.Bytes += size
	}
	return nil
}
