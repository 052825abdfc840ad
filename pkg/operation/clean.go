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
)

// 🧹 NewCleanOriginalsOperation creates an operation that removes the
// "_original" backups exiftool left next to each media file
func NewCleanOriginalsOperation() Operation {
	return &cleanOriginalsOperation{}
}

type cleanOriginalsOperation struct{}

func (op *cleanOriginalsOperation) Labels() status.Labels {
	return status.Labels{Action: "Cleaning original files", Noun: "assets", Past: "cleaned"}
}

func (op *cleanOriginalsOperation) Process(ctx context.Context, a asset.MediaAsset) Result {
	res := Result{Asset: a}
	for _, file := range a.Files() {
		backup := exiftool.BackupPath(file)
		size, removed, err := removeIfExists(backup)
		if err != nil {
			res.Err = err
			zerolog.Ctx(ctx).Warn().Err(err).Str("file", backup).Msg("cleaning failed")
			return res
		}
		if removed {
			zerolog.Ctx(ctx).Debug().Str("file", backup).Int64("size", size).Msg("removed backup")
			res.Removed = append(res.Removed, backup)
			res.Bytes += size
		}
	}
	return res
}

// 🗑️ NewCleanSidecarsOperation creates an operation that removes each
// asset's sidecar and nothing else
func NewCleanSidecarsOperation() Operation {
	return &cleanSidecarsOperation{}
}

type cleanSidecarsOperation struct{}

func (op *cleanSidecarsOperation) Labels() status.Labels {
	return status.Labels{Action: "Cleaning metadata files", Noun: "assets", Past: "cleaned"}
}

func (op *cleanSidecarsOperation) Process(ctx context.Context, a asset.MediaAsset) Result {
	res := Result{Asset: a}
	size, removed, err := removeIfExists(a.Sidecar)
	if err != nil {
		res.Err = err
		zerolog.Ctx(ctx).Warn().Err(err).Str("file", a.Sidecar).Msg("cleaning failed")
		return res
	}
	if removed {
		res.Removed = append(res.Removed, a.Sidecar)
		res.Bytes = size
	}
	return res
}
