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
	"github.com/walteh/xmpsync/pkg/status"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes an operation over a batch of assets
type Runner struct {
	workers  int
	reporter status.ProgressReporter
}

// 🏗️ NewRunner creates a runner. workers below 2 runs assets one at a time.
func NewRunner(workers int, reporter status.ProgressReporter) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		workers:  workers,
		reporter: reporter,
	}
}

// Run processes every asset and always runs to the end of the list. Assets
// not yet started when ctx is cancelled fail with the context error.
func (r *Runner) Run(ctx context.Context, op Operation, assets []asset.MediaAsset) Report {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("assets", len(assets)).Int("workers", r.workers).Msg("running operation")

	r.reporter.StartOperation(ctx, len(assets))
	defer r.reporter.FinishOperation(ctx)

	report := Report{Labels: op.Labels(), Results: make([]Result, len(assets))}
	if r.workers == 1 {
		for i, a := range assets {
			report.Results[i] = r.process(ctx, op, a)
		}
		return report
	}
	return r.runAsync(ctx, op, assets, report)
}

// ⚡ runAsync spreads assets over a bounded pool; the reporter is the only
// state the workers share
func (r *Runner) runAsync(ctx context.Context, op Operation, assets []asset.MediaAsset, report Report) Report {
	var g errgroup.Group
	g.SetLimit(r.workers)

	for i, a := range assets {
		i, a := i, a
		g.Go(func() error {
			report.Results[i] = r.process(ctx, op, a)
			return nil
		})
	}
	_ = g.Wait()

	return report
}

func (r *Runner) process(ctx context.Context, op Operation, a asset.MediaAsset) Result {
	defer r.reporter.UpdateProgress(ctx)

	if err := ctx.Err(); err != nil {
		return Result{Asset: a, Err: err}
	}
	res := op.Process(ctx, a)
	zerolog.Ctx(ctx).Debug().
		Str("asset", a.Primary).
		Strs("removed", res.Removed).
		AnErr("error", res.Err).
		Msg("asset processed")
	return res
}
