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

package status

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// 🏷️ Labels names what a batch does, e.g. "Syncing images" "images" "synced"
type Labels struct {
	Action string // Shown before the percentage
	Noun   string // Plural noun of the items processed
	Past   string // Past participle shown after the counter
}

// 📈 ProgressReporter receives progress of a batch
type ProgressReporter interface {
	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context)
	FinishOperation(ctx context.Context)
}

// 📊 Reporter prints a percentage line after every processed item
type Reporter struct {
	out       io.Writer
	labels    Labels
	overwrite bool // rewrite the same line with \r until the last item

	mu        sync.Mutex
	total     int
	processed int
}

var _ ProgressReporter = (*Reporter)(nil)

// 🏭 NewReporter creates a reporter writing to out
func NewReporter(out io.Writer, labels Labels, overwrite bool) *Reporter {
	return &Reporter{
		out:       out,
		labels:    labels,
		overwrite: overwrite,
	}
}

// StartOperation resets the counters for a batch of total items.
func (r *Reporter) StartOperation(ctx context.Context, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = total
	r.processed = 0
	zerolog.Ctx(ctx).Debug().Int("total", total).Str("operation", r.labels.Action).Msg("starting batch")
}

// UpdateProgress records one more processed item and prints the progress line.
func (r *Reporter) UpdateProgress(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.processed++
	line := FormatProgress(r.labels, r.processed, r.total)
	switch {
	case r.processed >= r.total:
		fmt.Fprintln(r.out, line+". Done!")
	case r.overwrite:
		fmt.Fprint(r.out, line+"\r")
	default:
		fmt.Fprintln(r.out, line)
	}
}

// FinishOperation logs the final counters.
func (r *Reporter) FinishOperation(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Int("processed", r.processed).
		Int("total", r.total).
		Str("operation", r.labels.Action).
		Msg("batch finished")
}

// Processed returns the number of items reported so far.
func (r *Reporter) Processed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.processed
}
