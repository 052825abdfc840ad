// Package operation provides the batch operations run over discovered assets
package operation

import (
	"context"
	"os"

	"github.com/walteh/xmpsync/pkg/asset"
	"github.com/walteh/xmpsync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation processes one asset of a batch
type Operation interface {
	// Labels names the operation in progress and summary lines
	Labels() status.Labels
	// Process handles a single asset. Failures are carried in the result.
	Process(ctx context.Context, a asset.MediaAsset) Result
}

// 📄 Result is the outcome of one asset
type Result struct {
	Asset   asset.MediaAsset
	Err     error    // nil on success
	Removed []string // Files deleted while processing
	Bytes   int64    // Size of the deleted files
}

// 📋 Report is the outcome of a whole batch
type Report struct {
	Labels  status.Labels
	Results []Result
}

// Total returns the number of assets in the batch.
func (r Report) Total() int {
	return len(r.Results)
}

// Succeeded returns the number of assets processed without error.
func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failures lists every failed asset by primary path.
func (r Report) Failures() []status.Failure {
	var failures []status.Failure
	for _, res := range r.Results {
		if res.Err != nil {
			failures = append(failures, status.Failure{Path: res.Asset.Primary, Err: res.Err})
		}
	}
	return failures
}

// BytesRemoved sums the size of every file the batch deleted.
func (r Report) BytesRemoved() int64 {
	var n int64
	for _, res := range r.Results {
		n += res.Bytes
	}
	return n
}

// Err returns an error when any asset failed.
func (r Report) Err() error {
	failed := r.Total() - r.Succeeded()
	if failed == 0 {
		return nil
	}
	return errors.Errorf("%d of %d %s failed", failed, r.Total(), r.Labels.Noun)
}

// removeIfExists deletes path when it exists and returns the size it had.
// A missing file is not an error.
func removeIfExists(path string) (int64, bool, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, false, errors.Errorf("refusing to remove directory %s", path)
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, errors.Errorf("removing %s: %w", path, err)
	}
	return info.Size(), true, nil
}
