package operation

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/xmpsync/pkg/asset"
	"github.com/walteh/xmpsync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func manyAssets(root string, n int) []asset.MediaAsset {
	var assets []asset.MediaAsset
	for i := 0; i < n; i++ {
		assets = append(assets, imageAsset(root, fmt.Sprintf("img%02d", i), false))
	}
	return assets
}

func TestRunner(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			root := t.TempDir()
			assets := manyAssets(root, 10)
			failing := assets[3].Primary

			tool := &MockTool{}
			tool.On("ImportSidecar", mock.Anything, mock.Anything, failing).Return(errors.New("exit 1"))
			tool.On("ImportSidecar", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			tool.On("Retime", mock.Anything, mock.Anything).Return(nil)

			reporter := &countingReporter{}
			report := NewRunner(workers, reporter).Run(testContext(t), NewSyncOperation(tool, "images", false), assets)

			assert.Equal(t, 10, report.Total())
			assert.Equal(t, 9, report.Succeeded())
			require.Len(t, report.Failures(), 1)
			assert.Equal(t, failing, report.Failures()[0].Path)
			require.Error(t, report.Err())
			assert.Contains(t, report.Err().Error(), "1 of 10 images failed")

			for i, res := range report.Results {
				assert.Equal(t, assets[i], res.Asset, "results keep discovery order")
			}

			assert.Equal(t, 10, reporter.total)
			assert.Equal(t, 10, reporter.updates)
			assert.True(t, reporter.finished)
		})
	}
}

func TestRunner_Empty(t *testing.T) {
	reporter := &countingReporter{}
	report := NewRunner(1, reporter).Run(testContext(t), NewCleanSidecarsOperation(), nil)

	assert.Zero(t, report.Total())
	assert.NoError(t, report.Err())
	assert.Zero(t, reporter.updates)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	assets := manyAssets(t.TempDir(), 3)
	reporter := &countingReporter{}
	report := NewRunner(1, reporter).Run(ctx, NewSyncOperation(&MockTool{}, "images", false), assets)

	assert.Zero(t, report.Succeeded())
	for _, res := range report.Results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
	assert.Equal(t, 3, reporter.updates)
}

func TestRunner_ProgressOutput(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.JPG", "a.xmp", "b.JPG", "b.xmp")
	assets := []asset.MediaAsset{imageAsset(root, "a", false), imageAsset(root, "b", false)}

	op := NewCleanSidecarsOperation()
	var buf bytes.Buffer
	report := NewRunner(1, status.NewReporter(&buf, op.Labels(), true)).Run(testContext(t), op, assets)

	require.NoError(t, report.Err())
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, int64(len("data-a.xmp")+len("data-b.xmp")), report.BytesRemoved())
	assert.True(t, strings.HasSuffix(buf.String(), "(2/2) assets cleaned. Done!\n"))
	assert.NoFileExists(t, filepath.Join(root, "a.xmp"))
	assert.NoFileExists(t, filepath.Join(root, "b.xmp"))
}
