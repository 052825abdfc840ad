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
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/xmpsync/pkg/asset"
	"github.com/walteh/xmpsync/pkg/exiftool"
)

// 🔧 MockTool is a mock implementation of the exiftool.Tool interface
type MockTool struct {
	mock.Mock
}

var _ exiftool.Tool = (*MockTool)(nil)

func (m *MockTool) ImportSidecar(ctx context.Context, sidecar, target string) error {
	return m.Called(ctx, sidecar, target).Error(0)
}

func (m *MockTool) Retime(ctx context.Context, target string) error {
	return m.Called(ctx, target).Error(0)
}

// 📊 countingReporter records progress calls
type countingReporter struct {
	mu       sync.Mutex
	total    int
	updates  int
	finished bool
}

func (r *countingReporter) StartOperation(ctx context.Context, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = total
}

func (r *countingReporter) UpdateProgress(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
}

func (r *countingReporter) FinishOperation(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = true
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("data-"+name), 0644))
	}
}

func imageAsset(root, name string, raw bool) asset.MediaAsset {
	a := asset.MediaAsset{
		Kind:    asset.KindImage,
		Primary: filepath.Join(root, name+".JPG"),
		Sidecar: filepath.Join(root, name+".xmp"),
	}
	if raw {
		a.Secondary = filepath.Join(root, name+".raf")
	}
	return a
}
