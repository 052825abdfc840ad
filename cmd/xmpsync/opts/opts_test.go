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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/xmpsync/pkg/asset"
	"github.com/walteh/xmpsync/pkg/log"
)

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

func TestPrepare_VideoSidecars(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name   string
		config string
		flag   string
		want   func(root string) string
	}{
		{
			name: "unset",
			want: func(root string) string { return "" },
		},
		{
			name:   "config_relative_to_root",
			config: "video_sidecars: sidecars/\n",
			want:   func(root string) string { return filepath.Join(root, "sidecars") },
		},
		{
			name:   "config_absolute",
			config: "video_sidecars: /srv/sidecars\n",
			want:   func(root string) string { return "/srv/sidecars" },
		},
		{
			name:   "flag_relative_to_working_directory",
			config: "video_sidecars: ignored\n",
			flag:   "meta",
			want:   func(root string) string { return filepath.Join(cwd, "meta") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.config != "" {
				require.NoError(t, os.WriteFile(filepath.Join(root, ".xmpsync.yaml"), []byte(tt.config), 0644))
			}
			o := &RootOpts{Root: root, VideoSidecars: tt.flag, Out: &bytes.Buffer{}}

			_, err := o.Prepare(testContext(t))

			require.NoError(t, err)
			assert.Equal(t, tt.want(root), o.Config.VideoSidecars)
		})
	}
}

func TestPrepare_ConfigSidecarsFindVideos(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "trip/clip.MOV", "meta/trip/clip.xmp")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".xmpsync.yaml"), []byte("video_sidecars: meta\n"), 0644))

	var out bytes.Buffer
	o := &RootOpts{Root: root, In: strings.NewReader(""), Out: &out}
	ctx, err := o.Prepare(testContext(t))
	require.NoError(t, err)

	ctrl, err := o.Controller(ctx, nil)
	require.NoError(t, err)

	assets, err := ctrl.List(ctx, asset.KindVideo)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, filepath.Join(root, "meta", "trip", "clip.xmp"), assets[0].Sidecar)
}

func TestPrepare_ContextCarriesConsoleLogger(t *testing.T) {
	var out bytes.Buffer
	o := &RootOpts{Root: t.TempDir(), Out: &out}

	ctx, err := o.Prepare(testContext(t))
	require.NoError(t, err)

	log.FromContext(ctx).Step("hello")
	assert.Equal(t, "> hello\n", out.String(), "console lines go to the configured output")
}

func TestController_RequiresPrepare(t *testing.T) {
	o := &RootOpts{Root: t.TempDir()}

	_, err := o.Controller(testContext(t), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "options not prepared")
}
