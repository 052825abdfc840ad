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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/xmpsync/cmd/xmpsync/opts"
	"github.com/walteh/xmpsync/pkg/asset"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates the list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list [images|videos]",
		Short:     "Print discovered assets without touching them",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"images", "videos"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []asset.Kind{asset.KindImage, asset.KindVideo}
			if len(args) == 1 {
				switch args[0] {
				case "images":
					kinds = []asset.Kind{asset.KindImage}
				case "videos":
					kinds = []asset.Kind{asset.KindVideo}
				}
			}

			ctrl, err := opts.Controller(cmd.Context(), nil)
			if err != nil {
				return errors.Errorf("creating controller: %w", err)
			}

			_, err = ctrl.List(cmd.Context(), kinds...)
			return err
		},
	}

	return cmd
}
