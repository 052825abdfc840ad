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
	"github.com/walteh/xmpsync/pkg/controller"
	"gitlab.com/tozd/go/errors"
)

// NewCleanCmd creates the clean command
func NewCleanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove exiftool backups or sidecar files",
		Long: `Clean removes files that belong to discovered assets and nothing else.
It will:
1. originals: remove the "_original" backups exiftool left next to each file
2. sidecars: remove each asset's metadata file`,
	}

	run := func(action controller.Action) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.Controller(cmd.Context(), nil)
			if err != nil {
				return errors.Errorf("creating controller: %w", err)
			}

			_, err = ctrl.Execute(cmd.Context(), action)
			return err
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "originals",
			Short: `Remove "_original" backup files`,
			Args:  cobra.NoArgs,
			RunE:  run(controller.ActionCleanOriginals),
		},
		&cobra.Command{
			Use:   "sidecars",
			Short: "Remove metadata sidecar files",
			Args:  cobra.NoArgs,
			RunE:  run(controller.ActionCleanSidecars),
		},
	)

	return cmd
}
