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

// NewSyncCmd creates the sync command with its images and videos subcommands
func NewSyncCmd(opts *opts.RootOpts) *cobra.Command {
	var removeOriginals bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import sidecar metadata into images or videos",
		Long: `Sync writes every sidecar's metadata into its media files with exiftool
and sets the file system dates from the embedded capture date.
It will:
1. Find every image (or video) with a same-named sidecar
2. Ask whether the "_original" backups should be removed afterwards
3. Ask for confirmation, unless --yes is given
4. Report each failed asset and exit non-zero when any failed`,
	}

	cmd.PersistentFlags().BoolVar(&removeOriginals, "remove-originals", false, "remove exiftool backups after each file is synced (asked when unset)")

	run := func(action controller.Action) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			var remove *bool
			if cmd.Flags().Changed("remove-originals") {
				remove = &removeOriginals
			}

			ctrl, err := opts.Controller(cmd.Context(), remove)
			if err != nil {
				return errors.Errorf("creating controller: %w", err)
			}

			_, err = ctrl.Execute(cmd.Context(), action)
			return err
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "images",
			Short: "Sync images and their RAW companions in the root directory",
			Args:  cobra.NoArgs,
			RunE:  run(controller.ActionSyncImages),
		},
		&cobra.Command{
			Use:   "videos",
			Short: "Sync videos anywhere below the root directory",
			Args:  cobra.NoArgs,
			RunE:  run(controller.ActionSyncVideos),
		},
	)

	return cmd
}
