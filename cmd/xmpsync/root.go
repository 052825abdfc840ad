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

package main

import (
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/xmpsync/cmd/xmpsync/commands"
	"github.com/walteh/xmpsync/cmd/xmpsync/opts"
	"github.com/walteh/xmpsync/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCommand builds the command tree. Streams are injected so tests can
// drive the prompts.
func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	o := &opts.RootOpts{In: in, Out: out}

	rootCmd := &cobra.Command{
		Use:   "xmpsync",
		Short: "Sync XMP sidecar metadata into photos and videos",
		Long: `xmpsync imports the metadata of XMP sidecar files into the media files
they describe with exiftool, and cleans up the files exiftool leaves behind.

Run without a subcommand for the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(errOut, o.Debug)
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(ctx)

			if skipPrepare(cmd) {
				return nil
			}
			ctx, err := o.Prepare(ctx)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := o.Controller(ctx, nil)
			if err != nil {
				return errors.Errorf("creating controller: %w", err)
			}
			log.FromContext(ctx).Header(o.Root)
			return ctrl.Run(ctx)
		},
	}

	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewSyncCmd(o),
		commands.NewCleanCmd(o),
		commands.NewListCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.Root, "path", "p", "", "directory holding the media files (required)")
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default <path>/.xmpsync.yaml when present)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().IntVarP(&o.Workers, "workers", "w", 0, "assets processed in parallel (default from config, 1)")
	cmd.PersistentFlags().StringVar(&o.Exiftool, "exiftool", "", "exiftool binary (default from config, exiftool on PATH)")
	cmd.PersistentFlags().BoolVarP(&o.AssumeYes, "yes", "y", false, "skip the confirmation question")
	cmd.PersistentFlags().StringVar(&o.VideoSidecars, "video-sidecars", "", "directory mirroring <path> that holds the video sidecars (relative to the working directory; video_sidecars in a config file is relative to <path>)")
}

// setupLogging creates the diagnostic logger. Console lines already cover the
// info level, so only warnings show unless debug is set.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if opts.IsTerminal(w) {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

func skipPrepare(cmd *cobra.Command) bool {
	return cmd.Name() == "version" || cmd.Name() == "help"
}
