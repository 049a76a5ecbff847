// This file is part of Gfxbench.
//
// Gfxbench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gfxbench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gfxbench.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/version"
)

var (
	echoLog bool

	rootCmd = &cobra.Command{
		Use:   version.ApplicationName,
		Short: "Graphics performance and visual regression benchmarks",
		Long: `gfxbench runs graphics applications for a fixed number of frames under a
virtual clock, measures the frame timings and compares the final frame against
a reference image. Sessions can be chained into a sequence by a coordinator.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if echoLog {
				logger.SetEcho(os.Stdout)
			} else {
				logger.SetEcho(nil)
			}
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version of the program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version())
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&echoLog, "log", false, "echo log to stdout")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(suiteCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}
}

// shutdownTimeout is the time given to the HTTP server to close connections
const shutdownTimeout = 5 * time.Second
