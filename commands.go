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
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/result"
	"github.com/jetsetilly/gfxbench/sequencer"
	"github.com/jetsetilly/gfxbench/statsview"
	"github.com/jetsetilly/gfxbench/suite"
)

var (
	suiteFile string
	flatten   bool

	runTest        string
	runURL         string
	runCoordinator string
	session        sessionOptions

	serveAddr      string
	serveDB        string
	serveStatsview bool
)

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the tests of the suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := suite.Load(suiteFile)
			if err != nil {
				return err
			}

			missing := make(map[string]bool)
			for _, id := range st.MissingReferences() {
				missing[id] = true
			}

			w := cmd.OutOrStdout()
			for _, t := range st.Tests {
				fmt.Fprintf(w, "%s\t%s\t%s", t.ID, t.App, t.URL)
				if missing[t.ID] {
					fmt.Fprint(w, "\t(no reference image)")
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a test of the suite on the headless host",
		Long: `Run a single test of the suite on the headless host. The test is selected
by ID or by URL. Query parameters of the URL override the settings of the test.

With a coordinator the result is reported over the websocket and the tests
chosen by the coordinator are run until the sequence is complete.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := suite.Load(suiteFile)
			if err != nil {
				return err
			}

			tst, rawURL, err := selectTest(st, runTest, runURL)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			if runCoordinator == "" {
				res, err := runSession(ctx, st, tst, rawURL, session, nil)
				if err != nil {
					return err
				}
				printResult(w, res, flatten)
				return nil
			}

			cl, err := sequencer.Dial(ctx, runCoordinator)
			if err != nil {
				return err
			}
			defer cl.Close()

			return chain(ctx, w, st, cl, tst, rawURL)
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Coordinate the test sequence of the suite",
		Long: `Serve the coordinator of the suite's test sequence. Sessions connect to the
websocket at /ws, results are available at /results and metrics at /metrics.
The server exits when the sequence has finished.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := suite.Load(suiteFile)
			if err != nil {
				return err
			}

			var store sequencer.Store
			if serveDB != "" {
				store, err = sequencer.OpenBadgerStore(serveDB)
				if err != nil {
					return err
				}
			} else {
				store = sequencer.NewMemoryStore()
			}
			defer store.Close()

			coord, err := sequencer.NewCoordinator(st.Entries(), sequencer.Options{Store: store})
			if err != nil {
				return err
			}

			if serveStatsview {
				sv := statsview.Launch(cmd.OutOrStdout(), "")
				defer sv.Stop()
			}

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{Handler: coord.Handler()}

			ln, err := net.Listen("tcp", serveAddr)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "coordinator %s listening on %s\n", coord.RunID(), ln.Addr())
			if first, ok := coord.First(); ok {
				fmt.Fprintf(w, "first test: %s\n", first.URL)
			}

			if err := serve(cmd.Context(), srv, ln, coord); err != nil {
				return err
			}

			results, err := store.Results()
			if err != nil {
				return err
			}
			for _, res := range results {
				printResult(w, res, flatten)
			}
			return nil
		},
	}

	suiteCmd = &cobra.Command{
		Use:   "suite",
		Short: "Run every test of the suite in sequence",
		Long: `Run every test of the suite in sequence on the headless host. The sequence is
driven by a coordinator running in the same process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := suite.Load(suiteFile)
			if err != nil {
				return err
			}

			coord, err := sequencer.NewCoordinator(st.Entries(), sequencer.Options{})
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{Handler: coord.Handler()}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var g errgroup.Group
			g.Go(func() error {
				return serve(ctx, srv, ln, coord)
			})

			w := cmd.OutOrStdout()
			err = func() error {
				cl, err := sequencer.Dial(ctx, fmt.Sprintf("ws://%s/ws", ln.Addr()))
				if err != nil {
					return err
				}
				defer cl.Close()

				first, _ := coord.First()
				tst, ok := st.Lookup(first.ID)
				if !ok {
					return fmt.Errorf("no test: %s", first.ID)
				}
				return chain(ctx, w, st, cl, tst, "")
			}()
			if err != nil {
				cancel()
				_ = g.Wait()
				return err
			}

			if err := g.Wait(); err != nil {
				return err
			}

			results, err := coord.Store().Results()
			if err != nil {
				return err
			}

			fmt.Fprint(w, verdicts(results))

			failed := 0
			for _, res := range results {
				if !res.Passed() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d tests failed", failed, len(results))
			}
			return nil
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{listCmd, runCmd, serveCmd, suiteCmd} {
		c.Flags().StringVar(&suiteFile, "suite", "suite.yaml", "suite file")
	}
	for _, c := range []*cobra.Command{runCmd, serveCmd, suiteCmd} {
		c.Flags().BoolVar(&flatten, "flat", false, "print flattened results")
	}
	for _, c := range []*cobra.Command{runCmd, suiteCmd} {
		f := c.Flags()
		f.StringVar(&session.diffOut, "diff-out", "", "directory for images of failed comparisons")
		f.BoolVar(&session.xr, "xr", false, "headless host supports presentation sessions")
		f.IntVar(&session.realtime, "realtime", 0, "pace frames in real time at this rate")
		f.DurationVar(&session.frameGap, "frame-gap", 0, "simulated wall time between frames")
		f.DurationVar(&session.callbackCost, "callback-cost", 0, "simulated wall time between callbacks of a frame")
		f.BoolVar(&session.updateReference, "update-reference", false, "write the final frame as the reference image")
	}

	f := runCmd.Flags()
	f.StringVar(&runTest, "test", "", "ID of the test to run")
	f.StringVar(&runURL, "url", "", "URL of the test to run, including query parameters")
	f.StringVar(&runCoordinator, "coordinator", "", "websocket URL of the coordinator")
	f.StringVar(&session.record, "record", "", "record input to file")
	f.StringVar(&session.profile, "profile", "", "profile the session (cpu, mem, trace)")
	f.StringVar(&session.memviz, "memviz", "", "write a graph of the session state to file")
	f.StringVar(&session.wav, "wav", "", "mix audio of the session to a WAV file")

	f = serveCmd.Flags()
	f.StringVar(&serveAddr, "addr", ":8888", "listen address")
	f.StringVar(&serveDB, "db", "", "directory of the results database")
	f.BoolVar(&serveStatsview, "statsview", false, "serve runtime statistics")
}

// selectTest finds the test by ID or by URL. The first test of the suite is
// selected if neither is given
func selectTest(st *suite.Suite, id string, rawURL string) (suite.Test, string, error) {
	switch {
	case id != "" && rawURL != "":
		return suite.Test{}, "", fmt.Errorf("test and url cannot both be specified")
	case id != "":
		t, ok := st.Lookup(id)
		if !ok {
			return suite.Test{}, "", fmt.Errorf("no test: %s", id)
		}
		return t, "", nil
	case rawURL != "":
		t, ok := st.LookupURL(rawURL)
		if !ok {
			return suite.Test{}, "", fmt.Errorf("no test at url: %s", rawURL)
		}
		return t, rawURL, nil
	}
	return st.Tests[0], "", nil
}

// chain runs the test and every test the coordinator asks for after it
func chain(ctx context.Context, w io.Writer, st *suite.Suite, cl *sequencer.Client, tst suite.Test, rawURL string) error {
	for {
		res, err := runSession(ctx, st, tst, rawURL, session, cl)
		if err != nil {
			return err
		}

		next, ok, err := cl.WaitNext(ctx)
		if err != nil {
			return err
		}
		printResult(w, res, flatten)
		if !ok {
			return nil
		}

		tst, ok = st.LookupURL(next)
		if !ok {
			return fmt.Errorf("no test at url: %s", next)
		}
		rawURL = next
		logger.Logf(logger.Allow, "gfxbench", "next test: %s", tst.ID)
	}
}

// serve the coordinator until the sequence is complete or the context is
// cancelled
func serve(ctx context.Context, srv *http.Server, ln net.Listener, coord *sequencer.Coordinator) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		select {
		case <-coord.Done():
		case <-ctx.Done():
		}

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

// verdicts summarises the results
func verdicts(results []result.BenchmarkResult) string {
	s := strings.Builder{}
	for _, res := range results {
		fmt.Fprintf(&s, "%s: %s\n", res.TestID, res.Result)
	}
	return s.String()
}
