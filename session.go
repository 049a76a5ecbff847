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
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/gfxbench/harness"
	"github.com/jetsetilly/gfxbench/headless"
	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/performance"
	"github.com/jetsetilly/gfxbench/regression"
	"github.com/jetsetilly/gfxbench/result"
	"github.com/jetsetilly/gfxbench/suite"
	"github.com/jetsetilly/gfxbench/version"
	"github.com/jetsetilly/gfxbench/wavwriter"
)

// options of a single session run on the headless host
type sessionOptions struct {
	record          string
	profile         string
	memviz          string
	diffOut         string
	wav             string
	updateReference bool

	xr           bool
	realtime     int
	frameGap     time.Duration
	callbackCost time.Duration
}

// writeDiff returns a harness.DiffOutput that writes the current image and
// the difference image to the directory
func writeDiff(dir string) harness.DiffOutput {
	write := func(fn string, img image.Image) error {
		f, err := os.Create(fn)
		if err != nil {
			return err
		}
		defer f.Close()
		return regression.WritePNG(f, img)
	}

	return func(name string, diff regression.DiffResult, current image.Image) error {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
		if err := write(filepath.Join(dir, name+".current.png"), current); err != nil {
			return err
		}
		if diff.Diff != nil {
			return write(filepath.Join(dir, name+".diff.png"), diff.Diff)
		}
		return nil
	}
}

// runSession runs the test on the headless host. The URL may be empty, in
// which case the test's own URL is used
func runSession(ctx context.Context, st *suite.Suite, tst suite.Test, rawURL string, so sessionOptions, rep harness.Reporter) (res result.BenchmarkResult, rerr error) {
	cfg, err := st.Config(tst, rawURL)
	if err != nil {
		return res, err
	}
	if tst.Revision == "" {
		cfg.Revision = version.Version().ResultRevision()
	}

	app, err := headless.NewApp(tst.App)
	if err != nil {
		return res, err
	}

	hopts := headless.DefaultOptions(cfg.Width, cfg.Height)
	hopts.XR = so.xr
	hopts.Realtime = so.realtime
	if so.frameGap > 0 {
		hopts.FrameGap = so.frameGap
	}
	if so.callbackCost > 0 {
		hopts.CallbackCost = so.callbackCost
	}

	host, err := headless.NewHost(hopts)
	if err != nil {
		return res, err
	}
	defer host.Close()

	opts := []harness.Option{
		harness.WithReferenceLoader(st.ReferenceLoader()),
		harness.WithReplayFS(os.DirFS(st.InputRoot())),
	}
	if rep != nil {
		opts = append(opts, harness.WithReporter(rep))
	}

	if so.record != "" {
		f, err := os.Create(so.record)
		if err != nil {
			return res, err
		}
		defer f.Close()
		cfg.Recording = true
		opts = append(opts, harness.WithRecording(f))
	}

	if so.wav != "" {
		aw, err := wavwriter.New(so.wav, wavwriter.DefaultSampleRate)
		if err != nil {
			return res, err
		}
		defer func() {
			if err := aw.EndMixing(); err != nil && rerr == nil {
				rerr = err
			}
		}()
		opts = append(opts, harness.WithMixer(aw))
	}

	if so.diffOut != "" {
		opts = append(opts, harness.WithDiffOutput(writeDiff(so.diffOut)))
	}

	hrn, err := harness.NewHarness(cfg, host, app, opts...)
	if err != nil {
		return res, err
	}

	profile, err := performance.ParseProfile(so.profile)
	if err != nil {
		return res, err
	}

	err = performance.RunProfiler(profile, tst.ID, func() error {
		var err error
		res, err = hrn.Run(ctx)
		return err
	})
	if err != nil {
		return res, err
	}

	if so.memviz != "" {
		f, err := os.Create(so.memviz)
		if err != nil {
			return res, err
		}
		memviz.Map(f, hrn.Session())
		if err := f.Close(); err != nil {
			return res, err
		}
	}

	if so.updateReference {
		img, err := host.Canvas().Snapshot()
		if err != nil {
			return res, err
		}
		fn := filepath.Join(st.ReferenceRoot(), regression.Filename(cfg.ReferenceName()))
		if err := os.MkdirAll(filepath.Dir(fn), 0750); err != nil {
			return res, err
		}
		f, err := os.Create(fn)
		if err != nil {
			return res, err
		}
		if err := regression.WritePNG(f, img); err != nil {
			_ = f.Close()
			return res, err
		}
		if err := f.Close(); err != nil {
			return res, err
		}
		logger.Logf(logger.Allow, "gfxbench", "reference image written to %s", fn)
	}

	return res, nil
}

// printResult writes a summary of the result
func printResult(w io.Writer, res result.BenchmarkResult, flat bool) {
	fmt.Fprintln(w, res)
	if flat {
		fmt.Fprintln(w, res.Flatten())
	}
}
