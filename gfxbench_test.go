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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gfxbench/regression"
	"github.com/jetsetilly/gfxbench/result"
	"github.com/jetsetilly/gfxbench/suite"
	"github.com/jetsetilly/gfxbench/test"
)

const suiteDefinition = `
referenceImagesFolder: reference
tests:
  - id: solid-a
    app: solid
    numFrames: 5
    width: 32
    height: 24
    skipReferenceImageTest: true
  - id: solid-b
    app: solid
    url: /tests/solid-b?num-frames=8
    width: 32
    height: 24
    skipReferenceImageTest: true
`

func writeSuite(t *testing.T, definition string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "suite.yaml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(definition), 0640))
	return fn
}

func TestSelectTest(t *testing.T) {
	st, err := suite.Parse([]byte(suiteDefinition), "")
	test.DemandSuccess(t, err)

	tst, rawURL, err := selectTest(st, "", "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tst.ID, "solid-a")
	test.ExpectEquality(t, rawURL, "")

	tst, _, err = selectTest(st, "solid-b", "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tst.ID, "solid-b")

	tst, rawURL, err = selectTest(st, "", "/tests/solid-b?num-frames=2")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tst.ID, "solid-b")
	test.ExpectEquality(t, rawURL, "/tests/solid-b?num-frames=2")

	_, _, err = selectTest(st, "missing", "")
	test.DemandFailure(t, err)

	_, _, err = selectTest(st, "solid-a", "/tests/solid-a")
	test.ExpectFailure(t, err)
}

func TestUpdateReference(t *testing.T) {
	fn := writeSuite(t, `
referenceImagesFolder: reference
tests:
  - id: solid
    app: solid
    numFrames: 3
    width: 16
    height: 16
`)
	st, err := suite.Load(fn)
	test.DemandSuccess(t, err)
	tst, _ := st.Lookup("solid")

	// no reference image for the first run
	res, err := runSession(context.Background(), st, tst, "", sessionOptions{updateReference: true}, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Result, result.Fail)
	test.ExpectEquality(t, res.FailReason, result.ReasonReferenceUnavailable)

	_, err = os.Stat(filepath.Join(st.ReferenceRoot(), regression.Filename("solid")))
	test.DemandSuccess(t, err)

	res, err = runSession(context.Background(), st, tst, "", sessionOptions{}, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Result, result.Pass)
	test.DemandSuccess(t, res.NumDiffPixels == nil)
}

func TestSuiteCommand(t *testing.T) {
	fn := writeSuite(t, suiteDefinition)

	var out test.Writer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"suite", "--suite", fn})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	test.DemandSuccess(t, err)

	s := out.String()
	test.ExpectSuccess(t, strings.Contains(s, "solid-a: pass\n"))
	test.ExpectSuccess(t, strings.Contains(s, "solid-b: pass\n"))
}

func TestListCommand(t *testing.T) {
	fn := writeSuite(t, suiteDefinition)

	var out test.Writer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"list", "--suite", fn})
	defer rootCmd.SetArgs(nil)

	test.DemandSuccess(t, rootCmd.ExecuteContext(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	test.DemandEquality(t, len(lines), 2)
	test.ExpectEquality(t, lines[0], "solid-a\tsolid\t/tests/solid-a")
	test.ExpectEquality(t, lines[1], "solid-b\tsolid\t/tests/solid-b?num-frames=8")
}
