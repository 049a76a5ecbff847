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

package version

import (
	"runtime/debug"
	"testing"

	"github.com/jetsetilly/gfxbench/test"
)

func TestFromBuildInfo(t *testing.T) {
	read := func(settings ...debug.BuildSetting) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Settings: settings}, true
		}
	}

	i := fromBuildInfo("", func() (*debug.BuildInfo, bool) { return nil, false })
	test.ExpectEquality(t, i.Version, "local")
	test.ExpectEquality(t, i.ResultRevision(), "0")
	test.ExpectEquality(t, i.String(), "gfxbench local")

	i = fromBuildInfo("", read(
		debug.BuildSetting{Key: "vcs", Value: "git"},
		debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"},
	))
	test.ExpectEquality(t, i.Version, "unreleased")
	test.ExpectEquality(t, i.Revision, "0123456789abcdef+dirty")
	test.ExpectEquality(t, i.ResultRevision(), "01234567")
	test.ExpectFailure(t, i.Release)

	i = fromBuildInfo("v0.1.0", read(
		debug.BuildSetting{Key: "vcs", Value: "git"},
		debug.BuildSetting{Key: "vcs.revision", Value: "abc"},
	))
	test.ExpectEquality(t, i.Version, "v0.1.0")
	test.ExpectSuccess(t, i.Release)
	test.ExpectEquality(t, i.ResultRevision(), "abc")
	test.ExpectEquality(t, i.String(), "gfxbench v0.1.0")
}
