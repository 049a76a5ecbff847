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

// Package version reports the version of the build. The version number is
// set by the linker; revision information comes from the build info embedded
// by the Go toolchain.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/jetsetilly/gfxbench/result"
)

// The name to use when referring to the application
const ApplicationName = "gfxbench"

// set by the linker with -ldflags "-X github.com/jetsetilly/gfxbench/version.number=v0.1.0"
var number string

// Info about the build.
type Info struct {
	// "unreleased" if the project was built without a version number and
	// "local" if there is also no vcs information
	Version string

	// vcs revision. suffixed with "+dirty" if the source had been modified
	// but not committed. empty if there is no vcs information
	Revision string

	Release bool
}

func (i Info) String() string {
	if i.Release || i.Revision == "" {
		return fmt.Sprintf("%s %s", ApplicationName, i.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, i.Version, i.Revision)
}

// ResultRevision returns the revision to record in benchmark results. The
// first eight characters of the vcs revision are used. Returns the default
// result revision if there is no vcs information.
func (i Info) ResultRevision() string {
	if i.Revision == "" {
		return result.DefaultRevision
	}
	if len(i.Revision) > 8 {
		return i.Revision[:8]
	}
	return i.Revision
}

var info Info

// Version returns information about the build.
func Version() Info {
	return info
}

func init() {
	info = fromBuildInfo(number, debug.ReadBuildInfo)
}

func fromBuildInfo(number string, read func() (*debug.BuildInfo, bool)) Info {
	var vcs bool
	var modified bool
	var i Info

	if bi, ok := read(); ok {
		for _, v := range bi.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				i.Revision = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
	}

	if i.Revision != "" && modified {
		i.Revision = fmt.Sprintf("%s+dirty", i.Revision)
	}

	switch {
	case number != "":
		i.Version = number
		i.Release = true
	case vcs:
		i.Version = "unreleased"
	default:
		i.Version = "local"
	}

	return i
}
