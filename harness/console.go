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

package harness

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/result"
)

// tags used for console entries in the session log
const (
	tagLog     = "log"
	tagWarning = "warning"
	tagError   = "error"
	tagCaught  = "caught"
)

// Console captures the console output of the application. Errors and warnings
// are kept for the benchmark result. Every line is also written to the session
// log. Console is safe for concurrent use.
type Console struct {
	crit sync.Mutex

	log *logger.Logger

	errors      []string
	warnings    []string
	catchErrors []string
}

func newConsole(log *logger.Logger) *Console {
	return &Console{log: log}
}

func join(args []any) string {
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = fmt.Sprint(a)
	}
	return strings.Join(s, " ")
}

// Log writes an informational line.
func (c *Console) Log(args ...any) {
	c.log.Log(logger.Allow, tagLog, join(args))
}

// Warn writes a warning.
func (c *Console) Warn(args ...any) {
	msg := join(args)
	c.crit.Lock()
	c.warnings = append(c.warnings, msg)
	c.crit.Unlock()
	c.log.Log(logger.Allow, tagWarning, msg)
}

// Error writes an error.
func (c *Console) Error(args ...any) {
	msg := join(args)
	c.crit.Lock()
	c.errors = append(c.errors, msg)
	c.crit.Unlock()
	c.log.Log(logger.Allow, tagError, msg)
}

// catch records an error that was not handled by the application
func (c *Console) catch(msg string) {
	c.crit.Lock()
	c.catchErrors = append(c.catchErrors, msg)
	c.crit.Unlock()
	c.log.Log(logger.Allow, tagCaught, msg)
}

// Logs returns a copy of the errors and warnings captured so far.
func (c *Console) Logs() result.Logs {
	c.crit.Lock()
	defer c.crit.Unlock()
	return result.Logs{
		Errors:      append([]string{}, c.errors...),
		Warnings:    append([]string{}, c.warnings...),
		CatchErrors: append([]string{}, c.catchErrors...),
	}
}
