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

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress of the statistics server.
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// Server of runtime statistics.
type Server struct {
	addr string
	mgr  *statsview.ViewManager
}

// URL returns the address at which the statistics can be viewed.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s%s", s.addr, path)
}

// Launch a new goroutine running the statsview. An empty address uses the
// default address.
func Launch(output io.Writer, addr string) *Server {
	if addr == "" {
		addr = DefaultAddress
	}

	viewer.SetConfiguration(viewer.WithAddr(addr))
	s := &Server{
		addr: addr,
		mgr:  statsview.New(),
	}

	go func() {
		s.mgr.Start()
	}()

	if output != nil {
		fmt.Fprintf(output, "stats server available at %s\n", s.URL())
	}

	return s
}

// Stop the server.
func (s *Server) Stop() {
	s.mgr.Stop()
}
