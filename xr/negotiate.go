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

package xr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jetsetilly/gfxbench/frameloop"
)

// ErrNotSupported is returned when the host does not support the requested
// presentation mode.
var ErrNotSupported = errors.New("presentation mode not supported")

// Mode of presentation.
type Mode string

// List of valid Mode values.
const (
	ImmersiveVR Mode = "immersive-vr"
	ImmersiveAR Mode = "immersive-ar"
)

// System is the host's presentation system.
type System interface {
	IsSessionSupported(ctx context.Context, mode Mode) (bool, error)

	// RequestSession starts a session. The returned primitive is the frame
	// request primitive of the session
	RequestSession(ctx context.Context, mode Mode) (frameloop.Primitive, error)
}

// Negotiate a session with the presentation system. Errors caused by the
// session not being available wrap ErrNotSupported.
func Negotiate(ctx context.Context, sys System, mode Mode) (frameloop.Primitive, error) {
	if sys == nil {
		return nil, fmt.Errorf("xr: %w: no presentation system", ErrNotSupported)
	}

	ok, err := sys.IsSessionSupported(ctx, mode)
	if err != nil {
		return nil, fmt.Errorf("xr: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("xr: %w: %s", ErrNotSupported, mode)
	}

	prim, err := sys.RequestSession(ctx, mode)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("xr: %w", err)
		}
		return nil, fmt.Errorf("xr: %w: %w", ErrNotSupported, err)
	}
	if prim == nil {
		return nil, fmt.Errorf("xr: %w: session has no frame primitive", ErrNotSupported)
	}

	return prim, nil
}
