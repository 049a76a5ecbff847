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

// Package frameloop intercepts the frame request primitive of a rendering host
// so that every frame of an application can be measured and so that the
// application only ever sees virtual time.
//
// A host exposes one Primitive per frame production context. The default
// context is the window's animation loop. An alternate presentation context,
// such as an XR session, has its own Primitive. The Interceptor wraps these
// primitives and gives the application a Requester in their place.
//
// The host describes every delivery with a Token. The token names the real
// frame the callback belongs to, the position of the callback in that frame's
// batch and the size of the batch. Pre-tick fires on the first delivery seen
// for a new real frame and post-tick fires after the callback whose token is
// the last in the batch. Callbacks are never compared by identity so the set of
// callbacks can change freely from one frame to the next.
//
// Only one context is active at a time. Installing a second context is a
// hand-off: the previous context is deactivated, its Requester becomes a no-op
// and any deliveries already queued by it are dropped. A frame that was in
// progress when the hand-off happened is abandoned without a post-tick.
//
// After the final frame of a session the Interceptor is released. All
// Requesters become no-ops and the application stops rendering.
package frameloop
