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

// Package harness runs a single benchmark session.
//
// A session drives an application for a fixed number of frames under a
// virtual clock. The application is given an Env in place of direct access to
// the rendering host. The Env's Loop requests frames through a
// frameloop.Interceptor so that every frame is measured and so that the
// application only ever sees virtual time.
//
// The rendering host is described by the Host interface. Run() is a driver
// loop that calls Host.Step() until the target number of frames have been
// rendered. The blocking operations of a session are the loading of the input
// replay, the negotiation of an XR session and the loading of the reference
// image. All of these take a context.Context and happen outside of the frame
// loop.
//
// When the final frame completes, the interceptor is released and the image
// on the host's Surface is compared against the reference image. The result
// of the session is sent to the Reporter, if there is one, and returned.
//
// A session that fails before the first frame, because a mandatory XR session
// could not be started, produces an early-failure result. A session that stops
// producing frames before the target is reached fails with the stalled reason.
// Any other failure, including cancellation of the context, returns an error
// and no result is reported.
package harness
