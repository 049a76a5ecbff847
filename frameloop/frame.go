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

package frameloop

import "time"

// Vec4 is a homogeneous position or a quaternion orientation.
type Vec4 struct {
	X, Y, Z, W float64
}

// RigidTransform is a position and orientation in space.
type RigidTransform struct {
	Position    Vec4
	Orientation Vec4
}

// Pose is the transform of a tracked object relative to a reference space.
type Pose struct {
	Transform        RigidTransform
	EmulatedPosition bool
}

// View is one of the rendering views of a viewer pose. Normally one view per
// eye.
type View struct {
	Eye              string
	ProjectionMatrix [16]float64
	Transform        RigidTransform

	// the view as delivered by the host if the view has been replaced by a
	// FrameTransform
	Original *View
}

// ViewerPose is the pose of the viewer along with the views to be rendered.
type ViewerPose struct {
	Pose
	Views []View
}

// Frame is the per-frame data delivered with a callback. Frames for the
// default window loop carry no pose data and the fields are nil.
type Frame struct {
	Pose   *Pose
	Viewer *ViewerPose
}

// Token describes a single callback delivery from the host.
type Token struct {
	// the real frame being delivered. frame numbers are assigned by the host
	// and increase for every new frame of a primitive
	Frame uint64

	// position of the callback in the frame's batch and the size of the batch
	Position int
	Count    int
}

// First returns true if the token is the first delivery of the frame.
func (tok Token) First() bool {
	return tok.Position == 0
}

// Last returns true if the token is the final delivery of the frame.
func (tok Token) Last() bool {
	return tok.Position >= tok.Count-1
}

// HostCallback is the form of callback accepted by a host Primitive. The now
// argument is the host's own time.
type HostCallback func(tok Token, now time.Duration, frame *Frame)

// Primitive is the host's frame request function for a single frame production
// context. The callback will run once, during the next real frame.
type Primitive interface {
	Request(cb HostCallback)
}

// Callback is the form of callback used by applications. The now argument is
// always virtual time.
type Callback func(now time.Duration, frame *Frame)

// FrameTransform rewrites the frame data passed to the application. It is
// called once per delivered real frame and the result is shared by every
// callback in that frame.
type FrameTransform interface {
	TransformFrame(now time.Duration, frame *Frame) *Frame
}

// FrameTransformFunc allows a plain function to be used as a FrameTransform.
type FrameTransformFunc func(now time.Duration, frame *Frame) *Frame

func (f FrameTransformFunc) TransformFrame(now time.Duration, frame *Frame) *Frame {
	return f(now, frame)
}

// Context is a frame production context.
type Context struct {
	Name      string
	Primitive Primitive

	// optional transform of frame data
	Transform FrameTransform
}
