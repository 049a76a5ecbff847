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
	"math"
	"time"

	"github.com/jetsetilly/gfxbench/frameloop"
)

// parameters of the synthetic motion
const (
	amplitude = 0.5
	frequency = 0.0005

	// standing eye height in metres
	eyeHeight = 1.6
)

var identity = frameloop.Vec4{W: 1}

// PoseAt returns the synthetic pose for the virtual time.
func PoseAt(now time.Duration) frameloop.Pose {
	t := float64(now) / float64(time.Millisecond)
	return frameloop.Pose{
		Transform: frameloop.RigidTransform{
			Position: frameloop.Vec4{
				X: math.Sin(t*frequency) * amplitude,
				Y: eyeHeight + math.Cos(t*frequency)*amplitude,
				Z: -1,
				W: 1,
			},
			Orientation: identity,
		},
	}
}

// SyntheticPoses is a frame transform that replaces the pose data of a frame
// with synthetic values.
//
// The object pose follows a circle driven by virtual time. Every view of the
// viewer pose is placed at standing eye height with the original view
// retained. Views that are already synthetic are left unchanged.
var SyntheticPoses = frameloop.FrameTransformFunc(func(now time.Duration, frame *frameloop.Frame) *frameloop.Frame {
	if frame == nil {
		return nil
	}

	out := &frameloop.Frame{}

	if frame.Pose != nil {
		p := PoseAt(now)
		out.Pose = &p
	}

	if frame.Viewer != nil {
		vp := &frameloop.ViewerPose{
			Pose:  frame.Viewer.Pose,
			Views: make([]frameloop.View, 0, len(frame.Viewer.Views)),
		}
		for i := range frame.Viewer.Views {
			v := frame.Viewer.Views[i]
			if v.Original != nil {
				vp.Views = append(vp.Views, v)
				continue
			}
			orig := v
			vp.Views = append(vp.Views, frameloop.View{
				Eye:              v.Eye,
				ProjectionMatrix: v.ProjectionMatrix,
				Transform: frameloop.RigidTransform{
					Position:    frameloop.Vec4{Y: eyeHeight, W: 1},
					Orientation: identity,
				},
				Original: &orig,
			})
		}
		out.Viewer = vp
	}

	return out
})
