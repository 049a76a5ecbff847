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

package xr_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jetsetilly/gfxbench/frameloop"
	"github.com/jetsetilly/gfxbench/test"
	"github.com/jetsetilly/gfxbench/xr"
)

type primitive struct{}

func (primitive) Request(frameloop.HostCallback) {}

type system struct {
	supported bool
	fail      error
}

func (s system) IsSessionSupported(context.Context, xr.Mode) (bool, error) {
	return s.supported, nil
}

func (s system) RequestSession(context.Context, xr.Mode) (frameloop.Primitive, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return primitive{}, nil
}

func TestNegotiate(t *testing.T) {
	ctx := context.Background()

	prim, err := xr.Negotiate(ctx, system{supported: true}, xr.ImmersiveVR)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, prim != nil)

	_, err = xr.Negotiate(ctx, system{supported: false}, xr.ImmersiveVR)
	test.ExpectSuccess(t, errors.Is(err, xr.ErrNotSupported))

	_, err = xr.Negotiate(ctx, system{supported: true, fail: errors.New("user declined")}, xr.ImmersiveVR)
	test.ExpectSuccess(t, errors.Is(err, xr.ErrNotSupported))

	_, err = xr.Negotiate(ctx, nil, xr.ImmersiveVR)
	test.ExpectSuccess(t, errors.Is(err, xr.ErrNotSupported))
}

func TestPoseAt(t *testing.T) {
	p := xr.PoseAt(0)
	test.ExpectApproximate(t, p.Transform.Position.X, 0.0, 0.00001)
	test.ExpectApproximate(t, p.Transform.Position.Y, 2.1, 0.00001)
	test.ExpectEquality(t, p.Transform.Position.Z, -1.0)
	test.ExpectEquality(t, p.EmulatedPosition, false)

	// a quarter of the period
	ms := math.Pi / 2 / 0.0005
	quarter := time.Duration(ms * float64(time.Millisecond))
	p = xr.PoseAt(quarter)
	test.ExpectApproximate(t, p.Transform.Position.X, 0.5, 0.001)
	test.ExpectApproximate(t, p.Transform.Position.Y, 1.6, 0.001)

	// poses depend only on time
	test.ExpectEquality(t, xr.PoseAt(time.Second), xr.PoseAt(time.Second))
}

func TestSyntheticPoses(t *testing.T) {
	test.ExpectSuccess(t, xr.SyntheticPoses.TransformFrame(0, nil) == nil)

	host := &frameloop.Frame{
		Pose: &frameloop.Pose{EmulatedPosition: true},
		Viewer: &frameloop.ViewerPose{
			Views: []frameloop.View{
				{Eye: "left", Transform: frameloop.RigidTransform{Position: frameloop.Vec4{X: 3}}},
				{Eye: "right"},
			},
		},
	}

	out := xr.SyntheticPoses.TransformFrame(time.Second, host)
	test.DemandSuccess(t, out.Pose != nil)
	test.ExpectEquality(t, *out.Pose, xr.PoseAt(time.Second))

	test.DemandEquality(t, len(out.Viewer.Views), 2)
	left := out.Viewer.Views[0]
	test.ExpectEquality(t, left.Eye, "left")
	test.ExpectEquality(t, left.Transform.Position, frameloop.Vec4{Y: 1.6, W: 1})
	test.DemandSuccess(t, left.Original != nil)
	test.ExpectEquality(t, left.Original.Transform.Position.X, 3.0)

	// the host frame is not modified
	test.ExpectEquality(t, host.Viewer.Views[0].Transform.Position.X, 3.0)
	test.ExpectSuccess(t, host.Viewer.Views[0].Original == nil)

	// synthetic views are passed through
	again := xr.SyntheticPoses.TransformFrame(time.Second, out)
	test.ExpectEquality(t, again.Viewer.Views[0].Original, left.Original)

	// window frames have no pose data
	empty := xr.SyntheticPoses.TransformFrame(time.Second, &frameloop.Frame{})
	test.ExpectSuccess(t, empty.Pose == nil && empty.Viewer == nil)
}
