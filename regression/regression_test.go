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

package regression_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/jetsetilly/gfxbench/regression"
	"github.com/jetsetilly/gfxbench/test"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()
	var b bytes.Buffer
	test.DemandSuccess(t, png.Encode(&b, img))
	return b.Bytes()
}

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func TestIdentical(t *testing.T) {
	res := regression.Compare(solid(16, 16, red), solid(16, 16, red), regression.DefaultThreshold)
	test.ExpectEquality(t, res.NumDiffPixels, 0)
	test.ExpectEquality(t, res.DiffPerc, 0.0)
	test.ExpectSuccess(t, res.Pass)
}

func TestBlackWhite(t *testing.T) {
	res := regression.Compare(solid(8, 8, black), solid(8, 8, white), regression.DefaultThreshold)
	test.ExpectEquality(t, res.NumDiffPixels, 64)
	test.ExpectApproximate(t, res.DiffPerc, 100.0, 0.0001)
	test.ExpectFailure(t, res.Pass)
	test.ExpectEquality(t, res.String(), "fail: 64 of 64 pixels differ (100.00%)")
}

func TestIsolatedPixels(t *testing.T) {
	ref := solid(50, 40, black)

	// three isolated pixels in 2000 is 0.15%
	cur := solid(50, 40, black)
	cur.SetNRGBA(10, 10, white)
	cur.SetNRGBA(20, 20, white)
	cur.SetNRGBA(30, 30, white)

	res := regression.Compare(ref, cur, regression.DefaultThreshold)
	test.ExpectEquality(t, res.NumDiffPixels, 3)
	test.ExpectSuccess(t, res.Pass)

	// the differing pixels are red in the diff image and the unchanged pixels
	// are a faded version of the reference
	test.ExpectEquality(t, res.Diff.NRGBAAt(10, 10), color.NRGBA{R: 255, A: 255})
	test.ExpectEquality(t, res.Diff.NRGBAAt(0, 0), color.NRGBA{R: 229, G: 229, B: 229, A: 255})

	// five isolated pixels is 0.25%
	cur.SetNRGBA(40, 30, white)
	cur.SetNRGBA(5, 35, white)
	res = regression.Compare(ref, cur, regression.DefaultThreshold)
	test.ExpectEquality(t, res.NumDiffPixels, 5)
	test.ExpectApproximate(t, res.DiffPerc, 0.25, 0.0001)
	test.ExpectFailure(t, res.Pass)
}

func TestThreshold(t *testing.T) {
	ref := solid(4, 4, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	cur := solid(4, 4, color.NRGBA{R: 104, G: 100, B: 100, A: 255})

	res := regression.Compare(ref, cur, regression.DefaultThreshold)
	test.ExpectEquality(t, res.NumDiffPixels, 0)

	res = regression.Compare(ref, cur, 0)
	test.ExpectEquality(t, res.NumDiffPixels, 16)
}

func TestAntialiased(t *testing.T) {
	// a hard vertical edge in the reference and a softened edge in the
	// current image. the intermediate column is anti-aliasing
	ref := solid(9, 9, black)
	cur := solid(9, 9, black)
	grey := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	for y := range 9 {
		for x := 5; x < 9; x++ {
			ref.SetNRGBA(x, y, white)
			cur.SetNRGBA(x, y, white)
		}
		cur.SetNRGBA(4, y, grey)
	}

	res := regression.Compare(ref, cur, regression.DefaultThreshold)
	test.ExpectEquality(t, res.NumDiffPixels, 0)
	test.ExpectEquality(t, res.Diff.NRGBAAt(4, 4), color.NRGBA{R: 255, G: 255, A: 255})
}

func TestResample(t *testing.T) {
	res := regression.Compare(solid(10, 10, red), solid(20, 30, red), regression.DefaultThreshold)
	test.ExpectEquality(t, res.Width, 10)
	test.ExpectEquality(t, res.Height, 10)
	test.ExpectSuccess(t, res.Pass)

	img := regression.Resample(solid(20, 30, red), 10, 10)
	test.ExpectEquality(t, img.Bounds(), image.Rect(0, 0, 10, 10))

	// offset bounds are normalised
	sub := solid(20, 20, red).SubImage(image.Rect(5, 5, 15, 15))
	n := regression.NRGBA(sub)
	test.ExpectEquality(t, n.Bounds(), image.Rect(0, 0, 10, 10))
	test.ExpectEquality(t, n.Stride, 40)
}

func TestVerdict(t *testing.T) {
	test.ExpectSuccess(t, regression.Verdict(0))
	test.ExpectSuccess(t, regression.Verdict(regression.MaxDiffPercentage))
	test.ExpectFailure(t, regression.Verdict(0.21))
}

func TestFSLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"references/spinner.png": &fstest.MapFile{Data: encode(t, solid(4, 4, red))},
		"references/broken.png":  &fstest.MapFile{Data: []byte("not a png")},
	}
	loader := regression.FSLoader{FS: fsys, Root: "references"}

	test.ExpectSuccess(t, loader.Exists("spinner"))
	test.ExpectFailure(t, loader.Exists("missing"))

	img, err := loader.Load(context.Background(), "spinner")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 4)

	_, err = loader.Load(context.Background(), "missing")
	test.ExpectSuccess(t, errors.Is(err, regression.ErrReferenceUnavailable))

	_, err = loader.Load(context.Background(), "broken")
	test.ExpectSuccess(t, errors.Is(err, regression.ErrReferenceUnavailable))
}

func TestHTTPLoader(t *testing.T) {
	data := encode(t, solid(4, 4, red))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/refs/spinner.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	loader := regression.HTTPLoader{BaseURL: srv.URL + "/refs/", Client: srv.Client()}

	img, err := loader.Load(context.Background(), "spinner")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dy(), 4)

	_, err = loader.Load(context.Background(), "missing")
	test.ExpectSuccess(t, errors.Is(err, regression.ErrReferenceUnavailable))
}

type countingLoader struct {
	loads int
	img   image.Image
	err   error
}

func (l *countingLoader) Load(_ context.Context, _ string) (image.Image, error) {
	l.loads++
	return l.img, l.err
}

func TestComparatorCache(t *testing.T) {
	loader := &countingLoader{img: solid(4, 4, black)}
	cmp := regression.NewComparator(loader, "spinner", -1)
	test.ExpectEquality(t, cmp.Threshold(), regression.DefaultThreshold)

	for range 3 {
		res, err := cmp.Compare(context.Background(), solid(4, 4, black))
		test.ExpectSuccess(t, err)
		test.ExpectSuccess(t, res.Pass)
	}
	test.ExpectEquality(t, loader.loads, 1)
}

func TestComparatorCachedFailure(t *testing.T) {
	loader := &countingLoader{err: regression.ErrReferenceUnavailable}
	cmp := regression.NewComparator(loader, "spinner", regression.DefaultThreshold)

	for range 3 {
		_, err := cmp.Compare(context.Background(), solid(4, 4, black))
		test.ExpectSuccess(t, errors.Is(err, regression.ErrReferenceUnavailable))
	}
	test.ExpectEquality(t, loader.loads, 1)
}
