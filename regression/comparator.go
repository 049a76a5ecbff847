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

package regression

import (
	"context"
	"fmt"
	"image"
)

// DefaultThreshold is the per-pixel colour difference threshold used when no
// threshold has been specified.
const DefaultThreshold = 0.2

// MaxDiffPercentage is the largest percentage of differing pixels that is
// still considered a pass.
const MaxDiffPercentage = 0.2

// DiffResult is the result of comparing an image against the reference image.
type DiffResult struct {
	Width  int
	Height int

	NumDiffPixels int

	// percentage of differing pixels in the range 0 to 100
	DiffPerc float64

	Pass bool

	// visualisation of the differences. areas that differ are coloured red.
	// pixels detected as being anti-aliased are coloured yellow
	Diff *image.NRGBA
}

func (r DiffResult) String() string {
	verdict := "pass"
	if !r.Pass {
		verdict = "fail"
	}
	return fmt.Sprintf("%s: %d of %d pixels differ (%.2f%%)", verdict, r.NumDiffPixels, r.Width*r.Height, r.DiffPerc)
}

// Verdict returns true if the percentage of differing pixels is acceptable.
func Verdict(diffPerc float64) bool {
	return diffPerc <= MaxDiffPercentage
}

// Compare the current image with the reference image. The current image is
// resampled to the size of the reference image if necessary.
func Compare(reference image.Image, current image.Image, threshold float64) DiffResult {
	ref := NRGBA(reference)
	width := ref.Bounds().Dx()
	height := ref.Bounds().Dy()

	cur := Resample(current, width, height)
	diff := image.NewNRGBA(image.Rect(0, 0, width, height))

	res := DiffResult{
		Width:  width,
		Height: height,
		Diff:   diff,
	}

	if width*height == 0 {
		res.Pass = true
		return res
	}

	res.NumDiffPixels = CountDiffPixels(ref, cur, diff, threshold)
	res.DiffPerc = float64(res.NumDiffPixels) / float64(width*height) * 100
	res.Pass = Verdict(res.DiffPerc)

	return res
}

// Comparator compares images against a named reference image. The reference
// image is loaded once on first use.
type Comparator struct {
	loader    Loader
	name      string
	threshold float64

	loaded bool
	ref    image.Image
	err    error
}

// NewComparator is the preferred method of initialisation for the Comparator
// type. A negative threshold means DefaultThreshold.
func NewComparator(loader Loader, name string, threshold float64) *Comparator {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &Comparator{
		loader:    loader,
		name:      name,
		threshold: threshold,
	}
}

// Name returns the name of the reference image.
func (c *Comparator) Name() string {
	return c.name
}

// Threshold returns the per-pixel threshold used by the comparator.
func (c *Comparator) Threshold() float64 {
	return c.threshold
}

// Reference returns the reference image. The result of the first call,
// including any error, is returned by every subsequent call.
func (c *Comparator) Reference(ctx context.Context) (image.Image, error) {
	if c.loaded {
		return c.ref, c.err
	}

	if c.loader == nil {
		c.err = fmt.Errorf("regression: %w: no loader", ErrReferenceUnavailable)
	} else {
		c.ref, c.err = c.loader.Load(ctx, c.name)
	}

	// a cancelled context is not a property of the reference image and is
	// not cached
	if c.err != nil && ctx.Err() != nil {
		err := c.err
		c.ref, c.err = nil, nil
		return nil, fmt.Errorf("regression: %w", err)
	}

	c.loaded = true
	return c.ref, c.err
}

// Compare the current image with the reference image.
func (c *Comparator) Compare(ctx context.Context, current image.Image) (DiffResult, error) {
	ref, err := c.Reference(ctx)
	if err != nil {
		return DiffResult{}, err
	}
	return Compare(ref, current, c.threshold), nil
}
