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

package headless

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Canvas is the surface applications running on the headless host render to.
// Canvas is safe for concurrent use.
type Canvas struct {
	crit sync.Mutex
	img  *image.NRGBA
}

// NewCanvas is the preferred method of initialisation for the Canvas type.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// Bounds returns the size of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Draw calls the function with exclusive access to the canvas image.
func (c *Canvas) Draw(f func(img *image.NRGBA)) {
	c.crit.Lock()
	defer c.crit.Unlock()
	f(c.img)
}

// Fill the canvas with a colour.
func (c *Canvas) Fill(col color.Color) {
	c.Draw(func(img *image.NRGBA) {
		draw.Draw(img, img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
	})
}

// Snapshot returns a copy of the canvas. Implements the harness.Surface
// interface.
func (c *Canvas) Snapshot() (image.Image, error) {
	c.crit.Lock()
	defer c.crit.Unlock()
	cp := image.NewNRGBA(c.img.Bounds())
	copy(cp.Pix, c.img.Pix)
	return cp, nil
}
