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
	"image"
	"math"
)

// colours used in the diff image
var (
	diffColour      = [3]uint8{255, 0, 0}
	antialiasColour = [3]uint8{255, 255, 0}
)

// opacity of the unchanged pixels in the diff image
const diffAlpha = 0.1

// the maximum possible value of colourDelta()
const maxColourDelta = 35215

// CountDiffPixels compares two images of equal size and returns the number of
// pixels that differ by more than the threshold. The threshold is in the range
// 0.0 to 1.0 with smaller values making the comparison more sensitive.
//
// Anti-aliased pixels are not counted. If diff is not nil it must be the same
// size as the two images and it will be filled with a visualisation of the
// differences.
//
// Panics if the images are of different sizes.
func CountDiffPixels(img1, img2 *image.NRGBA, diff *image.NRGBA, threshold float64) int {
	bounds := img1.Bounds()
	if bounds.Size() != img2.Bounds().Size() {
		panic("regression: images must be the same size")
	}
	if diff != nil && diff.Bounds().Size() != bounds.Size() {
		panic("regression: diff image must be the same size as the compared images")
	}

	width := bounds.Dx()
	height := bounds.Dy()
	p1 := pixels{img: img1, width: width, height: height}
	p2 := pixels{img: img2, width: width, height: height}

	maxDelta := maxColourDelta * threshold * threshold

	var count int
	for y := range height {
		for x := range width {
			delta := colourDelta(p1, p2, x, y, x, y, false)

			if math.Abs(delta) > maxDelta {
				if antialiased(p1, p2, x, y) || antialiased(p2, p1, x, y) {
					if diff != nil {
						drawPixel(diff, x, y, antialiasColour[0], antialiasColour[1], antialiasColour[2])
					}
				} else {
					if diff != nil {
						drawPixel(diff, x, y, diffColour[0], diffColour[1], diffColour[2])
					}
					count++
				}
			} else if diff != nil {
				r, g, b, a := p1.at(x, y)
				v := uint8(blend(rgb2y(r, g, b), diffAlpha*a/255))
				drawPixel(diff, x, y, v, v, v)
			}
		}
	}

	return count
}

// pixels gives access to the pixel data of an image relative to the image's
// origin
type pixels struct {
	img    *image.NRGBA
	width  int
	height int
}

func (p pixels) offset(x, y int) int {
	b := p.img.Bounds()
	return p.img.PixOffset(b.Min.X+x, b.Min.Y+y)
}

func (p pixels) at(x, y int) (float64, float64, float64, float64) {
	i := p.offset(x, y)
	s := p.img.Pix[i : i+4 : i+4]
	return float64(s[0]), float64(s[1]), float64(s[2]), float64(s[3])
}

func (p pixels) same(x1, y1, x2, y2 int) bool {
	i := p.offset(x1, y1)
	j := p.offset(x2, y2)
	return p.img.Pix[i] == p.img.Pix[j] &&
		p.img.Pix[i+1] == p.img.Pix[j+1] &&
		p.img.Pix[i+2] == p.img.Pix[j+2] &&
		p.img.Pix[i+3] == p.img.Pix[j+3]
}

func drawPixel(img *image.NRGBA, x, y int, r, g, b uint8) {
	bb := img.Bounds()
	i := img.PixOffset(bb.Min.X+x, bb.Min.Y+y)
	s := img.Pix[i : i+4 : i+4]
	s[0] = r
	s[1] = g
	s[2] = b
	s[3] = 255
}

// blend a colour component with white
func blend(c, a float64) float64 {
	return 255 + (c-255)*a
}

func rgb2y(r, g, b float64) float64 {
	return r*0.29889531 + g*0.58662247 + b*0.11448223
}

func rgb2i(r, g, b float64) float64 {
	return r*0.59597799 - g*0.27417610 - b*0.32180189
}

func rgb2q(r, g, b float64) float64 {
	return r*0.21147017 - g*0.52261711 + b*0.31114694
}

// colourDelta returns the squared YIQ distance between two pixels. the result
// is negative if the first pixel is brighter than the second. if yOnly is true
// then only the difference in brightness is returned
func colourDelta(p1, p2 pixels, x1, y1, x2, y2 int, yOnly bool) float64 {
	r1, g1, b1, a1 := p1.at(x1, y1)
	r2, g2, b2, a2 := p2.at(x2, y2)

	if a1 == a2 && r1 == r2 && g1 == g2 && b1 == b2 {
		return 0
	}

	if a1 < 255 {
		a1 /= 255
		r1 = blend(r1, a1)
		g1 = blend(g1, a1)
		b1 = blend(b1, a1)
	}

	if a2 < 255 {
		a2 /= 255
		r2 = blend(r2, a2)
		g2 = blend(g2, a2)
		b2 = blend(b2, a2)
	}

	yy1 := rgb2y(r1, g1, b1)
	yy2 := rgb2y(r2, g2, b2)
	y := yy1 - yy2

	if yOnly {
		return y
	}

	i := rgb2i(r1, g1, b1) - rgb2i(r2, g2, b2)
	q := rgb2q(r1, g1, b1) - rgb2q(r2, g2, b2)

	delta := 0.5053*y*y + 0.299*i*i + 0.1957*q*q
	if yy1 > yy2 {
		return -delta
	}
	return delta
}

// neighbourhood of a pixel clamped to the image. edge reports whether the
// pixel is on the edge of the image
func neighbourhood(p pixels, x, y int) (x0, y0, x1, y1 int, edge bool) {
	x0 = max(x-1, 0)
	y0 = max(y-1, 0)
	x1 = min(x+1, p.width-1)
	y1 = min(y+1, p.height-1)
	edge = x == x0 || x == x1 || y == y0 || y == y1
	return x0, y0, x1, y1, edge
}

// antialiased returns true if the pixel at x,y in img is likely to be part of
// an anti-aliased edge. other is the image being compared against
func antialiased(img, other pixels, x, y int) bool {
	x0, y0, x1, y1, edge := neighbourhood(img, x, y)

	zeroes := 0
	if edge {
		zeroes = 1
	}

	var minDelta, maxDelta float64
	var minX, minY, maxX, maxY int

	for nx := x0; nx <= x1; nx++ {
		for ny := y0; ny <= y1; ny++ {
			if nx == x && ny == y {
				continue
			}

			// brightness delta between the pixel and its neighbour
			delta := colourDelta(img, img, x, y, nx, ny, true)

			if delta == 0 {
				zeroes++
				// more than two identical neighbours means the pixel is not on
				// an edge
				if zeroes > 2 {
					return false
				}
			} else if delta < minDelta {
				minDelta = delta
				minX = nx
				minY = ny
			} else if delta > maxDelta {
				maxDelta = delta
				maxX = nx
				maxY = ny
			}
		}
	}

	// no darker or no brighter neighbours
	if minDelta == 0 || maxDelta == 0 {
		return false
	}

	// the darkest or the brightest neighbour must be part of a flat area in
	// both images
	return (manySiblings(img, minX, minY) && manySiblings(other, minX, minY)) ||
		(manySiblings(img, maxX, maxY) && manySiblings(other, maxX, maxY))
}

// manySiblings returns true if the pixel has more than two identical
// neighbours
func manySiblings(p pixels, x, y int) bool {
	x0, y0, x1, y1, edge := neighbourhood(p, x, y)

	zeroes := 0
	if edge {
		zeroes = 1
	}

	for nx := x0; nx <= x1; nx++ {
		for ny := y0; ny <= y1; ny++ {
			if nx == x && ny == y {
				continue
			}
			if p.same(x, y, nx, ny) {
				zeroes++
			}
			if zeroes > 2 {
				return true
			}
		}
	}

	return false
}
