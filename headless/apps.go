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
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"time"

	"github.com/jetsetilly/gfxbench/audiohook"
	"github.com/jetsetilly/gfxbench/frameloop"
	"github.com/jetsetilly/gfxbench/harness"
	"github.com/jetsetilly/gfxbench/recorder"
)

// ErrUnknownApp is returned by NewApp() when there is no application with the
// name.
var ErrUnknownApp = errors.New("unknown application")

// ErrNoCanvas is returned by an application's Start() function when the
// surface is not a headless Canvas.
var ErrNoCanvas = errors.New("surface is not a headless canvas")

// Apps are the built-in applications.
var Apps = map[string]func() harness.App{
	"spinner": func() harness.App { return NewSpinner() },
	"solid":   func() harness.App { return NewSolid(Cornflower) },
}

// AppNames returns the names of the built-in applications in sorted order.
func AppNames() []string {
	n := make([]string, 0, len(Apps))
	for k := range Apps {
		n = append(n, k)
	}
	slices.Sort(n)
	return n
}

// NewApp creates the named built-in application.
func NewApp(name string) (harness.App, error) {
	f, ok := Apps[name]
	if !ok {
		return nil, fmt.Errorf("headless: %w: %s", ErrUnknownApp, name)
	}
	return f(), nil
}

func canvas(env *harness.Env) (*Canvas, error) {
	c, ok := env.Surface.(*Canvas)
	if !ok {
		return nil, fmt.Errorf("headless: %w", ErrNoCanvas)
	}
	return c, nil
}

// Cornflower is the colour of the solid application.
var Cornflower = color.NRGBA{R: 100, G: 149, B: 237, A: 255}

// Solid fills the canvas with a single colour on every frame.
type Solid struct {
	col    color.Color
	canvas *Canvas
	loop   *harness.Loop
}

// NewSolid is the preferred method of initialisation for the Solid type.
func NewSolid(col color.Color) *Solid {
	return &Solid{col: col}
}

func (s *Solid) Start(env *harness.Env) error {
	c, err := canvas(env)
	if err != nil {
		return err
	}
	s.canvas = c
	s.loop = env.Loop
	s.loop.Request(s.render)
	return nil
}

func (s *Solid) render(_ time.Duration, _ *frameloop.Frame) {
	s.canvas.Fill(s.col)
	s.loop.Request(s.render)
}

// palette of the spinner application. the bar changes colour with every mouse
// button press
var palette = []color.NRGBA{
	{R: 255, G: 255, B: 255, A: 255},
	{R: 255, G: 64, B: 64, A: 255},
	{R: 64, G: 255, B: 64, A: 255},
	{R: 64, G: 64, B: 255, A: 255},
}

var (
	background = color.NRGBA{R: 16, G: 16, B: 32, A: 255}
	starColour = color.NRGBA{R: 200, G: 200, B: 160, A: 255}
)

const (
	numStars = 64

	// rotations per second
	defaultSpeed = 0.25

	// frames between audio and texture activity
	beepInterval    = 60
	textureInterval = 100
)

// Spinner draws a rotating bar over a field of stars. Each frame is rendered
// with two callbacks, one to update the state and one to draw.
//
// A mouse button press changes the colour of the bar and the mouse wheel
// changes the speed of rotation. The bar stops if the space key is pressed.
type Spinner struct {
	env    *harness.Env
	canvas *Canvas
	loop   *harness.Loop

	stars []image.Point
	beep  audiohook.Clip

	angle  float64
	speed  float64
	paused bool
	colour int
	views  int
	frames int
}

// NewSpinner is the preferred method of initialisation for the Spinner type.
func NewSpinner() *Spinner {
	return &Spinner{speed: defaultSpeed}
}

// tone returns a sine wave clip
func tone(freq float64, d time.Duration, rate int) audiohook.Clip {
	n := int(d.Seconds() * float64(rate))
	c := audiohook.Clip{Name: "beep", SampleRate: rate, Samples: make([]float32, n)}
	for i := range c.Samples {
		c.Samples[i] = float32(0.25 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return c
}

func (s *Spinner) Start(env *harness.Env) error {
	c, err := canvas(env)
	if err != nil {
		return err
	}
	s.env = env
	s.canvas = c
	s.loop = env.Loop

	b := c.Bounds()
	s.stars = make([]image.Point, numStars)
	for i := range s.stars {
		s.stars[i] = image.Pt(env.Random.Intn(b.Dx()), env.Random.Intn(b.Dy()))
	}

	s.beep = tone(440, 50*time.Millisecond, 44100)

	// initial texture upload
	env.GL.TexImage2D()
	env.Console.Log("spinner: started", b.Dx(), b.Dy())

	s.request()
	return nil
}

// EnterXR implements the harness.PresentationReceiver interface.
func (s *Spinner) EnterXR(loop *harness.Loop) {
	s.env.Console.Log("spinner: entering xr")
	s.loop = loop
	s.request()
}

// HandleEvent implements the harness.EventReceiver interface.
func (s *Spinner) HandleEvent(ev recorder.Event) {
	switch ev.Type {
	case recorder.MouseDown:
		s.colour = (s.colour + 1) % len(palette)
	case recorder.Wheel:
		s.speed = max(0, s.speed-ev.Y*0.01)
	case recorder.KeyDown:
		if ev.Code == "Space" {
			s.paused = !s.paused
		}
	}
}

func (s *Spinner) request() {
	s.loop.Request(s.update)
	s.loop.Request(s.draw)
}

func (s *Spinner) update(now time.Duration, frame *frameloop.Frame) {
	if !s.paused {
		s.angle = math.Mod(s.angle+s.speed*2*math.Pi/60, 2*math.Pi)
	}

	if frame != nil && frame.Viewer != nil {
		s.views = len(frame.Viewer.Views)
	}

	if s.frames%beepInterval == 0 {
		if err := s.env.Audio.Play(s.beep); err != nil {
			s.env.Console.Warn(err)
		}
	}
	if s.frames > 0 && s.frames%textureInterval == 0 {
		s.env.GL.TexImage2D()
	}

	s.frames++
	s.loop.Request(s.update)
}

func (s *Spinner) draw(now time.Duration, frame *frameloop.Frame) {
	s.canvas.Draw(func(img *image.NRGBA) {
		b := img.Bounds()
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i] = background.R
			img.Pix[i+1] = background.G
			img.Pix[i+2] = background.B
			img.Pix[i+3] = background.A
		}

		for _, p := range s.stars {
			img.SetNRGBA(p.X, p.Y, starColour)
		}

		// each view is rendered side by side
		views := max(1, s.views)
		w := b.Dx() / views
		for v := range views {
			s.bar(img, image.Rect(v*w, 0, (v+1)*w, b.Dy()))
		}
	})
	s.loop.Request(s.draw)
}

// bar draws the spinning bar inside the rectangle
func (s *Spinner) bar(img *image.NRGBA, r image.Rectangle) {
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	length := float64(min(r.Dx(), r.Dy())) / 3
	col := palette[s.colour]

	sin, cos := math.Sincos(s.angle)
	for d := -length; d <= length; d += 0.5 {
		x := cx + cos*d
		y := cy + sin*d
		for t := -1.5; t <= 1.5; t += 0.5 {
			p := image.Pt(int(x-sin*t), int(y+cos*t))
			if p.In(r) {
				img.SetNRGBA(p.X, p.Y, col)
			}
		}
	}
}
