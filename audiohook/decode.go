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

package audiohook

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrUnsupportedFormat is returned by Decode() for files that are not WAV or
// MP3 files.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Clip is a decoded audio asset.
type Clip struct {
	Name       string
	SampleRate int

	// mono samples in the range -1.0 to 1.0
	Samples []float32
}

// Duration returns the length of the clip.
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// Decode the named audio asset. The format is decided by the file extension.
func Decode(name string, r io.ReadSeeker) (Clip, error) {
	c := Clip{Name: name}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		dec := wav.NewDecoder(r)
		if dec == nil {
			return c, fmt.Errorf("audiohook: wav: error decoding")
		}

		if !dec.IsValidFile() {
			return c, fmt.Errorf("audiohook: wav: not a valid wav file")
		}

		// load all data at once
		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return c, fmt.Errorf("audiohook: wav: %w", err)
		}

		numChans := int(dec.NumChans)
		if numChans < 1 {
			numChans = 1
		}

		if dec.BitDepth < 8 {
			return c, fmt.Errorf("audiohook: wav: unsupported bit depth: %d", dec.BitDepth)
		}

		// samples of 8bit wav files are unsigned
		var offset, scale float32
		if dec.BitDepth == 8 {
			offset = 128
			scale = 128
		} else {
			scale = float32(int(1) << (dec.BitDepth - 1))
		}

		// copy first channel only of data stream
		c.Samples = make([]float32, 0, len(buf.Data)/numChans)
		for i := 0; i < len(buf.Data); i += numChans {
			c.Samples = append(c.Samples, (float32(buf.Data[i])-offset)/scale)
		}

		c.SampleRate = int(dec.SampleRate)

	case ".mp3":
		dec, err := mp3.NewDecoder(r)
		if err != nil {
			return c, fmt.Errorf("audiohook: mp3: %w", err)
		}

		chunk := make([]byte, 4096)
		for {
			n, err := dec.Read(chunk)

			// the stream is always 16bit little endian stereo. a sample is
			// therefore four bytes and we only want the left channel
			for i := 0; i+1 < n; i += 4 {
				v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
				c.Samples = append(c.Samples, float32(v)/32768)
			}

			if err == io.EOF {
				break
			}
			if err != nil {
				return c, fmt.Errorf("audiohook: mp3: %w", err)
			}
		}

		c.SampleRate = dec.SampleRate()

	default:
		return c, fmt.Errorf("audiohook: %w: %s", ErrUnsupportedFormat, name)
	}

	return c, nil
}
