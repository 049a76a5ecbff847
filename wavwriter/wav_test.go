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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/jetsetilly/gfxbench/test"
	"github.com/jetsetilly/gfxbench/wavwriter"
)

func TestWrite(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "session.wav")

	aw, err := wavwriter.New(filename, 8000)
	test.DemandSuccess(t, err)

	samples := make([]float32, 800)
	for i := range samples {
		samples[i] = 0.5
	}
	test.DemandSuccess(t, aw.Mix(samples, 8000))

	// resampled from 16000 to 8000 halves the number of samples
	test.DemandSuccess(t, aw.Mix(make([]float32, 1600), 16000))
	test.ExpectEquality(t, aw.Len(), 1600)

	test.ExpectFailure(t, aw.Mix(samples, 0))

	test.DemandSuccess(t, aw.EndMixing())

	f, err := os.Open(filename)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, dec.SampleRate, uint32(8000))
	test.ExpectEquality(t, dec.NumChans, uint16(1))

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(buf.Data), 1600)
	test.ExpectEquality(t, buf.Data[0], 16383)
	test.ExpectEquality(t, buf.Data[1599], 0)
}

func TestNoFilename(t *testing.T) {
	_, err := wavwriter.New("", 0)
	test.ExpectFailure(t, err)
}
