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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when mixing ends. It is therefore probably only suitable for testing
// purposes.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jetsetilly/gfxbench/logger"
)

// DefaultSampleRate is the sample rate used when no sample rate is specified.
const DefaultSampleRate = 44100

// output is 16bit mono
const (
	bitDepth    = 16
	numChannels = 1
	pcmFormat   = 1
	maxSample   = 32767
)

// WavWriter collects mono audio samples and writes them to a file.
type WavWriter struct {
	filename   string
	sampleRate int
	buffer     []int
}

// New is the preferred method of initialisation for the WavWriter type. A
// sample rate of zero or less means DefaultSampleRate.
func New(filename string, sampleRate int) (*WavWriter, error) {
	if filename == "" {
		return nil, fmt.Errorf("wavwriter: no filename")
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	aw := &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]int, 0),
	}
	return aw, nil
}

// Mix adds samples to the buffer. Samples are expected to be in the range -1.0
// to 1.0 and are clipped if they are not. Samples with a different sample rate
// to the writer are resampled.
func (aw *WavWriter) Mix(samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wavwriter: invalid sample rate: %d", sampleRate)
	}

	// nearest neighbour resampling
	n := len(samples)
	if sampleRate != aw.sampleRate {
		n = int(int64(len(samples)) * int64(aw.sampleRate) / int64(sampleRate))
	}

	for i := range n {
		j := i
		if sampleRate != aw.sampleRate {
			j = int(int64(i) * int64(sampleRate) / int64(aw.sampleRate))
		}
		v := min(max(samples[j], -1), 1)
		aw.buffer = append(aw.buffer, int(v*maxSample))
	}

	return nil
}

// Len returns the number of samples in the buffer.
func (aw *WavWriter) Len() int {
	return len(aw.buffer)
}

// EndMixing writes the buffer to the file.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, bitDepth, numChannels, pcmFormat)
	if enc == nil {
		return fmt.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	err = enc.Write(buf)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	return nil
}

// Reset discards all buffered samples.
func (aw *WavWriter) Reset() {
	aw.buffer = aw.buffer[:0]
}
