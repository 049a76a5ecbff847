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

package suite

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/gfxbench/harness"
	"github.com/jetsetilly/gfxbench/logger"
	"github.com/jetsetilly/gfxbench/regression"
	"github.com/jetsetilly/gfxbench/sequencer"
)

// Test is a single entry in the suite.
type Test struct {
	ID  string `yaml:"id" validate:"required"`
	URL string `yaml:"url"`

	// name of the application to run
	App string `yaml:"app" validate:"required"`

	NumFrames int `yaml:"numFrames" validate:"gte=0"`
	Width     int `yaml:"width" validate:"gte=0"`
	Height    int `yaml:"height" validate:"gte=0"`
	Revision  string `yaml:"revision"`

	ReferenceImage            string   `yaml:"referenceImage"`
	SkipReferenceImageTest    bool     `yaml:"skipReferenceImageTest"`
	ReferenceCompareThreshold *float64 `yaml:"referenceCompareThreshold" validate:"omitempty,gte=0,lte=1"`

	// input recording, relative to the input folder
	Input string `yaml:"input"`

	SendLog              bool `yaml:"sendLog"`
	AutoEnterXR          bool `yaml:"autoEnterXR"`
	MandatoryAutoEnterXR bool `yaml:"mandatoryAutoEnterXR"`
}

// Suite of tests.
type Suite struct {
	ReferenceImagesFolder string `yaml:"referenceImagesFolder"`
	InputFolder           string `yaml:"inputFolder"`
	Tests                 []Test `yaml:"tests" validate:"required,min=1,dive"`

	// directory of the suite file
	dir string
}

var validate = validator.New()

// Load the suite file. A warning is logged for every test that requires a
// reference image that does not exist.
func Load(filename string) (*Suite, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("suite: %w", err)
	}

	s, err := Parse(data, filepath.Dir(filename))
	if err != nil {
		return nil, err
	}

	for _, id := range s.MissingReferences() {
		logger.Logf(logger.Allow, "suite", "reference image for %s not found in %s", id, s.ReferenceRoot())
	}

	return s, nil
}

// Parse suite data. Relative folders are resolved against the directory.
func Parse(data []byte, dir string) (*Suite, error) {
	var s Suite

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("suite: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("suite: %w", err)
	}

	seen := make(map[string]bool)
	for i := range s.Tests {
		t := &s.Tests[i]
		if seen[t.ID] {
			return nil, fmt.Errorf("suite: duplicate test id: %s", t.ID)
		}
		seen[t.ID] = true

		if t.URL == "" {
			t.URL = "/tests/" + url.PathEscape(t.ID)
		}
		if _, err := url.Parse(t.URL); err != nil {
			return nil, fmt.Errorf("suite: %s: %w", t.ID, err)
		}
	}

	s.dir = dir
	return &s, nil
}

func (s *Suite) resolve(folder string) string {
	if folder == "" || filepath.IsAbs(folder) {
		return folder
	}
	return filepath.Join(s.dir, folder)
}

// ReferenceRoot returns the folder containing the reference images.
func (s *Suite) ReferenceRoot() string {
	if s.ReferenceImagesFolder == "" {
		return s.resolve(".")
	}
	return s.resolve(s.ReferenceImagesFolder)
}

// InputRoot returns the folder containing input recordings.
func (s *Suite) InputRoot() string {
	if s.InputFolder == "" {
		return s.resolve(".")
	}
	return s.resolve(s.InputFolder)
}

// ReferenceLoader returns a loader for the reference images of the suite.
func (s *Suite) ReferenceLoader() regression.FSLoader {
	return regression.FSLoader{FS: os.DirFS(s.ReferenceRoot())}
}

// MissingReferences returns the IDs of the tests that require a reference
// image that does not exist.
func (s *Suite) MissingReferences() []string {
	l := s.ReferenceLoader()

	var missing []string
	for _, t := range s.Tests {
		if t.SkipReferenceImageTest {
			continue
		}
		name := t.ReferenceImage
		if name == "" {
			name = t.ID
		}
		if !l.Exists(name) {
			missing = append(missing, t.ID)
		}
	}
	return missing
}

// Lookup the test with the ID.
func (s *Suite) Lookup(id string) (Test, bool) {
	for _, t := range s.Tests {
		if t.ID == id {
			return t, true
		}
	}
	return Test{}, false
}

// LookupURL finds the test with the URL. Only the path of the URL is
// compared.
func (s *Suite) LookupURL(rawURL string) (Test, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Test{}, false
	}
	for _, t := range s.Tests {
		tu, err := url.Parse(t.URL)
		if err != nil {
			continue
		}
		if tu.Path == u.Path {
			return t, true
		}
	}
	return Test{}, false
}

// Entries returns the sequence of tests.
func (s *Suite) Entries() []sequencer.Entry {
	e := make([]sequencer.Entry, len(s.Tests))
	for i, t := range s.Tests {
		e[i] = sequencer.Entry{ID: t.ID, URL: t.URL}
	}
	return e
}

// Config returns the harness configuration of the test. The settings of the
// test are applied first followed by the query parameters of the URL. If the
// URL is empty the test's own URL is used.
func (s *Suite) Config(t Test, rawURL string) (harness.Config, error) {
	cfg := harness.DefaultConfig(t.ID)

	if t.NumFrames > 0 {
		cfg.NumFrames = t.NumFrames
	}
	if t.Width > 0 {
		cfg.Width = t.Width
	}
	if t.Height > 0 {
		cfg.Height = t.Height
	}
	if t.Revision != "" {
		cfg.Revision = t.Revision
	}
	if t.ReferenceCompareThreshold != nil {
		cfg.ReferenceCompareThreshold = *t.ReferenceCompareThreshold
	}
	cfg.ReferenceImage = t.ReferenceImage
	cfg.SkipReferenceImage = t.SkipReferenceImageTest
	cfg.Input = t.Input
	cfg.SendLog = t.SendLog
	cfg.AutoEnterXR = t.AutoEnterXR
	cfg.MandatoryAutoEnterXR = t.MandatoryAutoEnterXR

	if rawURL == "" {
		rawURL = t.URL
	}
	cfg, err := harness.ParseURL(rawURL, cfg)
	if err != nil {
		return cfg, fmt.Errorf("suite: %s: %w", t.ID, err)
	}
	return cfg, nil
}
