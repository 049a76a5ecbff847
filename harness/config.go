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

package harness

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jetsetilly/gfxbench/random"
	"github.com/jetsetilly/gfxbench/regression"
	"github.com/jetsetilly/gfxbench/result"
)

// Default values of the session configuration.
const (
	DefaultNumFrames = 1000
	DefaultWidth     = 800
	DefaultHeight    = 600
)

// Config of a benchmark session.
type Config struct {
	TestID   string `validate:"required"`
	TestUUID string
	Revision string

	NumFrames  int `validate:"gt=0"`
	RandomSeed uint64

	Width  int `validate:"gt=0"`
	Height int `validate:"gt=0"`

	// name of the reference image if it is different to the test id
	ReferenceImage            string
	SkipReferenceImage        bool
	ReferenceCompareThreshold float64 `validate:"gte=0,lte=1"`

	AutoEnterXR          bool
	MandatoryAutoEnterXR bool

	// name of the input recording to replay. Replay must also be true for the
	// recording to be used
	Input  string
	Replay bool

	// record live input
	Recording bool

	// forward console output to the reporter
	SendLog bool
}

// DefaultConfig returns the default configuration for the test.
func DefaultConfig(testID string) Config {
	return Config{
		TestID:                    testID,
		Revision:                  result.DefaultRevision,
		NumFrames:                 DefaultNumFrames,
		RandomSeed:                random.DefaultSeed,
		Width:                     DefaultWidth,
		Height:                    DefaultHeight,
		ReferenceCompareThreshold: regression.DefaultThreshold,
	}
}

// ReferenceName returns the name of the reference image.
func (cfg Config) ReferenceName() string {
	if cfg.ReferenceImage != "" {
		return cfg.ReferenceImage
	}
	return cfg.TestID
}

// Identity returns the session identity used in results.
func (cfg Config) Identity() result.Identity {
	return result.Identity{
		TestID:    cfg.TestID,
		TestUUID:  cfg.TestUUID,
		Revision:  cfg.Revision,
		NumFrames: cfg.NumFrames,
	}
}

var validate = validator.New()

// Validate checks the configuration.
func (cfg Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("harness: %w", err)
	}
	return nil
}

func has(q url.Values, key string) bool {
	_, ok := q[key]
	return ok
}

// ApplyQuery changes the configuration according to the query parameters of a
// test URL. Flags are enabled by the presence of the parameter regardless of
// its value.
func (cfg *Config) ApplyQuery(q url.Values) error {
	atoi := func(key string, v *int) error {
		if !has(q, key) {
			return nil
		}
		n, err := strconv.Atoi(q.Get(key))
		if err != nil {
			return fmt.Errorf("harness: query parameter %s: %w", key, err)
		}
		*v = n
		return nil
	}

	if err := atoi("num-frames", &cfg.NumFrames); err != nil {
		return err
	}
	if err := atoi("width", &cfg.Width); err != nil {
		return err
	}
	if err := atoi("height", &cfg.Height); err != nil {
		return err
	}

	if has(q, "seed") {
		n, err := strconv.ParseUint(q.Get("seed"), 10, 64)
		if err != nil {
			return fmt.Errorf("harness: query parameter seed: %w", err)
		}
		cfg.RandomSeed = n
	}

	if v := q.Get("test-uuid"); v != "" {
		cfg.TestUUID = v
	}
	if v := q.Get("reference-image"); v != "" {
		cfg.ReferenceImage = v
	}

	cfg.SkipReferenceImage = cfg.SkipReferenceImage || has(q, "skip-reference-image-test")
	cfg.AutoEnterXR = cfg.AutoEnterXR || has(q, "autoenter-xr")
	cfg.MandatoryAutoEnterXR = cfg.MandatoryAutoEnterXR || has(q, "mandatory-autoenter-xr")
	cfg.Replay = cfg.Replay || has(q, "replay")
	cfg.Recording = cfg.Recording || has(q, "recording")

	return nil
}

// ParseURL applies the query parameters of the URL to a copy of the base
// configuration.
func ParseURL(rawURL string, base Config) (Config, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return base, fmt.Errorf("harness: %w", err)
	}
	cfg := base
	if err := cfg.ApplyQuery(u.Query()); err != nil {
		return base, err
	}
	return cfg, nil
}
