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
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// ErrReferenceUnavailable is wrapped by all errors caused by a reference image
// that could not be loaded or decoded.
var ErrReferenceUnavailable = errors.New("reference image unavailable")

// Loader implementations fetch the reference image with the specified name.
type Loader interface {
	Load(ctx context.Context, name string) (image.Image, error)
}

// Filename returns the filename of the reference image with the specified
// name.
func Filename(name string) string {
	return name + ".png"
}

// FSLoader loads reference images from a file system.
type FSLoader struct {
	FS fs.FS

	// directory in the file system containing the reference images
	Root string
}

func (l FSLoader) Load(ctx context.Context, name string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := path.Join(l.Root, Filename(name))
	f, err := l.FS.Open(p)
	if err != nil {
		return nil, fmt.Errorf("regression: %w: %w", ErrReferenceUnavailable, err)
	}
	defer f.Close()

	return decode(f)
}

// Exists returns true if the reference image for the name can be found.
func (l FSLoader) Exists(name string) bool {
	_, err := fs.Stat(l.FS, path.Join(l.Root, Filename(name)))
	return err == nil
}

// HTTPLoader loads reference images from a web server.
type HTTPLoader struct {
	BaseURL string

	// the client used for requests. if nil then http.DefaultClient is used
	Client *http.Client
}

func (l HTTPLoader) Load(ctx context.Context, name string) (image.Image, error) {
	u := fmt.Sprintf("%s/%s", strings.TrimSuffix(l.BaseURL, "/"), url.PathEscape(Filename(name)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("regression: %w: %w", ErrReferenceUnavailable, err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("regression: %w: %w", ErrReferenceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("regression: %w: %s: %s", ErrReferenceUnavailable, u, resp.Status)
	}

	return decode(resp.Body)
}

func decode(r io.Reader) (image.Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("regression: %w: %w", ErrReferenceUnavailable, err)
	}
	return img, nil
}

// WritePNG encodes the image as a PNG file.
func WritePNG(w io.Writer, img image.Image) error {
	err := png.Encode(w, img)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}
	return nil
}
