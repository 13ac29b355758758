package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"path"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ErrUnsupportedFormat is returned for data no decoder recognizes.
var ErrUnsupportedFormat = errors.New("texture: unsupported image format")

// DecodeOptions are post-processing steps applied after decoding.
type DecodeOptions struct {
	// FlipY mirrors the image vertically.
	FlipY bool
	// ColorKey turns magenta (255, 0, 255) pixels fully transparent.
	ColorKey bool
}

// Format sniffs the image format of data. TGA has no signature and is
// recognized by the name's extension only.
func Format(data []byte, name string) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown && filetype.IsImage(data) {
		return kind.Extension
	}
	if strings.EqualFold(path.Ext(name), ".tga") {
		return "tga"
	}
	return ""
}

// Decode decodes data and applies opts. name is only used to recognize
// formats without a signature.
func Decode(data []byte, name string, opts DecodeOptions) (image.Image, string, error) {
	format := Format(data, name)
	var (
		img image.Image
		err error
	)
	switch format {
	case "":
		return nil, "", ErrUnsupportedFormat
	case "tga":
		img, err = DecodeTGA(data)
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
		if errors.Is(err, image.ErrFormat) {
			err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
		}
	}
	if err != nil {
		return nil, format, err
	}

	if opts.ColorKey {
		img = applyColorKey(img)
	}
	if opts.FlipY {
		img = transform.FlipV(img)
	}
	return img, format, nil
}

// isColorKey matches magenta with some tolerance for lossy encoders.
func isColorKey(r, g, b uint8) bool {
	return r >= 250 && g <= 10 && b >= 250
}

// applyColorKey returns an RGBA copy of img with magenta pixels cleared to
// transparent black.
func applyColorKey(img image.Image) *image.RGBA {
	rgba := clone.AsRGBA(img)
	for i := 0; i+3 < len(rgba.Pix); i += 4 {
		if isColorKey(rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2]) {
			rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2], rgba.Pix[i+3] = 0, 0, 0, 0
		}
	}
	return rgba
}
