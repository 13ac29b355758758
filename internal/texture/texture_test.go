package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func tgaHeader(kind byte, w, h int, bpp, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = kind
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// twoRows is a 1x2 image, red on top and blue below.
func twoRows() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	return img
}

func TestDecodeTGAUncompressed(t *testing.T) {
	data := tgaHeader(tgaTrueColor, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom row: red, green
		255, 0, 0, 255, 255, 255, // top row: blue, white
	)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rgba(img.At(0, 0)))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba(img.At(1, 0)))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba(img.At(0, 1)))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, rgba(img.At(1, 1)))
}

func TestDecodeTGARLE(t *testing.T) {
	data := tgaHeader(tgaTrueColorRLE, 4, 1, 32, 0x20)
	data = append(data,
		0x82, 0, 0, 255, 255, // run of 3 red
		0x00, 255, 0, 0, 255, // one raw blue
	)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba(img.At(x, 0)))
	}
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rgba(img.At(3, 0)))
}

func TestDecodeTGAGray(t *testing.T) {
	data := append(tgaHeader(tgaGray, 1, 1, 8, 0), 77)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 77, G: 77, B: 77, A: 255}, rgba(img.At(0, 0)))
}

func TestDecodeTGAErrors(t *testing.T) {
	colorMapped := tgaHeader(tgaTrueColor, 1, 1, 24, 0)
	colorMapped[1] = 1
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", colorMapped},
		{"unsupported type", tgaHeader(1, 1, 1, 8, 0)},
		{"unsupported depth", tgaHeader(tgaTrueColor, 1, 1, 16, 0)},
		{"gray depth", tgaHeader(tgaGray, 1, 1, 24, 0)},
		{"truncated pixels", append(tgaHeader(tgaTrueColor, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(tgaTrueColorRLE, 2, 2, 24, 0), 0x83, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestFormat(t *testing.T) {
	var bmpBuf bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpBuf, twoRows()))

	assert.Equal(t, "png", Format(encodePNG(t, twoRows()), "x.bin"))
	assert.Equal(t, "bmp", Format(bmpBuf.Bytes(), "x"))
	assert.Equal(t, "tga", Format([]byte{0, 0, 2}, "Tex/WOOD.TGA"))
	assert.Equal(t, "", Format([]byte("hello"), "notes.txt"))
}

func TestDecode(t *testing.T) {
	img, format, err := Decode(encodePNG(t, twoRows()), "a.png", DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba(img.At(0, 0)))

	var bmpBuf bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpBuf, twoRows()))
	img, format, err = Decode(bmpBuf.Bytes(), "a.bmp", DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "bmp", format)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rgba(img.At(0, 1)))

	_, _, err = Decode([]byte("plain text"), "a.txt", DecodeOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeFlipY(t *testing.T) {
	img, _, err := Decode(encodePNG(t, twoRows()), "a.png", DecodeOptions{FlipY: true})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rgba(img.At(0, 0)))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba(img.At(0, 1)))
}

func TestDecodeColorKey(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 255, B: 255, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 255, G: 128, B: 255, A: 255})

	img, _, err := Decode(encodePNG(t, src), "a.png", DecodeOptions{ColorKey: true})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, rgba(img.At(0, 0)))
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 255, A: 255}, rgba(img.At(1, 0)))
}
