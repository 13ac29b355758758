package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("texture: truncated TGA data")

// DecodeTGA decodes uncompressed and RLE true-color (24/32 bit) and
// grayscale (8 bit) TGA images.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errTGATruncated
	}
	idLen := int(data[0])
	if data[1] != 0 {
		return nil, fmt.Errorf("texture: color-mapped TGA not supported")
	}
	kind := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topDown := data[17]&0x20 != 0

	gray := kind == tgaGray || kind == tgaGrayRLE
	switch {
	case kind != tgaTrueColor && kind != tgaTrueColorRLE && !gray:
		return nil, fmt.Errorf("texture: unsupported TGA type %d", kind)
	case gray && bpp != 8:
		return nil, fmt.Errorf("texture: unsupported grayscale TGA depth %d", bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("texture: unsupported TGA depth %d", bpp)
	}

	off := tgaHeaderSize + idLen
	if off > len(data) {
		return nil, errTGATruncated
	}
	src := data[off:]
	stride := bpp / 8
	pixel := func(p []byte) color.RGBA {
		if gray {
			return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}
		}
		c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
		if stride == 4 {
			c.A = p[3]
		}
		return c
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	total := width * height
	put := func(i int, c color.RGBA) {
		x, y := i%width, i/width
		if !topDown {
			y = height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	if kind == tgaTrueColor || kind == tgaGray {
		if len(src) < total*stride {
			return nil, errTGATruncated
		}
		for i := 0; i < total; i++ {
			put(i, pixel(src[i*stride:]))
		}
		return img, nil
	}

	i, pos := 0, 0
	for i < total {
		if pos >= len(src) {
			return nil, errTGATruncated
		}
		header := src[pos]
		pos++
		n := int(header&0x7f) + 1
		if header&0x80 != 0 {
			if pos+stride > len(src) {
				return nil, errTGATruncated
			}
			c := pixel(src[pos:])
			pos += stride
			for ; n > 0 && i < total; n-- {
				put(i, c)
				i++
			}
			continue
		}
		for ; n > 0 && i < total; n-- {
			if pos+stride > len(src) {
				return nil, errTGATruncated
			}
			put(i, pixel(src[pos:]))
			pos += stride
			i++
		}
	}
	return img, nil
}
