package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeTrueColor    = 2
	TGATypeGray         = 3
	TGATypeTrueColorRLE = 10
	TGATypeGrayRLE      = 11
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func (h tgaHeader) gray() bool {
	return h.imageType == TGATypeGray || h.imageType == TGATypeGrayRLE
}

func (h tgaHeader) rle() bool {
	return h.imageType == TGATypeTrueColorRLE || h.imageType == TGATypeGrayRLE
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errTGATruncated
	}

	h := tgaHeader{
		idLength:  int(data[0]),
		imageType: data[2],
		width:     int(data[12]) | int(data[13])<<8,
		height:    int(data[14]) | int(data[15])<<8,
		bpp:       int(data[16]),
		// Bit 5 of the descriptor: rows stored top to bottom.
		topToBottom: data[17]&0x20 != 0,
	}

	if data[1] != 0 {
		return h, errors.New("color-mapped TGA not supported")
	}
	switch h.imageType {
	case TGATypeTrueColor, TGATypeTrueColorRLE:
		if h.bpp != 24 && h.bpp != 32 {
			return h, fmt.Errorf("unsupported TGA bit depth %d", h.bpp)
		}
	case TGATypeGray, TGATypeGrayRLE:
		if h.bpp != 8 {
			return h, fmt.Errorf("unsupported grayscale TGA bit depth %d", h.bpp)
		}
	default:
		return h, fmt.Errorf("unsupported TGA type %d", h.imageType)
	}
	return h, nil
}

// DecodeTGAConfig returns the dimensions of a TGA image without decoding
// its pixels.
func DecodeTGAConfig(data []byte) (image.Config, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return image.Config{}, err
	}
	model := color.RGBAModel
	if h.gray() {
		model = color.GrayModel
	}
	return image.Config{ColorModel: model, Width: h.width, Height: h.height}, nil
}

// DecodeTGA decodes an uncompressed or RLE compressed true-color or
// grayscale TGA image.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := &tgaDecoder{
		h:   h,
		src: data[offset:],
		img: image.NewRGBA(image.Rect(0, 0, h.width, h.height)),
	}
	if h.rle() {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	h     tgaHeader
	src   []byte
	pos   int
	pixel int // Next pixel, in file order
	img   *image.RGBA
}

func (d *tgaDecoder) bytesPerPixel() int {
	return d.h.bpp / 8
}

// read returns the next pixel value from the stream.
func (d *tgaDecoder) read() (color.RGBA, error) {
	n := d.bytesPerPixel()
	if d.pos+n > len(d.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+n]
	d.pos += n

	if d.h.gray() {
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}, nil
	}
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if n == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the next pixel position.
func (d *tgaDecoder) put(c color.RGBA) {
	x := d.pixel % d.h.width
	y := d.pixel / d.h.width
	if !d.h.topToBottom {
		y = d.h.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) total() int {
	return d.h.width * d.h.height
}

func (d *tgaDecoder) decodeRaw() error {
	for d.pixel < d.total() {
		c, err := d.read()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

// decodeRLE handles run-length packets (high bit set, one pixel repeated)
// and raw packets (count literal pixels).
func (d *tgaDecoder) decodeRLE() error {
	for d.pixel < d.total() {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := d.read()
			if err != nil {
				return err
			}
			for i := 0; i < count && d.pixel < d.total(); i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.pixel < d.total(); i++ {
			c, err := d.read()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
