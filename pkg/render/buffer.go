package render

import(
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/emath"
)

var(
	ErrBadBuffer    = errors.New("bad buffer")
	ErrSizeMismatch = errors.New("source and destination sizes differ")
)

// Buffer is a packed, interleaved RGBA float32 image: 4 floats per
// pixel, row-major, row 0 at the top. Implements image.Image and
// hdr.Image, so the tonemappers and codecs can read it directly.
type Buffer struct {
	Pix    []float32
	Width  int
	Height int
}

func NewBuffer(w, h int) *Buffer {
	return &Buffer{Pix: make([]float32, w*h*4), Width: w, Height: h}
}

// Implement image.Image
func (b *Buffer)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (b *Buffer)Bounds() image.Rectangle       { return image.Rect(0, 0, b.Width, b.Height) }
func (b *Buffer)At(x, y int) color.Color       { return b.HDRAt(x, y) }

// Implement hdr.Image
func (b *Buffer)HDRAt(x, y int) hdrcolor.Color { return ecolor.ToHDR(b.Pixel(x, y).RGB) }
func (b *Buffer)Size() int                     { return b.Width * b.Height }

func (b *Buffer)String() string {
	return fmt.Sprintf("Buffer[%dx%d]", b.Width, b.Height)
}

// Validate checks the layout invariant: positive dimensions, and exactly
// four floats per pixel.
func (b *Buffer)Validate() error {
	if b == nil {
		return fmt.Errorf("nil buffer: %w", ErrBadBuffer)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("dimensions %dx%d: %w", b.Width, b.Height, ErrBadBuffer)
	}
	if len(b.Pix) != b.Width * b.Height * 4 {
		return fmt.Errorf("%dx%d needs %d floats, have %d: %w", b.Width, b.Height,
			b.Width * b.Height * 4, len(b.Pix), ErrBadBuffer)
	}
	return nil
}

func (b *Buffer)offset(x, y int) int { return (y * b.Width + x) * 4 }

func (b *Buffer)Pixel(x, y int) drt.Pixel {
	i := b.offset(x, y)
	p := b.Pix[i:i+4:i+4]
	return drt.Pixel{
		RGB: emath.Vec3{float64(p[0]), float64(p[1]), float64(p[2])},
		A:   float64(p[3]),
	}
}

func (b *Buffer)SetPixel(x, y int, px drt.Pixel) {
	i := b.offset(x, y)
	p := b.Pix[i:i+4:i+4]
	p[0], p[1], p[2], p[3] = float32(px.RGB[0]), float32(px.RGB[1]), float32(px.RGB[2]), float32(px.A)
}

// FromImage converts any image into a float buffer. HDR images keep their
// range; integer images come in as [0,1], un-premultiplied.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := NewBuffer(bounds.Dx(), bounds.Dy())
	for y:=0; y<b.Height; y++ {
		for x:=0; x<b.Width; x++ {
			rgb, a := ecolor.FromColor(img.At(x + bounds.Min.X, y + bounds.Min.Y))
			b.SetPixel(x, y, drt.Pixel{RGB: rgb, A: a})
		}
	}
	return b
}

// ToNRGBA64 quantizes display-referred values into a 16 bit image,
// clamping to [0,1].
func (b *Buffer)ToNRGBA64() *image.NRGBA64 {
	img := image.NewNRGBA64(b.Bounds())
	q := func(f float64) uint16 { return uint16(emath.Clamp(f, 0, 1) * 65535.0 + 0.5) }
	for y:=0; y<b.Height; y++ {
		for x:=0; x<b.Width; x++ {
			px := b.Pixel(x, y)
			img.SetNRGBA64(x, y, color.NRGBA64{q(px.RGB[0]), q(px.RGB[1]), q(px.RGB[2]), q(px.A)})
		}
	}
	return img
}

// WritePNG saves a display-encoded buffer as a 16 bit PNG.
func (b *Buffer)WritePNG(filename string) error {
	return WritePNG(b.ToNRGBA64(), filename)
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WritePNG, open+w '%s': %w", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteToHDR outputs a Radiance HDR image, for linear (or scene) data
// that shouldn't be clipped.
func (b *Buffer)WriteToHDR(filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("Buffer.WriteToHDR, open+w '%s': %w", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, b)
		if err != nil {
			log.Printf("Buffer.WriteToHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}
