package goo

import "github.com/gviegas/mslice/internal/binio"

// PreviewImage is a WxH grid of 5-6-5 packed RGB pixels, embedded in the
// header as a thumbnail of the sliced model.
type PreviewImage struct {
	Width, Height int
	Pixels        []uint16 // row-major, length Width*Height
}

// NewPreviewImage returns a black WxH preview.
func NewPreviewImage(width, height int) PreviewImage {
	return PreviewImage{Width: width, Height: height, Pixels: make([]uint16, width*height)}
}

// PreviewFromRGBA packs an RGBA8 image (row-major, 4 bytes per pixel) of
// the given dimensions into a 5-6-5 preview, discarding alpha.
func PreviewFromRGBA(width, height int, rgba []byte) PreviewImage {
	p := NewPreviewImage(width, height)
	for i := range p.Pixels {
		off := i * 4
		if off+2 >= len(rgba) {
			break
		}
		p.Pixels[i] = PackRGB565(rgba[off], rgba[off+1], rgba[off+2])
	}
	return p
}

// PackRGB565 packs 8-bit channels into a 5-6-5 pixel.
func PackRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// UnpackRGB565 expands a 5-6-5 pixel back to 8-bit channels (the low bits
// of each channel are left zero, not replicated from the high bits).
func UnpackRGB565(v uint16) (r, g, b uint8) {
	r = uint8(v>>11) << 3
	g = uint8(v>>5&0x3F) << 2
	b = uint8(v&0x1F) << 3
	return
}

// Serialize writes the pixels row-major, each as a big-endian u16.
func (p PreviewImage) Serialize(w *binio.Writer) {
	for _, px := range p.Pixels {
		w.WriteU16BE(px)
	}
}

// DeserializePreviewImage reads a width*height grid of big-endian u16
// pixels.
func DeserializePreviewImage(r *binio.Reader, width, height int) (PreviewImage, error) {
	p := NewPreviewImage(width, height)
	for i := range p.Pixels {
		v, err := r.ReadU16BE()
		if err != nil {
			return PreviewImage{}, err
		}
		p.Pixels[i] = v
	}
	return p, nil
}
