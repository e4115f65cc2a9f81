package backend

import "github.com/gogpu/gputypes"

// ColorSpace identifies the byte layout and alpha treatment of a canvas
// pixel buffer. All canvas pixels are 4 bytes.
type ColorSpace uint8

const (
	// ABGR8888S is premultiplied alpha with the 32-bit pixel value laid
	// out as 0xAABBGGRR, i.e. R, G, B, A byte order in memory on a
	// little-endian host. This is the default canvas format.
	ABGR8888S ColorSpace = iota

	// ARGB8888S is premultiplied alpha with the 32-bit pixel value laid
	// out as 0xAARRGGBB, i.e. B, G, R, A byte order in memory.
	ARGB8888S
)

// BytesPerPixel returns the pixel stride in bytes. Always 4.
func (ColorSpace) BytesPerPixel() int { return 4 }

// Premultiplied reports whether color channels are pre-scaled by alpha.
// Both supported color spaces are premultiplied.
func (ColorSpace) Premultiplied() bool { return true }

// TextureFormat returns the closest wgpu texture format for the
// color space. Used by GPU-backed canvases when configuring a surface.
func (cs ColorSpace) TextureFormat() gputypes.TextureFormat {
	if cs == ARGB8888S {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// String returns the color space name.
func (cs ColorSpace) String() string {
	if cs == ARGB8888S {
		return "ARGB8888S"
	}
	return "ABGR8888S"
}
