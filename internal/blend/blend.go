package blend

// Mode selects how a source pixel combines with the destination.
type Mode int

const (
	// ModeNone overwrites the destination with the source.
	ModeNone Mode = iota

	// ModeAlpha is normal alpha blending:
	// rgb' = src.rgb*srcA + dst.rgb*(1-srcA), a' = srcA + dstA*(1-srcA).
	ModeAlpha

	// ModeAdditive accumulates: out = dst + src*srcA, clamped.
	ModeAdditive

	modeCount
)

// Valid reports whether m is a recognized blend mode.
func (m Mode) Valid() bool {
	return m >= ModeNone && m < modeCount
}

// String returns the mode name for diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeAlpha:
		return "alpha"
	case ModeAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// Pixel blends src into the 4-byte RGBA destination slice in place.
// dst must have length >= 4.
func Pixel(dst []byte, src [4]byte, mode Mode) {
	switch mode {
	case ModeAlpha:
		sa := src[3]
		inv := 255 - sa
		dst[0] = mulDiv255(src[0], sa) + mulDiv255(dst[0], inv)
		dst[1] = mulDiv255(src[1], sa) + mulDiv255(dst[1], inv)
		dst[2] = mulDiv255(src[2], sa) + mulDiv255(dst[2], inv)
		dst[3] = sa + mulDiv255(dst[3], inv)
	case ModeAdditive:
		sa := src[3]
		dst[0] = addClamp(dst[0], mulDiv255(src[0], sa))
		dst[1] = addClamp(dst[1], mulDiv255(src[1], sa))
		dst[2] = addClamp(dst[2], mulDiv255(src[2], sa))
		dst[3] = addClamp(dst[3], mulDiv255(src[3], sa))
	default: // ModeNone
		dst[0] = src[0]
		dst[1] = src[1]
		dst[2] = src[2]
		dst[3] = src[3]
	}
}

// Modulate multiplies two RGBA colors channel-wise, the combine rule for
// sampled texel color and interpolated vertex color.
func Modulate(a, b [4]byte) [4]byte {
	return [4]byte{
		mulDiv255(a[0], b[0]),
		mulDiv255(a[1], b[1]),
		mulDiv255(a[2], b[2]),
		mulDiv255(a[3], b[3]),
	}
}
