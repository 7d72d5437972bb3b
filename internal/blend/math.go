// Package blend implements the pixel blend stage: combining a shaded source
// color into a tile's color plane under one of the supported blend modes.
//
// All arithmetic is 8-bit integer with exact division by 255 via Alvy Ray
// Smith's shift formula, so results are deterministic across platforms and
// cheap enough for the per-pixel hot path.
package blend

// div255 divides x by 255 exactly without integer division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8 (Alvy Ray Smith). Exact for all
// uint16 inputs and several times faster than the division instruction.
func div255(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255 exactly.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return byte(s)
}
