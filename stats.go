package rast

// DrawStats reports what happened to the triangles of one draw call.
// Rejected triangles are skipped individually; they never fail the call.
type DrawStats struct {
	// Triangles is the number of triangles submitted (len(indices)/3).
	Triangles int

	// Rasterized counts triangles that reached at least one tile.
	Rasterized int

	// Culled counts triangles discarded by the cull mode.
	Culled int

	// Degenerate counts zero-area triangles.
	Degenerate int

	// NonFinite counts triangles with NaN or out-of-range coordinates.
	NonFinite int

	// Offscreen counts triangles whose bounding box misses the viewport.
	Offscreen int
}

// Skipped returns the total number of triangles that produced no pixels
// for any reason.
func (s DrawStats) Skipped() int {
	return s.Culled + s.Degenerate + s.NonFinite + s.Offscreen
}
