package edge

import (
	"testing"

	"github.com/gogpu/rast/internal/fixed"
)

func fx(v float32) fixed.Coord {
	c, ok := fixed.FromFloat(v)
	if !ok {
		panic("coordinate out of range in test")
	}
	return c
}

func mustSetup(t *testing.T, x0, y0, x1, y1, x2, y2 float32) Setup {
	t.Helper()
	s, ok := New(fx(x0), fx(y0), fx(x1), fx(y1), fx(x2), fx(y2))
	if !ok {
		t.Fatal("New rejected a valid clockwise triangle")
	}
	return s
}

// =============================================================================
// Basic coverage
// =============================================================================

func TestCovered_InteriorAndExterior(t *testing.T) {
	// Clockwise triangle (y-down): (1,1) -> (9,1) -> (5,9).
	s := mustSetup(t, 1, 1, 9, 1, 5, 9)

	inside := [][2]int{{4, 2}, {5, 5}, {3, 3}, {6, 4}}
	for _, p := range inside {
		if !s.Covered(s.EvalAt(p[0], p[1])) {
			t.Errorf("pixel (%d,%d) not covered, want covered", p[0], p[1])
		}
	}
	outside := [][2]int{{0, 0}, {9, 9}, {0, 5}, {9, 5}, {5, 0}}
	for _, p := range outside {
		if s.Covered(s.EvalAt(p[0], p[1])) {
			t.Errorf("pixel (%d,%d) covered, want not covered", p[0], p[1])
		}
	}
}

func TestNew_RejectsDegenerate(t *testing.T) {
	// Collinear points: zero area.
	if _, ok := New(fx(0), fx(0), fx(5), fx(5), fx(10), fx(10)); ok {
		t.Error("New accepted a collinear triangle")
	}
	// All three points identical.
	if _, ok := New(fx(3), fx(3), fx(3), fx(3), fx(3), fx(3)); ok {
		t.Error("New accepted a zero triangle")
	}
}

func TestNew_RejectsCounterClockwise(t *testing.T) {
	// Reversed winding of a valid triangle.
	if _, ok := New(fx(1), fx(1), fx(5), fx(9), fx(9), fx(1)); ok {
		t.Error("New accepted a counter-clockwise triangle")
	}
}

func TestOrientation(t *testing.T) {
	if a := Orientation(fx(1), fx(1), fx(9), fx(1), fx(5), fx(9)); a <= 0 {
		t.Errorf("clockwise Orientation = %d, want > 0", a)
	}
	if a := Orientation(fx(1), fx(1), fx(5), fx(9), fx(9), fx(1)); a >= 0 {
		t.Errorf("counter-clockwise Orientation = %d, want < 0", a)
	}
	if a := Orientation(fx(0), fx(0), fx(5), fx(5), fx(10), fx(10)); a != 0 {
		t.Errorf("collinear Orientation = %d, want 0", a)
	}
}

// =============================================================================
// Top-left fill rule
// =============================================================================

func TestTopLeftClassification(t *testing.T) {
	// (0,0) -> (8,0) -> (4,8): edge 0 is the top edge (horizontal,
	// rightward), edge 1 runs down-left (not top-left), edge 2 runs
	// upward (left edge).
	s := mustSetup(t, 0, 0, 8, 0, 4, 8)

	if s.Bias[0] != 0 {
		t.Errorf("top edge bias = %d, want 0", s.Bias[0])
	}
	if s.Bias[1] != -1 {
		t.Errorf("right edge bias = %d, want -1", s.Bias[1])
	}
	if s.Bias[2] != 0 {
		t.Errorf("left edge bias = %d, want 0", s.Bias[2])
	}
}

// TestWatertightSharedEdge places two triangles sharing a vertical edge that
// passes exactly through pixel centers, and checks each such pixel is owned
// by exactly one triangle.
func TestWatertightSharedEdge(t *testing.T) {
	// Shared vertical edge x = 4.5 from y=0.5 to y=8.5: pixel centers
	// (4.5, 1.5), (4.5, 2.5), ... lie exactly on it.
	// Left triangle (clockwise): (0.5,0.5) -> (4.5,0.5) -> (4.5,8.5).
	left := mustSetup(t, 0.5, 0.5, 4.5, 0.5, 4.5, 8.5)
	// Right triangle (clockwise): (4.5,0.5) -> (8.5,4.5) -> (4.5,8.5).
	right := mustSetup(t, 4.5, 0.5, 8.5, 4.5, 4.5, 8.5)

	for py := 1; py <= 7; py++ {
		l := left.Covered(left.EvalAt(4, py))
		r := right.Covered(right.EvalAt(4, py))
		if l == r {
			t.Errorf("pixel (4,%d) on shared edge: left=%v right=%v, want exactly one owner", py, l, r)
		}
	}
}

// TestWatertightHorizontalEdge does the same for a horizontal shared edge on
// pixel centers.
func TestWatertightHorizontalEdge(t *testing.T) {
	// Shared horizontal edge y = 4.5 from x=0.5 to x=8.5.
	top := mustSetup(t, 0.5, 0.5, 8.5, 4.5, 0.5, 4.5)
	bottom := mustSetup(t, 0.5, 4.5, 8.5, 4.5, 0.5, 8.5)

	for px := 1; px <= 7; px++ {
		a := top.Covered(top.EvalAt(px, 4))
		b := bottom.Covered(bottom.EvalAt(px, 4))
		if a == b {
			t.Errorf("pixel (%d,4) on shared edge: top=%v bottom=%v, want exactly one owner", px, a, b)
		}
	}
}

// =============================================================================
// Incremental stepping and barycentrics
// =============================================================================

func TestStepMatchesEval(t *testing.T) {
	s := mustSetup(t, 1.25, 1.75, 19.5, 3.25, 10, 17.5)

	base := s.EvalAt(2, 2)
	for i := range 3 {
		ex := s.EvalAt(3, 2)
		if base[i]+s.StepX[i] != ex[i] {
			t.Errorf("edge %d: StepX mismatch: %d != %d", i, base[i]+s.StepX[i], ex[i])
		}
		ey := s.EvalAt(2, 3)
		if base[i]+s.StepY[i] != ey[i] {
			t.Errorf("edge %d: StepY mismatch: %d != %d", i, base[i]+s.StepY[i], ey[i])
		}
	}
}

func TestBarycentric_SumsToOne(t *testing.T) {
	s := mustSetup(t, 1, 1, 9, 1, 5, 9)
	l0, l1, l2 := s.Barycentric(s.EvalAt(5, 4))
	sum := l0 + l1 + l2
	if sum < 0.9999 || sum > 1.0001 {
		t.Errorf("barycentric sum = %v, want 1", sum)
	}
	if l0 < 0 || l1 < 0 || l2 < 0 {
		t.Errorf("negative barycentric weight: %v %v %v", l0, l1, l2)
	}
}

func TestBarycentric_VertexIdentity(t *testing.T) {
	// Evaluating at (the pixel center equal to) a vertex yields weight ~1
	// for that vertex.
	s := mustSetup(t, 1.5, 1.5, 17.5, 1.5, 9.5, 17.5)

	l0, l1, l2 := s.Barycentric(s.EvalAt(1, 1))
	if l0 < 0.999 || l1 > 0.001 || l2 > 0.001 {
		t.Errorf("weights at v0 = (%v, %v, %v), want (1, 0, 0)", l0, l1, l2)
	}
	l0, l1, l2 = s.Barycentric(s.EvalAt(17, 1))
	if l1 < 0.999 || l0 > 0.001 || l2 > 0.001 {
		t.Errorf("weights at v1 = (%v, %v, %v), want (0, 1, 0)", l0, l1, l2)
	}
	l0, l1, l2 = s.Barycentric(s.EvalAt(9, 17))
	if l2 < 0.999 || l0 > 0.001 || l1 > 0.001 {
		t.Errorf("weights at v2 = (%v, %v, %v), want (0, 0, 1)", l0, l1, l2)
	}
}

// =============================================================================
// Bounding box
// =============================================================================

func TestBoundingBox(t *testing.T) {
	s := mustSetup(t, 2.25, 3.5, 10.75, 3.5, 6, 12.5)

	if s.MinX != 2 || s.MaxX != 10 {
		t.Errorf("x range = [%d, %d], want [2, 10]", s.MinX, s.MaxX)
	}
	if s.MinY != 3 || s.MaxY != 12 {
		t.Errorf("y range = [%d, %d], want [3, 12]", s.MinY, s.MaxY)
	}
}

func TestBoundingBox_ExcludesOutsideCenters(t *testing.T) {
	// Triangle spanning x in [2.6, 4.4]: pixel 2's center (2.5) is out,
	// pixel 4's center (4.5) is out too.
	s := mustSetup(t, 2.6, 1, 4.4, 1, 3.5, 6)
	if s.MinX != 3 || s.MaxX != 3 {
		t.Errorf("x range = [%d, %d], want [3, 3]", s.MinX, s.MaxX)
	}
}

func BenchmarkSetup(b *testing.B) {
	x0, y0 := fx(1.25), fx(1.75)
	x1, y1 := fx(19.5), fx(3.25)
	x2, y2 := fx(10), fx(17.5)
	for b.Loop() {
		New(x0, y0, x1, y1, x2, y2)
	}
}
