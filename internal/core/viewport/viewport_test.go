package viewport

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

func TestZoomCenterAndWidth(t *testing.T) {
	c := NewController(10, false)

	c.Zoom(5, 2)
	w := c.Window()
	if w.MinKm != 2.5 || w.MaxKm != 7.5 {
		t.Errorf("Zoom(5,2) on [0,10]: got [%v,%v], want [2.5,7.5]", w.MinKm, w.MaxKm)
	}
	if c.ZoomLevel() != 2 {
		t.Errorf("zoom level: got %v, want 2", c.ZoomLevel())
	}
}

func TestZoomClampsAtMaxZoom(t *testing.T) {
	c := NewController(10, false)
	for i := 0; i < 8; i++ {
		c.Zoom(5, 2)
	}
	if got := c.Window().Width(); math.Abs(got-10.0/MaxZoom) > 1e-9 {
		t.Errorf("width should clamp at total/MaxZoom: got %v, want %v", got, 10.0/MaxZoom)
	}
	if c.ZoomLevel() > MaxZoom+1e-9 {
		t.Errorf("zoom level exceeds MaxZoom: %v", c.ZoomLevel())
	}
}

func TestZoomShiftsAtEdges(t *testing.T) {
	c := NewController(10, false)
	// Centering near the start would run past 0; the window shifts, not shrinks.
	c.Zoom(0.5, 2)
	w := c.Window()
	if w.MinKm != 0 {
		t.Errorf("edge zoom should pin MinKm to 0, got %v", w.MinKm)
	}
	if math.Abs(w.Width()-5) > 1e-9 {
		t.Errorf("edge zoom must keep width 5, got %v", w.Width())
	}
}

func TestZoomOutClampsToFullExtent(t *testing.T) {
	c := NewController(10, false)
	c.Zoom(5, 0.25) // widening past full extent
	w := c.Window()
	if w.MinKm != 0 || w.MaxKm != 10 {
		t.Errorf("zoom-out past extent should clamp to [0,10], got [%v,%v]", w.MinKm, w.MaxKm)
	}
}

func TestPanNoOpAtFullExtent(t *testing.T) {
	c := NewController(10, false)
	c.Pan(0.5)
	w := c.Window()
	if w.MinKm != 0 || w.MaxKm != 10 {
		t.Errorf("pan at zoom 1 must be a no-op, got [%v,%v]", w.MinKm, w.MaxKm)
	}
}

func TestPanShiftsAndClamps(t *testing.T) {
	c := NewController(10, false)
	c.Zoom(5, 2) // [2.5, 7.5]

	c.Pan(0.2) // shift by 1 km
	w := c.Window()
	if math.Abs(w.MinKm-3.5) > 1e-9 {
		t.Errorf("pan: got MinKm %v, want 3.5", w.MinKm)
	}

	c.Pan(10) // far past the end: clamp to the right edge
	w = c.Window()
	if math.Abs(w.MaxKm-10) > 1e-9 {
		t.Errorf("pan past end should clamp MaxKm to 10, got %v", w.MaxKm)
	}
	if math.Abs(w.Width()-5) > 1e-9 {
		t.Errorf("clamped pan must preserve width, got %v", w.Width())
	}
}

func TestInvariantUnderRandomTransitions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewController(120, false)

	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			c.Zoom(rng.Float64()*140-10, rng.Float64()*4+0.1)
		case 1:
			c.Pan(rng.Float64()*4 - 2)
		case 2:
			c.Apply(PointerMoved{Km: rng.Float64() * 150})
		}

		w := c.Window()
		if !(0 <= w.MinKm && w.MinKm < w.MaxKm && w.MaxKm <= 120+1e-9) {
			t.Fatalf("window invariant violated after %d transitions: [%v,%v]", i, w.MinKm, w.MaxKm)
		}
		if c.ZoomLevel() < 1-1e-9 || c.ZoomLevel() > MaxZoom+1e-9 {
			t.Fatalf("zoom level out of [1,%v]: %v", MaxZoom, c.ZoomLevel())
		}
	}

	c.Reset()
	w := c.Window()
	if w.MinKm != 0 || w.MaxKm != 120 || c.ZoomLevel() != 1 {
		t.Errorf("reset: got [%v,%v] level %v", w.MinKm, w.MaxKm, c.ZoomLevel())
	}
}

func TestTickIntervalsRecomputedOnTransition(t *testing.T) {
	c := NewController(100, false)
	wide := c.State()

	c.Zoom(50, 10)
	tight := c.State()

	if tight.DistanceTickKm >= wide.DistanceTickKm {
		t.Errorf("narrower window should get finer ticks: %v -> %v",
			wide.DistanceTickKm, tight.DistanceTickKm)
	}
}

func TestNarrowViewportCoarserTicks(t *testing.T) {
	wide := NewController(100, false).State()
	narrow := NewController(100, true).State()
	if narrow.DistanceTickKm <= wide.DistanceTickKm {
		t.Errorf("narrow viewport should use coarser ticks: %v vs %v",
			narrow.DistanceTickKm, wide.DistanceTickKm)
	}
}

func TestPartitionDuplicatesBoundaryPoints(t *testing.T) {
	pts := make([]domain.ElevationPoint, 11)
	for i := range pts {
		pts[i] = domain.ElevationPoint{DistanceKm: float64(i), Index: i}
	}

	c := NewController(10, false)
	c.Zoom(5, 2.5) // [3,7]
	p := c.PartitionPoints(pts)

	if len(p.Pre) != 3 { // 0,1,2
		t.Errorf("pre: got %d points, want 3", len(p.Pre))
	}
	if len(p.Post) != 3 { // 8,9,10
		t.Errorf("post: got %d points, want 3", len(p.Post))
	}
	// In-window: 3..7 plus duplicated edge neighbours 2 and 8.
	if len(p.In) != 7 {
		t.Errorf("in: got %d points, want 7", len(p.In))
	}
	if p.In[0].Index != 2 || p.In[len(p.In)-1].Index != 8 {
		t.Errorf("boundary duplication wrong: first=%d last=%d",
			p.In[0].Index, p.In[len(p.In)-1].Index)
	}
}

func TestApplyEventsEmitState(t *testing.T) {
	c := NewController(10, false)

	st := c.Apply(Zoomed{CenterKm: 5, Factor: 2})
	if st.Window.MinKm != 2.5 || st.Window.MaxKm != 7.5 {
		t.Errorf("Zoomed event: got [%v,%v]", st.Window.MinKm, st.Window.MaxKm)
	}

	st = c.Apply(PointerMoved{Km: 1.0}) // outside window, clamps to edge
	if st.CursorKm != 2.5 {
		t.Errorf("cursor should clamp into window: got %v", st.CursorKm)
	}

	st = c.Apply(ResetView{})
	if st.Window.MinKm != 0 || st.Window.MaxKm != 10 || st.ZoomLevel != 1 {
		t.Errorf("ResetView: got %+v", st)
	}
}
