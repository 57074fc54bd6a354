// Package viewport holds the zoomable, pannable view window over an
// elevation profile. It owns no geometry: it consumes the profile
// builder's output plus pointer/gesture events and yields a ViewState
// snapshot for the rendering layer, keeping chart math out of any
// DOM/canvas specifics.
package viewport

import (
	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// MaxZoom caps how far the window can narrow: the visible width never
// drops below total/MaxZoom.
const MaxZoom = 10.0

// Window is the currently visible distance range of the profile,
// always satisfying 0 ≤ MinKm < MaxKm ≤ total.
type Window struct {
	MinKm float64 `json:"min_km"`
	MaxKm float64 `json:"max_km"`
}

// Width returns the visible distance span.
func (w Window) Width() float64 { return w.MaxKm - w.MinKm }

// Contains reports whether a distance falls inside the window.
func (w Window) Contains(km float64) bool { return km >= w.MinKm && km <= w.MaxKm }

// ViewState is the renderable snapshot emitted after every transition.
type ViewState struct {
	Window         Window  `json:"window"`
	ZoomLevel      float64 `json:"zoom_level"`
	DistanceTickKm float64 `json:"distance_tick_km"`
	ElevationTickM float64 `json:"elevation_tick_m"`
	CursorKm       float64 `json:"cursor_km"`
}

// Controller tracks one view window over one profile. It is not safe
// for concurrent mutation; the expected caller is a single UI event
// loop, and a multi-writer context must serialize per session.
type Controller struct {
	totalKm  float64
	window   Window
	cursorKm float64
	narrow   bool // mobile/narrow-viewport rendering context
}

// NewController creates a controller spanning the full route extent.
func NewController(totalKm float64, narrow bool) *Controller {
	if totalKm <= 0 {
		totalKm = 0
	}
	return &Controller{
		totalKm: totalKm,
		window:  Window{MinKm: 0, MaxKm: totalKm},
		narrow:  narrow,
	}
}

// ResetTotal swaps in a new route extent and resets the window. Called
// whenever the underlying profile changes identity.
func (c *Controller) ResetTotal(totalKm float64) {
	c.totalKm = totalKm
	c.Reset()
}

// Window returns the current view window.
func (c *Controller) Window() Window { return c.window }

// ZoomLevel is total/width: 1 at full extent, MaxZoom at the narrowest.
func (c *Controller) ZoomLevel() float64 {
	if c.totalKm == 0 || c.window.Width() == 0 {
		return 1
	}
	return c.totalKm / c.window.Width()
}

// Zoom re-centers the window on centerKm and divides its width by
// factor (factor > 1 narrows, < 1 widens). Width is clamped so the zoom
// level stays within [1, MaxZoom]; at the route edges the window is
// shifted back into range rather than shrunk.
func (c *Controller) Zoom(centerKm, factor float64) {
	if c.totalKm == 0 || factor <= 0 {
		return
	}

	width := c.window.Width() / factor
	if width > c.totalKm {
		width = c.totalKm
	}
	if width < c.totalKm/MaxZoom {
		width = c.totalKm / MaxZoom
	}

	c.setWindow(centerKm-width/2, width)
}

// Pan shifts the window by deltaFraction of its own width. At zoom
// level 1 the window already spans the route, so panning is a no-op.
func (c *Controller) Pan(deltaFraction float64) {
	width := c.window.Width()
	if width >= c.totalKm {
		return
	}
	c.setWindow(c.window.MinKm+deltaFraction*width, width)
}

// Reset restores the full extent.
func (c *Controller) Reset() {
	c.window = Window{MinKm: 0, MaxKm: c.totalKm}
	c.cursorKm = 0
}

// setWindow clamps a candidate window of the given width into
// [0, total], shifting instead of shrinking at the edges.
func (c *Controller) setWindow(minKm, width float64) {
	if minKm < 0 {
		minKm = 0
	}
	if minKm+width > c.totalKm {
		minKm = c.totalKm - width
	}
	c.window = Window{MinKm: minKm, MaxKm: minKm + width}
}

// State derives the renderable snapshot for the current window. Tick
// intervals are recomputed on every call, so they can never go stale
// after a transition.
func (c *Controller) State() ViewState {
	distTick, eleTick := tickIntervals(c.window.Width(), c.narrow)
	return ViewState{
		Window:         c.window,
		ZoomLevel:      c.ZoomLevel(),
		DistanceTickKm: distTick,
		ElevationTickM: eleTick,
		CursorKm:       c.cursorKm,
	}
}

// Partition splits profile points into pre-window, in-window, and
// post-window runs. The last pre point and first post point are
// duplicated into the in-window run so the rendered line reaches the
// visible edges without a gap.
type Partition struct {
	Pre  []domain.ElevationPoint `json:"pre,omitempty"`
	In   []domain.ElevationPoint `json:"in"`
	Post []domain.ElevationPoint `json:"post,omitempty"`
}

// PartitionPoints classifies a profile against the current window.
func (c *Controller) PartitionPoints(points []domain.ElevationPoint) Partition {
	var p Partition
	for _, pt := range points {
		switch {
		case pt.DistanceKm < c.window.MinKm:
			p.Pre = append(p.Pre, pt)
		case pt.DistanceKm > c.window.MaxKm:
			p.Post = append(p.Post, pt)
		default:
			p.In = append(p.In, pt)
		}
	}

	if len(p.Pre) > 0 {
		p.In = append([]domain.ElevationPoint{p.Pre[len(p.Pre)-1]}, p.In...)
	}
	if len(p.Post) > 0 {
		p.In = append(p.In, p.Post[0])
	}
	return p
}
