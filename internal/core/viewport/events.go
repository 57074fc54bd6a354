package viewport

// Pointer/gesture input is modeled as explicit events rather than
// callback chains: the rendering layer translates raw gestures into
// these messages and subscribes to the ViewState the controller emits.

// Event is a view-domain transition request.
type Event interface{ isEvent() }

// Zoomed requests a zoom centered on a route distance. Factor > 1
// narrows the window, < 1 widens it.
type Zoomed struct {
	CenterKm float64 `json:"center_km"`
	Factor   float64 `json:"factor"`
}

// Panned shifts the window by a fraction of its current width.
type Panned struct {
	DeltaFraction float64 `json:"delta_fraction"`
}

// PointerMoved tracks the cursor position along the distance axis.
type PointerMoved struct {
	Km float64 `json:"km"`
}

// ResetView restores the full route extent.
type ResetView struct{}

func (Zoomed) isEvent()       {}
func (Panned) isEvent()       {}
func (PointerMoved) isEvent() {}
func (ResetView) isEvent()    {}

// Apply runs one event against the controller and returns the resulting
// snapshot. Unknown cursor positions are clamped into the window.
func (c *Controller) Apply(ev Event) ViewState {
	switch e := ev.(type) {
	case Zoomed:
		c.Zoom(e.CenterKm, e.Factor)
	case Panned:
		c.Pan(e.DeltaFraction)
	case PointerMoved:
		km := e.Km
		if km < c.window.MinKm {
			km = c.window.MinKm
		}
		if km > c.window.MaxKm {
			km = c.window.MaxKm
		}
		c.cursorKm = km
	case ResetView:
		c.Reset()
	}
	return c.State()
}
