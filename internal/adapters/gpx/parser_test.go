package gpx

import (
	"errors"
	"testing"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Inntal Etappe</name>
    <trkseg>
      <trkpt lat="47.2600" lon="11.3900"><ele>600</ele></trkpt>
      <trkpt lat="47.2700" lon="11.4000"><ele>900</ele></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="47.2800" lon="11.4100"><ele>850</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestParse(t *testing.T) {
	points, name, err := Parse([]byte(sampleGPX))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Inntal Etappe" {
		t.Errorf("expected track name, got %q", name)
	}
	if len(points) != 3 {
		t.Fatalf("expected segments flattened into 3 points, got %d", len(points))
	}
	if points[0].Lat != 47.26 || points[0].Lon != 11.39 || points[0].Ele != 600 {
		t.Errorf("unexpected first point: %+v", points[0])
	}
	if points[2].Ele != 850 {
		t.Errorf("second segment not appended in order: %+v", points[2])
	}
}

func TestParse_NoPoints(t *testing.T) {
	empty := `<?xml version="1.0"?><gpx version="1.1" creator="t" xmlns="http://www.topografix.com/GPX/1/1"></gpx>`
	if _, _, err := Parse([]byte(empty)); !errors.Is(err, domain.ErrEmptyTrack) {
		t.Errorf("expected ErrEmptyTrack, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, _, err := Parse([]byte("not xml")); err == nil {
		t.Error("expected parse error")
	}
}
