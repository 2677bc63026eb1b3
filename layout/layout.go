// Package layout decodes camera-calibration marker layout documents into
// flat numeric arrays.
//
// A layout document is a JSON object whose shape is only known after reading
// two scalar dimension fields, num_angles and num_markers. Every array field
// is validated against those dimensions before any output array is allocated;
// key order in the document is not significant.
//
// The three marker-location matrices are stored flattened in the order the
// calibration routine consumes them: component-major, angle-minor. The value
// for coordinate component k at angle j lives at index k*NumAngles + j. The
// At accessors hide that layout; code indexing the slices directly must
// preserve it.
package layout

import (
	"encoding/json"
	"slices"
)

// MarkerConfig is the fully decoded marker layout. It is produced by Decode
// on success only; no partially populated value is ever returned.
type MarkerConfig struct {
	// NumAngles and NumMarkers are the dimensions every array below is
	// validated against. Always positive.
	NumAngles  int
	NumMarkers int

	// Angles holds one rotation angle per capture position, length NumAngles.
	Angles []int

	// MarkerColors holds one color code per marker, length NumMarkers.
	MarkerColors []int

	// MarkerStart, MarkerMid and MarkerEnd hold interleaved x,y pixel
	// coordinates per marker per angle, each of length
	// NumAngles*NumMarkers*2, flattened as dest[k*NumAngles+j].
	MarkerStart []int
	MarkerMid   []int
	MarkerEnd   []int

	// SourceHash is the xxHash64 of the raw document bytes, usable as a
	// cheap change-detection fingerprint.
	SourceHash uint64
}

// StartAt returns the start-point pixel coordinates of marker at angle.
// Indices are not bounds-checked beyond the slice access itself.
func (c *MarkerConfig) StartAt(angle, marker int) (x, y int) {
	return c.locAt(c.MarkerStart, angle, marker)
}

// MidAt returns the mid-point pixel coordinates of marker at angle.
func (c *MarkerConfig) MidAt(angle, marker int) (x, y int) {
	return c.locAt(c.MarkerMid, angle, marker)
}

// EndAt returns the end-point pixel coordinates of marker at angle.
func (c *MarkerConfig) EndAt(angle, marker int) (x, y int) {
	return c.locAt(c.MarkerEnd, angle, marker)
}

func (c *MarkerConfig) locAt(loc []int, angle, marker int) (x, y int) {
	x = loc[(marker*2)*c.NumAngles+angle]
	y = loc[(marker*2+1)*c.NumAngles+angle]

	return x, y
}

// Equal reports whether two configs hold the same dimensions and array
// contents. SourceHash is ignored so re-encoded documents compare equal to
// their source.
func (c *MarkerConfig) Equal(o *MarkerConfig) bool {
	if c == nil || o == nil {
		return c == o
	}

	return c.NumAngles == o.NumAngles &&
		c.NumMarkers == o.NumMarkers &&
		slices.Equal(c.Angles, o.Angles) &&
		slices.Equal(c.MarkerColors, o.MarkerColors) &&
		slices.Equal(c.MarkerStart, o.MarkerStart) &&
		slices.Equal(c.MarkerMid, o.MarkerMid) &&
		slices.Equal(c.MarkerEnd, o.MarkerEnd)
}

// markerDocument is the on-disk JSON shape of a marker layout.
type markerDocument struct {
	NumAngles   int     `json:"num_angles"`
	NumMarkers  int     `json:"num_markers"`
	Angles      []int   `json:"angles,omitempty"`
	MarkerColor []int   `json:"marker_color,omitempty"`
	MarkerStart [][]int `json:"marker_start,omitempty"`
	MarkerMid   [][]int `json:"marker_mid,omitempty"`
	MarkerEnd   [][]int `json:"marker_end,omitempty"`
}

// MarshalJSON re-encodes the config into the documented document shape:
// location matrices become one row of NumMarkers*2 coordinates per angle.
// Decoding the result yields a config Equal to the receiver.
func (c *MarkerConfig) MarshalJSON() ([]byte, error) {
	doc := markerDocument{
		NumAngles:   c.NumAngles,
		NumMarkers:  c.NumMarkers,
		Angles:      c.Angles,
		MarkerColor: c.MarkerColors,
		MarkerStart: c.locationRows(c.MarkerStart),
		MarkerMid:   c.locationRows(c.MarkerMid),
		MarkerEnd:   c.locationRows(c.MarkerEnd),
	}

	return json.Marshal(doc)
}

// locationRows transposes a flattened location matrix back into per-angle
// rows, the inverse of the dest[k*NumAngles+j] store.
func (c *MarkerConfig) locationRows(loc []int) [][]int {
	if len(loc) == 0 {
		return nil
	}

	pairLen := c.NumMarkers * 2
	rows := make([][]int, c.NumAngles)
	for j := range rows {
		row := make([]int, pairLen)
		for k := range row {
			row[k] = loc[k*c.NumAngles+j]
		}
		rows[j] = row
	}

	return rows
}
