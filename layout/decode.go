package layout

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/markercfg/errs"
	"github.com/arloliu/markercfg/internal/hash"
	"github.com/arloliu/markercfg/token"
)

// Field names of the marker layout document.
const (
	fieldNumAngles   = "num_angles"
	fieldNumMarkers  = "num_markers"
	fieldAngles      = "angles"
	fieldMarkerColor = "marker_color"
	fieldMarkerStart = "marker_start"
	fieldMarkerMid   = "marker_mid"
	fieldMarkerEnd   = "marker_end"
)

// DefaultMaxElements caps the total location matrix size
// (NumAngles*NumMarkers*2) accepted from a document. Declared dimensions
// beyond it fail with errs.ErrTooLarge before any allocation happens.
const DefaultMaxElements = 1 << 20

// Option configures a Decode call.
type Option func(*config)

type config struct {
	logger      logrus.FieldLogger
	maxElements int
}

// WithLogger routes unknown-key and skipped-value diagnostics to the given
// logger. Defaults to the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMaxElements overrides DefaultMaxElements. n <= 0 keeps the default.
func WithMaxElements(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxElements = n
		}
	}
}

// Decode materializes a marker layout from a raw document and its token
// sequence, produced by token.Parse over the same buffer.
//
// The two scalar dimensions are resolved first; every array field is then
// validated against them before its values are stored. Unknown top-level keys
// are logged and skipped. On any failure the returned config is nil — no
// partially populated result is observable.
//
// Errors:
//   - errs.ErrNotObject: the top-level value is not a JSON object
//   - errs.ErrInvalidDimensions: num_angles or num_markers missing or <= 0
//   - errs.ErrTooLarge: declared dimensions exceed the element cap
//   - errs.ErrShapeMismatch: any array length disagreeing with the dimensions
func Decode(data []byte, toks []token.Token, opts ...Option) (*MarkerConfig, error) {
	cfg := config{
		logger:      logrus.StandardLogger(),
		maxElements: DefaultMaxElements,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := decoder{data: data, toks: toks, cfg: cfg}

	return d.decode()
}

type decoder struct {
	data []byte
	toks []token.Token
	cfg  config
}

func (d *decoder) decode() (*MarkerConfig, error) {
	if len(d.toks) == 0 || d.toks[0].Type != token.Object {
		return nil, errs.ErrNotObject
	}

	numAngles, numMarkers := d.dimensionPass()
	if numAngles <= 0 || numMarkers <= 0 {
		return nil, fmt.Errorf("%w: num_angles=%d num_markers=%d", errs.ErrInvalidDimensions, numAngles, numMarkers)
	}
	if numAngles > d.cfg.maxElements || numMarkers > d.cfg.maxElements || numAngles*numMarkers*2 > d.cfg.maxElements {
		return nil, fmt.Errorf("%w: %d x %d markers exceed the %d element cap",
			errs.ErrTooLarge, numAngles, numMarkers, d.cfg.maxElements)
	}

	out := &MarkerConfig{
		NumAngles:    numAngles,
		NumMarkers:   numMarkers,
		Angles:       make([]int, numAngles),
		MarkerColors: make([]int, numMarkers),
		MarkerStart:  make([]int, numAngles*numMarkers*2),
		MarkerMid:    make([]int, numAngles*numMarkers*2),
		MarkerEnd:    make([]int, numAngles*numMarkers*2),
	}

	if err := d.arrayPass(out); err != nil {
		return nil, err
	}

	out.SourceHash = hash.Sum(d.data)

	return out, nil
}

// dimensionPass scans top-level keys for num_angles and num_markers, stopping
// early once both are resolved. Nested values are skipped structurally so a
// dimension key appearing after a large array is still found.
func (d *decoder) dimensionPass() (numAngles, numMarkers int) {
	i := 1
	for k := 0; k < d.toks[0].Size && i+1 < len(d.toks); k++ {
		key := d.toks[i]
		val := i + 1
		switch string(key.Text(d.data)) {
		case fieldNumAngles:
			numAngles = atoi(d.data, d.toks[val])
		case fieldNumMarkers:
			numMarkers = atoi(d.data, d.toks[val])
		}
		if numAngles != 0 && numMarkers != 0 {
			break
		}
		i = val + token.Subtree(d.toks, val)
	}

	return numAngles, numMarkers
}

// arrayPass dispatches each top-level key to its array decoder. Dimensions
// are already resolved and validated, so every destination slice exists.
func (d *decoder) arrayPass(out *MarkerConfig) error {
	i := 1
	for k := 0; k < d.toks[0].Size && i+1 < len(d.toks); k++ {
		key := d.toks[i]
		val := i + 1
		name := string(key.Text(d.data))

		var err error
		switch name {
		case fieldNumAngles, fieldNumMarkers:
			// resolved during the dimension pass
		case fieldAngles:
			err = d.decodeInts(val, name, out.NumAngles, out.Angles)
		case fieldMarkerColor:
			err = d.decodeInts(val, name, out.NumMarkers, out.MarkerColors)
		case fieldMarkerStart:
			err = d.decodeLocations(val, name, out, out.MarkerStart)
		case fieldMarkerMid:
			err = d.decodeLocations(val, name, out, out.MarkerMid)
		case fieldMarkerEnd:
			err = d.decodeLocations(val, name, out, out.MarkerEnd)
		default:
			d.cfg.logger.WithField("key", name).Debug("ignoring unknown config key")
		}
		if err != nil {
			return err
		}

		i = val + token.Subtree(d.toks, val)
	}

	return nil
}

// decodeInts fills dst from a flat integer array of exactly want elements.
func (d *decoder) decodeInts(val int, name string, want int, dst []int) error {
	arr := d.toks[val]
	if arr.Type != token.Array {
		d.cfg.logger.WithField("key", name).Debug("expected an array, skipping value")

		return nil
	}
	if arr.Size != want {
		return fmt.Errorf("%w: %s has %d elements, want %d", errs.ErrShapeMismatch, name, arr.Size, want)
	}

	i := val + 1
	for e := 0; e < arr.Size; e++ {
		dst[e] = atoi(d.data, d.toks[i])
		i += token.Subtree(d.toks, i)
	}

	return nil
}

// decodeLocations fills dst from an outer array of NumAngles rows, each an
// array of exactly NumMarkers*2 interleaved x,y coordinates. Rows that are
// not arrays are treated as absent rather than fatal, so documents can carry
// placeholders for angles that have not been measured yet.
func (d *decoder) decodeLocations(val int, name string, out *MarkerConfig, dst []int) error {
	outer := d.toks[val]
	if outer.Type != token.Array {
		d.cfg.logger.WithField("key", name).Debug("expected an array, skipping value")

		return nil
	}
	if outer.Size != out.NumAngles {
		return fmt.Errorf("%w: %s has %d angle rows, want %d", errs.ErrShapeMismatch, name, outer.Size, out.NumAngles)
	}

	pairLen := out.NumMarkers * 2
	i := val + 1
	for j := 0; j < outer.Size; j++ {
		inner := d.toks[i]
		if inner.Type != token.Array {
			d.cfg.logger.WithField("key", name).WithField("angle", j).Debug("row is not an array, skipping")
			i += token.Subtree(d.toks, i)

			continue
		}
		if inner.Size != pairLen {
			return fmt.Errorf("%w: %s[%d] has %d coordinates, want %d",
				errs.ErrShapeMismatch, name, j, inner.Size, pairLen)
		}

		e := i + 1
		for k := 0; k < pairLen; k++ {
			// component-major, angle-minor storage; see the package doc
			dst[k*out.NumAngles+j] = atoi(d.data, d.toks[e])
			e += token.Subtree(d.toks, e)
		}

		i += token.Subtree(d.toks, i)
	}

	return nil
}

// atoi parses a token span as a base-10 integer. Non-numeric content yields
// 0; for the dimension fields that is caught by the positivity invariant, so
// no separate numeric-format error exists.
func atoi(data []byte, t token.Token) int {
	n, err := strconv.Atoi(string(t.Text(data)))
	if err != nil {
		return 0
	}

	return n
}
