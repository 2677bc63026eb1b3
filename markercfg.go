// Package markercfg loads camera-calibration marker layout files.
//
// A marker layout file is a JSON object describing the rotation angles of a
// calibration rig and the start/mid/end pixel coordinates of each tracked
// marker at each angle. Load reads the file, tokenizes it and materializes
// the flat numeric arrays consumed by the calibration routine.
//
//	cfg, err := markercfg.Load("marker.json")
//	if err != nil {
//	    return err
//	}
//	x, y := cfg.StartAt(0, 2) // marker 2 at the first angle
//
// This package wires the slurp, token and layout packages together for the
// common case. Use those packages directly for fine-grained control, for
// example to decode a buffer produced by a different loader.
package markercfg

import (
	"github.com/sirupsen/logrus"

	"github.com/arloliu/markercfg/layout"
	"github.com/arloliu/markercfg/slurp"
	"github.com/arloliu/markercfg/token"
)

// DefaultTokenBudget bounds the token count of a single layout document. A
// well-formed document needs roughly NumAngles*(3*NumMarkers*2+4) tokens, so
// the default comfortably covers realistic rigs while keeping hostile inputs
// bounded.
const DefaultTokenBudget = 4096

// Option configures Load and LoadBytes.
type Option func(*config)

type config struct {
	tokenBudget int
	maxSize     int64
	decompress  bool
	logger      logrus.FieldLogger
}

// WithTokenBudget overrides DefaultTokenBudget. Documents requiring more
// tokens fail with errs.ErrTokenBudgetExceeded.
func WithTokenBudget(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.tokenBudget = n
		}
	}
}

// WithMaxSize rejects files larger than n bytes before reading them.
func WithMaxSize(n int64) Option {
	return func(c *config) { c.maxSize = n }
}

// WithDecompression transparently decompresses zstd, s2, lz4 and gzip files.
func WithDecompression() Option {
	return func(c *config) { c.decompress = true }
}

// WithLogger routes decode diagnostics (unknown keys, skipped values) to the
// given logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) { c.logger = logger }
}

// Load reads, tokenizes and decodes the marker layout file at path.
func Load(path string, opts ...Option) (*layout.MarkerConfig, error) {
	cfg := newConfig(opts)

	var slurpOpts []slurp.Option
	if cfg.maxSize > 0 {
		slurpOpts = append(slurpOpts, slurp.WithMaxSize(cfg.maxSize))
	}
	if cfg.decompress {
		slurpOpts = append(slurpOpts, slurp.WithDecompression())
	}

	data, err := slurp.Read(path, slurpOpts...)
	if err != nil {
		return nil, err
	}

	return decode(data, cfg)
}

// LoadBytes tokenizes and decodes an in-memory marker layout document.
func LoadBytes(data []byte, opts ...Option) (*layout.MarkerConfig, error) {
	return decode(data, newConfig(opts))
}

func newConfig(opts []Option) config {
	cfg := config{tokenBudget: DefaultTokenBudget}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func decode(data []byte, cfg config) (*layout.MarkerConfig, error) {
	toks, err := token.Parse(data, cfg.tokenBudget)
	if err != nil {
		return nil, err
	}

	var layoutOpts []layout.Option
	if cfg.logger != nil {
		layoutOpts = append(layoutOpts, layout.WithLogger(cfg.logger))
	}

	return layout.Decode(data, toks, layoutOpts...)
}
