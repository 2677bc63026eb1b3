// Package compress provides frame codecs for transparently compressed
// configuration files.
//
// Config files may be stored compressed (for example alongside large capture
// archives); the loader sniffs the leading magic bytes with Detect and runs
// the matching codec before handing bytes to the tokenizer. All codecs here
// operate on self-describing frame formats so a file can be identified by its
// first four bytes:
//
//   - Zstd: Zstandard frames (gozstd when built with cgo, klauspost otherwise)
//   - S2:   S2/Snappy framed streams
//   - LZ4:  LZ4 frame format
//   - Gzip: gzip streams
//   - NoOp: pass-through, used when no magic matches
//
// Compress is the inverse and exists mainly for tests and tooling that write
// compressed fixtures.
package compress
