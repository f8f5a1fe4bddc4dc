// Package ionspect renders binary Ion as a side-by-side table of hex
// bytes and equivalent text Ion for debugging malformed or unfamiliar
// payloads.
//
// # Basic Usage
//
// Inspect a complete binary Ion buffer:
//
//	data, err := os.ReadFile("payload.10n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !ionspect.HasVersionMarker(data) {
//	    log.Fatal("not binary Ion")
//	}
//	if err := ionspect.Inspect(data, os.Stdout, ionspect.Options{}); err != nil {
//	    log.Fatal(err)
//	}
//
// # Byte Windows
//
// Large streams can be windowed. Skipped user values are summarized in
// comment rows; system values such as version markers and symbol tables
// are always shown so the remaining output stays interpretable:
//
//	opts := ionspect.Options{SkipBytes: 4096, LimitBytes: 1024}
//	err := ionspect.Inspect(data, os.Stdout, opts)
package ionspect

import (
	"io"

	"github.com/ionspect/ionspect/pkg/inspect"
	"github.com/ionspect/ionspect/pkg/ionbin"
)

// Options configures the byte window of an inspection run.
// Users can import just "github.com/ionspect/ionspect" without subpackages.
type Options = inspect.Options

// Inspect renders data as a hex/text table on w.
func Inspect(data []byte, w io.Writer, opts Options) error {
	return inspect.Inspect(data, w, opts)
}

// HasVersionMarker reports whether data begins with the Ion 1.0 binary
// version marker.
func HasVersionMarker(data []byte) bool {
	return ionbin.HasVersionMarker(data)
}
