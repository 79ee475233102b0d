// Package tws provides a small top-level convenience API for converting
// between Tile World's binary .tws solution format and its textual move
// notation.
//
// # Basic usage
//
// Reading a binary solution file and rendering it as a document:
//
//	import "github.com/tandemgo/tws"
//
//	data, _ := os.ReadFile("CHIPS.tws")
//	doc, _ := tws.Decode(data, diag.Discard)
//	jsonBytes, _ := doc.Bytes()
//
// Converting a document back to a binary solution file:
//
//	doc, _ := document.Parse(jsonBytes)
//	data, _ := tws.Encode(doc, diag.Discard)
//
// This package provides convenient top-level wrappers around the container
// and document packages, simplifying the most common use cases. For
// fine-grained control over per-level diagnostics, use those packages
// directly.
package tws

import (
	"github.com/tandemgo/tws/container"
	"github.com/tandemgo/tws/diag"
	"github.com/tandemgo/tws/document"
)

// Decode parses a binary .tws solution file and renders it as a document
// Value tree. Per-level decode failures are reported to r and skipped
// rather than aborting the whole file.
func Decode(data []byte, r diag.Reporter) (document.Value, error) {
	c, err := container.Read(data, r)
	if err != nil {
		return document.Value{}, err
	}
	return document.FromContainer(c)
}

// Encode renders a document Value tree as a binary .tws solution file.
// Unknown fields and recoverable per-solution problems are reported to r;
// a fatal per-solution problem is skipped rather than aborting the batch.
func Encode(doc document.Value, r diag.Reporter) ([]byte, error) {
	c, err := document.ToContainer(doc, r)
	if err != nil {
		return nil, err
	}
	return container.Write(c)
}
