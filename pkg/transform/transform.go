// Package transform converts Rust source code into a PAD diagram tree.
//
// Three stages compose, data flowing one way:
//
//  1. Extract: select the function definitions among the file's top-level
//     items, discarding everything else (Functions).
//  2. Map: recursively convert each function body into the PAD node
//     algebra (MapFunction).
//  3. Encode: serialize the single root node to the JSON wire form
//     (pad.Encode).
//
// The whole operation is a pure function from source text to result text:
// no I/O, no shared state across invocations, safe to call concurrently.
// Failures never escape as errors; they are encoded as a root Error node in
// the returned JSON.
package transform

import (
	"context"

	"github.com/yanqirenshi/padgen/pkg/pad"
	"github.com/yanqirenshi/padgen/pkg/syntax"
)

// noFunctionMessage is the fixed Error message when the source parses but
// contains no function definitions. An empty diagram is never emitted;
// absence is surfaced explicitly.
const noFunctionMessage = "No function found"

// Source converts Rust source text into PAD diagram JSON.
//
// On success the result is a Sequence with one Block per function
// definition, in source order. A syntax error yields an Error node whose
// message starts with "Parse error: "; a valid parse with no functions
// yields an Error node with the message "No function found". The return
// value is always a parseable JSON string.
func Source(ctx context.Context, src []byte) string {
	file, err := syntax.Parse(ctx, src)
	if err != nil {
		return pad.Encode(pad.Error("Parse error: " + err.Error()))
	}
	defer file.Close()

	fns := Functions(file.Root())
	if len(fns) == 0 {
		return pad.Encode(pad.Error(noFunctionMessage))
	}

	blocks := make([]*pad.Node, 0, len(fns))
	for _, fn := range fns {
		blocks = append(blocks, MapFunction(file, fn))
	}
	return pad.Encode(pad.Sequence(blocks...))
}
