// Package mexbridge provides native entry points for a foreign numeric
// runtime: tagged matrix values, bidirectional type conversion, call
// signature binding, and output slot assignment.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	mexbridge/           Root package with the architecture overview
//	├── mx/              Tagged foreign value: dense numeric, logical,
//	│                    char, cell and struct matrices
//	├── convert/         Bidirectional native type <-> foreign value
//	│                    conversion with an extensible registry
//	├── wrap/            Ownership-tracked handles over composite values
//	├── call/            Argument binding against declared signatures
//	│                    and output slot assignment
//	├── dispatch/        Entry-point dispatch table
//	├── session/         Opaque-handle instance registry
//	├── codec/           Canonical CBOR wire form for foreign values
//	├── fixture/         TOML-described call fixtures
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Register an operation and invoke it:
//
//	tbl := dispatch.NewTable()
//	tbl.Register("scale", 1, func(out *call.Results, in []*mx.Array) error {
//	    b, err := call.Bind(in, 2, "offset")
//	    if err != nil {
//	        return err
//	    }
//	    xs, err := call.Get[[]float64](b, 0)
//	    if err != nil {
//	        return err
//	    }
//	    k, err := call.Get[float64](b, 1)
//	    if err != nil {
//	        return err
//	    }
//	    off, err := call.Option(b, "offset", 0.0)
//	    if err != nil {
//	        return err
//	    }
//	    for i := range xs {
//	        xs[i] = xs[i]*k + off
//	    }
//	    return call.Set(out, 0, xs)
//	})
//
//	slots, err := tbl.Invoke(ctx, 1, inputs)
//
// Conversions for new native types register once, in both directions, and
// compose automatically for slices and maps of the registered type:
//
//	convert.Register(pointToArray, arrayToPoint)
//	convert.Freeze()
package mexbridge
