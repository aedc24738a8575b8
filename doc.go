// Package structree provides immutable composite value types ("structs") that
// decompose into an ordered list of traversable children plus static metadata,
// and reconstruct from that decomposition.
//
// The decomposition protocol lets generic tree algorithms (map, flatten,
// restructure, diff) operate uniformly over arbitrarily nested, heterogeneous
// struct hierarchies without knowing the concrete types involved.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	structree/           Core: registrar, construction, tree codec
//	├── internal/fields/ Field descriptor tables and the child/static classifier
//	├── errors/          Structured error types for debugging
//	├── treescope/       Colored tree rendering of registered values
//	└── cmd/treescope/   Interactive tree explorer
//
// # Quick Start
//
// Declare a type by embedding Struct, register it, and use it as a tree node:
//
//	type Point struct {
//	    structree.Struct
//	    X float64
//	    Y float64
//	}
//
//	var pointType = structree.MustRegister[Point]()
//
//	p := structree.MustNew[Point](1.0, 2.0)
//	children, meta, _ := structree.FlattenWithKeys(p)
//	back, _ := structree.UnflattenAs[Point](meta, values(children))
//
// Fields are traversable children by default; tag a field `tree:"static"` to
// carry it as opaque metadata instead:
//
//	type Tagged struct {
//	    structree.Struct
//	    Value any
//	    Tag   string `tree:"static"`
//	}
//
// # Registration
//
// Every concrete type must be registered exactly once before instances can be
// constructed. A type that merely embeds a registered type is abstract and
// cannot be instantiated. Registration runs safety checks that catch common
// embedding pitfalls: silently promoted fields, silently discarded custom
// initializers, double registration.
//
// # Construction
//
// Registered types are constructed positionally through New, by name through
// FromAttributes, or via a custom initializer installed with WithInit. Custom
// initializers stage their assignments in a Builder, which enforces that every
// declared field receives a value before the frozen instance is produced.
//
// # Immutability
//
// Instances are plain Go struct values. Once constructed they are treated as
// immutable: all rewriting goes through the codec (flatten, modify children,
// unflatten), which always produces fresh values. Instances are freely
// shareable across goroutines. Registration normally happens once per type
// during package initialization; the registry itself is safe for concurrent
// use.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[register] field_order_mismatch: type mypkg.Extended - declared fields [Z] do not match effective fields [X Y Z]
//	[construct] abstract_type: type mypkg.Base - type is not registered
package structree
