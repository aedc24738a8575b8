// Package treescope renders registered tree node values as colored,
// indented trees for terminals.
//
// Registered types render with their type name, child fields addressed by
// their traversal keys, and static fields set apart from the children:
//
//	Sequential(
//	  .Layers = [
//	    [0] = Linear(
//	      .Weights = [[1 0] [0 1]]
//	      # Name = "encode"
//	    )
//	  ]
//	)
//
// Node types can override their display color by implementing
// structree.Colorizer. By default, nodes that implement structree.Callable
// are highlighted with a color derived deterministically from their type
// name, and everything else renders unstyled.
//
// Color output is enabled automatically when stdout is a terminal; use a
// Renderer with WithColor to force either behavior. Unregistered leaf values
// render through a cycle-safe dump.
package treescope
