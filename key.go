package structree

import "fmt"

// Key addresses one child position within a flattened node. Traversal tools
// join keys to form paths into nested trees.
type Key interface {
	fmt.Stringer
}

// AttrKey is the default key form: a child addressed by its field name.
type AttrKey struct {
	Name string
}

func (k AttrKey) String() string {
	return "." + k.Name
}

// KeyChild pairs a traversal key with the child value it addresses.
type KeyChild struct {
	Key   Key
	Value any
}
