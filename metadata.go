package structree

// Metadata is the static half of a decomposition pair. ChildFieldNames
// records the declaration order of child fields so that Unflatten can restore
// children to their positions; StaticFields carries the values excluded from
// traversal.
type Metadata struct {
	ChildFieldNames []string
	StaticFields    map[string]any
}

// NumChildren returns the number of child fields recorded in the metadata.
func (m Metadata) NumChildren() int {
	return len(m.ChildFieldNames)
}
