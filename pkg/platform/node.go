package platform

// Node is the capability a native view implements.
//
// Removal detaches a child without destroying it; a removed child may be
// attached again elsewhere.
type Node interface {
	// UpdateProp sets a named property.
	UpdateProp(name string, value PropValue) error

	// AppendChild attaches child after the existing children. The child must
	// not be attached anywhere else.
	AppendChild(child View) error

	// InsertChildAt attaches child at index, which must be at most the
	// current child count.
	InsertChildAt(child View, index int) error

	// RemoveChild detaches child.
	RemoveChild(child View) error

	// RemoveChildAt detaches the child at index.
	RemoveChildAt(index int) error

	// RawHandle exposes the underlying native reference.
	RawHandle() (any, error)
}
