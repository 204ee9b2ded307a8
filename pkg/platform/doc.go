// Package platform defines the capability every native view implements and
// the bridge used to reach real widgets.
//
// A Node is one native view. A View is a shared, lock-guarded handle to a
// Node; copies of a View refer to the same node. The Registry creates
// bridge-backed nodes that forward every mutation to native code over the
// "sprout/views" method channel.
package platform
