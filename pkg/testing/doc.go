// Package testing provides a recording platform for composer and view tests.
//
// # Quick Start
//
// Create a factory, build views from it, and inspect the tree:
//
//	func TestToggle(t *testing.T) {
//	    f := sproutest.NewFactory()
//	    root := f.MustView("stack")
//	    // compose into root ...
//	    require.Equal(t, []string{"A", "B"}, sproutest.Names(root))
//	}
//
// # Call Log
//
// Every mutation that reaches a RecordingNode is appended to the factory's
// call log, which makes "no extra mutations" assertions straightforward:
//
//	before := len(f.Calls())
//	// ... recompose ...
//	require.Len(t, f.Calls(), before)
//
// # Golden Dumps
//
// Dump renders a deterministic text tree. AssertGolden compares it against
// testdata/golden/<name>.golden; run tests with -update to rewrite it.
//
// # Failure Injection
//
// FailNext makes the next mutation of a given kind fail without touching
// the tree.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import sproutest "github.com/sprout-ui/sprout/pkg/testing"
package testing
