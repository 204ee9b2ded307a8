// Package compose positions views into their parent's child list and keeps
// signal-driven regions of the tree up to date without diffing.
//
// A Composer appends views while the tree is built. A region created with
// IfSignal or MatchSignal gets its own Composer that inserts at an absolute
// index computed from a PositionContext, records every insertion in a
// transaction log, and on the next value removes exactly those views before
// rendering again. Each region owns a contiguous index range of its parent's
// children, so removal needs no comparison with the new content.
//
// # Position contexts
//
// A PositionContext is a stack of counters whose sum is the index of the
// next view. Clones share counters, so a sibling that renders later still
// sees how many views every earlier region currently holds. A region's
// counters also feed a single total counter; composers outside the region
// only see that total.
//
// # Ownership
//
// Regions created while composing the static tree live until their parent
// view is torn down. Regions created inside another region's render are
// removed when that region re-renders. Views removed by a rewind are torn
// down, which cancels any subscriptions attached to them.
//
// All composition must happen on one goroutine: the one driving the
// executor that polls region subscriptions.
package compose
