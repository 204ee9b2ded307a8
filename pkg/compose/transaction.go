package compose

import (
	"context"

	"github.com/zoobzio/capitan"

	"github.com/sprout-ui/sprout/pkg/events"
	"github.com/sprout-ui/sprout/pkg/platform"
)

// Add records one insertion made inside a transaction. Index is the
// offset from the start of the transaction's scope at the time of the
// insertion. Views that a nested region renders later are not reflected in
// it, so rewinding works from log order and never reads Index.
type Add struct {
	Index int
	View  platform.View
}

// StartTransaction opens a replay pass. A composer that is not a region is
// anchored at its current position on the first call; after that it should
// only add views inside transactions.
func (c *Composer) StartTransaction() {
	if c.tsi == nil {
		top := c.pc.top()
		c.tsi = c.pc.Clone()
		c.base = c.tsi.Depth()
		c.pc.push(&counter{up: top.up})
	}
	c.inTx = true
}

// EndTransaction closes the replay pass.
func (c *Composer) EndTransaction() {
	c.inTx = false
}

// RewindTransaction removes everything the previous pass inserted:
// regions created during the pass first, then this composer's own views
// from the highest index down. Removed views are torn down. If a removal
// fails, the views not yet removed stay in the log and the error is
// returned.
func (c *Composer) RewindTransaction() error {
	if c.tsi == nil || (len(c.log) == 0 && len(c.nested) == 0) {
		return nil
	}

	c.enter("compose.RewindTransaction")
	defer c.exit()

	for len(c.nested) > 0 {
		last := len(c.nested) - 1
		if err := c.nested[last].remove(); err != nil {
			return err
		}
		c.nested = c.nested[:last]
	}

	start := c.tsi.CurrentIndex()
	removed := 0
	for len(c.log) > 0 {
		i := len(c.log) - 1
		v := c.log[i].View
		if err := c.parent.RemoveChildAt(start + i); err != nil {
			return platformError("compose.RewindTransaction", v, err)
		}
		c.log = c.log[:i]
		removed++
		if err := c.pc.decrementFrom(c.base); err != nil {
			return err
		}
		v.Teardown()
	}
	c.pc.truncate(c.base + 1)

	c.logger.Debug("transaction rewound", "scope", c.name, "removed", removed)
	capitan.Emit(context.Background(), events.RegionRewound,
		events.KeyRegion.Field(c.name),
		events.KeyCount.Field(removed),
	)
	return nil
}

// teardownContents tears down every view and region this composer
// inserted, without touching the parent. Used once the parent is gone.
func (c *Composer) teardownContents() {
	for i := len(c.nested) - 1; i >= 0; i-- {
		c.nested[i].teardown()
	}
	c.nested = nil
	for i := len(c.log) - 1; i >= 0; i-- {
		c.log[i].View.Teardown()
	}
	c.log = nil
}
