// Package events declares the capitan signals emitted by the executor and the
// composer. Hook them to build audit trails or metrics:
//
//	capitan.Hook(events.RegionRendered, func(_ context.Context, e *capitan.Event) {
//	    n, _ := events.KeyCount.From(e)
//	    log.Printf("region rendered %d views", n)
//	})
package events

import "github.com/zoobzio/capitan"

// Task lifecycle signals.
var (
	// TaskSpawned is emitted when a future is wrapped in a task and queued.
	TaskSpawned = capitan.NewSignal(
		"sprout.task.spawned",
		"Task spawned onto the ready queue",
	)

	// TaskCompleted is emitted when a task's future resolves.
	TaskCompleted = capitan.NewSignal(
		"sprout.task.completed",
		"Task future resolved",
	)

	// TaskCanceled is emitted when a cancellation handle is dropped or discarded.
	TaskCanceled = capitan.NewSignal(
		"sprout.task.canceled",
		"Task canceled",
	)

	// QueueOverflow is emitted right before the executor aborts on a full queue.
	QueueOverflow = capitan.NewSignal(
		"sprout.executor.queue.overflow",
		"Ready queue capacity exceeded",
	)
)

// Region signals.
var (
	// RegionRendered is emitted after a signal region replays its render closure.
	RegionRendered = capitan.NewSignal(
		"sprout.region.rendered",
		"Signal region rendered",
	)

	// RegionRewound is emitted after a region removed its previous render.
	RegionRewound = capitan.NewSignal(
		"sprout.region.rewound",
		"Signal region rewound",
	)

	// RegionFailed is emitted when a region stops because its render failed.
	RegionFailed = capitan.NewSignal(
		"sprout.region.failed",
		"Signal region failed",
	)
)
