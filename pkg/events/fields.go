package events

import "github.com/zoobzio/capitan"

// Field keys for Sprout events.
var (
	// KeyTaskID is the task identifier.
	KeyTaskID = capitan.NewStringKey("task_id")

	// KeyRegion is the region identifier.
	KeyRegion = capitan.NewStringKey("region")

	// KeyCount is the number of views inserted or removed.
	KeyCount = capitan.NewIntKey("count")

	// KeyCapacity is the ready queue capacity.
	KeyCapacity = capitan.NewIntKey("capacity")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")
)
