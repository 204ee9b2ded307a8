// Package executor provides the single-threaded cooperative scheduler that
// drives signal subscriptions.
//
// Work is expressed as a Future: a value that is polled until it reports
// Ready. A Future that cannot make progress returns Pending after arranging
// for its Waker to be called; waking re-queues the owning Task on a bounded
// ready queue. Tasks are polled strictly one at a time, so everything a task
// does during a poll (including tree mutations) is visible to the next.
//
// # Operating Modes
//
// In the embedded mode the executor owns its loop:
//
//	exec := executor.New()
//	exec.Spawner().Spawn(fut)
//	exec.Run(ctx)
//
// In the host-stepped mode a hosting runtime that owns the platform main loop
// alternates between waiting for work and doing it:
//
//	for {
//	    exec.ReceiveNextReadyTask(ctx) // blocks, stages one task
//	    // host work
//	    exec.PollStagedTask()          // polls the staged task once
//	}
//
// See package host for the handle-based entry points used across a native
// boundary.
//
// # Wakes
//
// Wakes are not deduplicated. Waking a task that is already queued queues it
// again; the redundant poll is harmless because a task that completed is
// never polled again and a pending task simply returns Pending.
//
// # Cancellation
//
// Spawn returns a CancellationHandle. Cancel flips a flag that the task
// observes on its next poll; the wrapped future is never polled after Cancel
// returns. Leak detaches the handle so the task keeps running until the
// returned Leaked is discarded.
package executor
