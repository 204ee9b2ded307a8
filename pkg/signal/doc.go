// Package signal provides poll-based reactive values.
//
// A Signal reports changes through PollChange. The first poll of a fresh
// signal yields its current value. Later polls yield a value only when it
// changed since the previous Ready, and otherwise register the task's waker
// and return Pending. Intermediate values may be coalesced: a subscriber is
// guaranteed to eventually observe the latest value, not every value.
//
// Signals are driven by the executor package. ForEach turns a signal into a
// Future that runs a callback once per observed value.
package signal
