// Package reactive binds dashboard inputs to the cells that depend on them.
//
// A Cell declares the inputs it reads, a pure compute function and a Sink
// that receives every recomputed value. A Loop owns the current input
// State and processes input events one at a time, in arrival order: each
// event updates one input and recomputes exactly the cells that declared
// it. Every cell is computed once with the initial state when the loop
// starts, so a freshly opened view is populated before the first event.
//
// One Loop serves one view. It runs on a single goroutine, so compute
// functions and sinks never run concurrently with each other.
package reactive
