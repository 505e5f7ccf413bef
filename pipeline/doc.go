// Package pipeline chains pipequeue.Queue instances through worker
// goroutines, each draining an upstream Consumer, applying a transformation,
// and forwarding into a downstream Producer.
//
// Build constructs the chain from a starting element size and a sequence of
// Stage descriptors, spawning one background worker per intermediate stage.
// A worker pops into a fixed-size batch buffer, invokes its StageFunc, and
// on a zero-length pop drops both of its handles and exits — propagating
// end-of-stream to the next stage exactly as pipequeue's handle-drop
// cascade is designed to do.
package pipeline
