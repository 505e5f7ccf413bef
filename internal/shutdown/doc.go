// Package shutdown provides application-lifecycle shutdown signaling for
// the demo commands in cmd/.
//
// This is strictly an outer, cmd-level concern: a Signaler tells a demo's
// feeder goroutine to stop pushing and drop its Producer handle, letting
// pipequeue's ordinary handle-drop cascade (see pipeline.Build) terminate
// the pipeline cleanly. It never cancels or interrupts a Push or Pop call
// already in flight — pipequeue itself has no such mechanism.
package shutdown
