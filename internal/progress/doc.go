// Package progress provides periodic trigger implementations used by the
// demo commands in cmd/ to throttle throughput reporting.
//
// This is purely a reporting aid for demo binaries — it has nothing to do
// with pipequeue's push/pop protocol, which never times out or cancels an
// in-flight push or pop.
package progress
