// Package bench compares pipequeue.Queue's throughput against two baselines:
// a plain buffered-channel queue, and github.com/randomizedcoder/go-lock-free-ring's
// sharded lock-free MPSC ring. It exists purely to give the comparison
// benchmarks in compare_bench_test.go a home; nothing here is part of the
// public API.
package bench
