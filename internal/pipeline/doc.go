// Package pipeline runs the per-thread steps of an analysis and combines the
// results.
//
// Each requested thread gets its own Pipeline, which scrapes the thread and
// then applies the requested post range. A BatchProcessor runs pipelines for
// many threads with bounded concurrency, isolating failures so that one bad
// thread never aborts the others. The Analyzer validates a request, runs the
// batch and hands the collected posts to the odds engine.
package pipeline
