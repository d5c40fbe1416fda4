// Package analysis derives per-flow performance metrics from packet event traces.
//
// # Reading Guide
//
// Start with these files to understand the single-pass engine:
//   - trace/event.go: decoding one positional trace line into an Event
//   - engine.go: send / round-trip / one-way classification and running state
//   - parse.go: folding a file through the engine, error and skip policy
//   - aggregate.go: averaging FlowMetrics into an AggregateReport
//
// Sub-packages:
//   - analysis/trace/: line decoder, no dependency on this package
//   - analysis/throughput/: loader for externally measured "time value" series
//
// An Engine is used for exactly one protocol tag over one file. Pending sends
// are keyed by the opaque sequence-number token and are kept for the whole
// pass unless EngineConfig.Strict is set.
package analysis
