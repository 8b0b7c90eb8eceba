// Package mediaforge provides the shared types for a generative-media MCP
// server: request and result values for the video, image, speech, and vision
// tools, and the error taxonomy used across the generation pipeline.
//
// # Architecture
//
// Each tool invocation flows through the same pipeline:
//
//	validate → fallback over model candidates → {submit+poll | call+retry | direct call} → fetch → sink
//
// The pieces live in dedicated packages:
//
//   - [github.com/mediaforge/mediaforge/validate]: parameter validation and normalization
//   - [github.com/mediaforge/mediaforge/fallback]: sequential trial over ordered model candidates
//   - [github.com/mediaforge/mediaforge/poll]: polling of long-running provider operations
//   - [github.com/mediaforge/mediaforge/retry]: exponential backoff for synchronous provider calls
//   - [github.com/mediaforge/mediaforge/fetch]: authenticated artifact downloads
//   - [github.com/mediaforge/mediaforge/storage]: durable sinks for generated bytes
//   - [github.com/mediaforge/mediaforge/tools]: the tool services tying the pipeline together
//   - [github.com/mediaforge/mediaforge/mcp]: the MCP surface over stdio or streamable HTTP
//
// # Error Handling
//
// Failures are absorbed at the lowest level that can handle them: transient
// provider errors are retried, a failed candidate advances the fallback loop,
// and only request-level failures (validation, exhausted candidates, storage)
// reach the caller. Use [IsInvalidArgument], [IsTransient], and errors.As with
// the typed errors in this package to inspect outcomes.
package mediaforge
