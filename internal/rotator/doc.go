// Package rotator cycles a fixed list of variants on a timer and publishes one
// morph.Sequence per transition.
//
// ARCHITECTURE:
//
// Single-Writer Transitions:
// Every transition runs under one mutex, from step advance through publication.
// This ensures:
//   - Ticks never overlap, even if the timer could fire concurrently
//   - A frame is fully published before the next transition starts
//   - The allocator and current sequence only ever have one writer
//
// Transition Flow:
//  1. Ticker fires (or a caller invokes Advance directly)
//  2. step <- (step + 1) mod len(variants)
//  3. Morpher diffs the current sequence against variants[step]
//  4. Override rules flag forced letters as new
//  5. Frame is published to the Publisher
//
// Teardown:
// Stop waits for an in-flight transition, then refuses further ones and stops
// the ticker. No frame is published after Stop returns.
package rotator
