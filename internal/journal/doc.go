// Package journal records rotation frames in SQLite.
//
// The journal is append-only. Each frame is keyed by (run, tick), so writing
// the same frame twice is a no-op. Letters are stored as JSON so a run can be
// read back exactly as it was published.
//
// A Journal is a rotator.Publisher and can be attached to a running rotation
// directly.
package journal
