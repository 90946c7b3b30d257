// Package viz turns raw teleoperation episode samples into viewer log
// calls: time-indexed scalar series grouped by semantic channel plus
// spatial image panels, laid out automatically without prior schema
// knowledge.
//
// # Reading Guide
//
// Start with these three files to understand the ingestion core:
//   - value.go: the closed value model (Scalar, Sequence, Mapping, Tensor, Opaque)
//   - flatten.go: nested structure -> stable (path, scalar) traversal
//   - session.go: per-sample orchestration, time cursor, warn-once state
//
// # Architecture
//
// The package defines the Viewer and EpisodeSource boundaries and keeps
// all inference logic local; implementations live in sub-packages:
//   - viz/record/: in-memory Viewer capturing calls as pure data records
//
// Layout planning is one-shot by design: the full panel set is frozen
// from the shape of the first processed sample and never adapts, so
// channels that only appear in later samples are never paneled. That is
// an accepted limitation, not a bug.
//
// # Key Interfaces
//
//   - Viewer: register layout, set time cursor, append scalar/image/text
//   - EpisodeSource: ordinal-indexed sample retrieval
package viz
