package viz

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TimeSequence is the name of the logical time axis every sample is
// indexed on.
const TimeSequence = "idx"

// Config groups the session parameters.
type Config struct {
	Prefix      string // namespace prepended to every emitted path, e.g. "online/"
	WindowSize  int    // sliding window width in samples; <= 0 disables layout planning
	MemoryLimit string // advisory recording memory cap passed to the viewer, e.g. "50MB"
}

// Stats aggregates per-session counters for final reporting.
type Stats struct {
	Samples         int // samples processed
	ScalarsAppended int // finite scalar leaves emitted
	ImagesAppended  int // image frames emitted
	ImagesSkipped   int // image payloads rejected (type or shape)
	WarnedOrigins   int // distinct origins with at least one warning
}

// Fields exposes the counters for structured logging.
func (st Stats) Fields() logrus.Fields {
	return logrus.Fields{
		"samples":        st.Samples,
		"scalars":        st.ScalarsAppended,
		"images":         st.ImagesAppended,
		"images_skipped": st.ImagesSkipped,
		"warned_origins": st.WarnedOrigins,
	}
}

// Session converts samples into viewer log calls. It owns the one-shot
// layout flag and the warn-once origin set; both are mutated only inside
// Process, so a single Session must not be driven from multiple
// goroutines without external serialization.
type Session struct {
	cfg    Config
	viewer Viewer
	id     string

	planned bool
	warned  map[string]bool
	stats   Stats
	closed  bool
}

// NewSession creates a session logging through the given viewer. There is
// no ambient global state: every session carries its own configuration
// and identity.
func NewSession(cfg Config, viewer Viewer) *Session {
	s := &Session{
		cfg:    cfg,
		viewer: viewer,
		id:     fmt.Sprintf("Runtime_%s_%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8]),
		warned: make(map[string]bool),
	}
	logrus.Infof("session %s started (prefix=%q, window=%d)", s.id, cfg.Prefix, cfg.WindowSize)
	if cfg.MemoryLimit != "" {
		logrus.Debugf("session %s: viewer memory limit hint %s", s.id, cfg.MemoryLimit)
	}
	return s
}

// ID returns the generated session identifier.
func (s *Session) ID() string {
	return s.id
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Process ingests one sample: plan the layout if this is the first call,
// move the time cursor to the sample's index, then emit numeric and image
// channels. Samples may arrive out of order or with gaps; each call is an
// independent cursor set followed by writes at that cursor.
func (s *Session) Process(sample Sample) {
	if !s.planned {
		s.planOnce(sample)
	}

	s.viewer.SetTimeCursor(TimeSequence, sample.Idx)

	s.logNumericBlock("states", sample.States)
	s.logNumericBlock("actions", sample.Actions)
	s.logImageBlock("colors", sample.Colors)
	s.logImageBlock("depths", sample.Depths)

	// Tactiles and Audios ride on the sample untouched.

	s.stats.Samples++
}

// ProcessAll replays samples in the given order, one at a time. Pacing
// between samples is the caller's concern.
func (s *Session) ProcessAll(samples []Sample) {
	for _, sample := range samples {
		s.Process(sample)
	}
}

// Close logs the final counters. Idempotent; the session stays usable
// afterwards only for Stats.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	logrus.WithFields(s.stats.Fields()).Infof("session %s closed", s.id)
}

// planOnce attempts layout planning for the first sample and marks the
// session planned regardless of the outcome: later samples never get a
// second attempt, even when their shape differs (channels missing from
// the first sample are never paneled).
func (s *Session) planOnce(sample Sample) {
	s.planned = true
	if s.cfg.WindowSize <= 0 {
		return
	}
	layout, ok := PlanLayout(s.cfg.Prefix, s.cfg.WindowSize, sample)
	if !ok {
		logrus.Debugf("session %s: first sample yields no views, skipping layout", s.id)
		return
	}
	s.viewer.RegisterLayout(layout)
	logrus.Infof("session %s: registered layout with %d views in %d columns", s.id, len(layout.Views), layout.Columns)
}

// logNumericBlock emits every numeric leaf of a states/actions block. The
// reserved body sub-mapping is routed through the category taxonomy; all
// other entries flatten under their raw key.
func (s *Session) logNumericBlock(block string, data Mapping) {
	if len(data) == 0 {
		return
	}
	remaining := data
	if body, ok := data.Get(bodyKey); ok {
		s.logBodyGroups(block, body)
		remaining = data.Without(bodyKey)
	}
	s.emitScalars(s.cfg.Prefix+block, remaining)
}

// logBodyGroups flattens each body entry under
// <prefix><block>/body/<category>/<key>.
func (s *Session) logBodyGroups(block string, body Value) {
	mapping, ok := body.(Mapping)
	if !ok {
		return
	}
	for _, e := range mapping {
		base := fmt.Sprintf("%s%s/body/%s/%s", s.cfg.Prefix, block, Categorize(e.Key), e.Key)
		s.emitScalars(base, e.Val)
	}
}

// emitScalars flattens a value and appends every finite leaf. NaN and
// infinite leaves are dropped silently.
func (s *Session) emitScalars(base string, v Value) {
	for path, value := range Flatten(base, v) {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		s.viewer.AppendScalar(path, value)
		s.stats.ScalarsAppended++
	}
}

func (s *Session) logImageBlock(block string, images Mapping) {
	for _, e := range images {
		s.ingestImage(s.cfg.Prefix+block+"/"+e.Key, e.Val)
	}
}

// warnOnce emits one diagnostic text entry per origin for the lifetime of
// the session; repeat failures at the same origin stay silent to bound
// diagnostic volume under sustained bad input.
func (s *Session) warnOnce(origin, message string) {
	s.stats.ImagesSkipped++
	if s.warned[origin] {
		return
	}
	s.warned[origin] = true
	s.stats.WarnedOrigins++
	logrus.Warnf("session %s: %s (origin %s)", s.id, message, origin)
	s.viewer.AppendText(origin+"/warning", message)
}
