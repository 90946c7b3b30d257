package viz

import (
	"errors"
	"fmt"
)

// ErrEpisodeNotFound is returned when the backing record for an episode
// or ordinal does not exist.
var ErrEpisodeNotFound = errors.New("episode not found")

// EpisodeSource supplies recorded samples. Implementations that read
// episode directories off disk live outside this module; the core only
// consumes this boundary.
type EpisodeSource interface {
	// Sample returns the sample at the given 0-based ordinal within an
	// episode, or an error wrapping ErrEpisodeNotFound when either the
	// episode or the ordinal is absent.
	Sample(episodeID string, ordinal int) (Sample, error)
	// Len returns the number of samples in an episode, 0 if unknown.
	Len(episodeID string) int
}

// MemorySource is an in-memory EpisodeSource, used for synthetic replay
// and tests.
type MemorySource struct {
	episodes map[string][]Sample
}

// NewMemorySource creates an empty in-memory episode source.
func NewMemorySource() *MemorySource {
	return &MemorySource{episodes: make(map[string][]Sample)}
}

// Add appends samples to an episode, creating it on first use.
func (m *MemorySource) Add(episodeID string, samples ...Sample) {
	m.episodes[episodeID] = append(m.episodes[episodeID], samples...)
}

// Sample implements EpisodeSource.
func (m *MemorySource) Sample(episodeID string, ordinal int) (Sample, error) {
	samples, ok := m.episodes[episodeID]
	if !ok {
		return Sample{}, fmt.Errorf("episode %q: %w", episodeID, ErrEpisodeNotFound)
	}
	if ordinal < 0 || ordinal >= len(samples) {
		return Sample{}, fmt.Errorf("episode %q ordinal %d: %w", episodeID, ordinal, ErrEpisodeNotFound)
	}
	return samples[ordinal], nil
}

// Len implements EpisodeSource.
func (m *MemorySource) Len(episodeID string) int {
	return len(m.episodes[episodeID])
}
