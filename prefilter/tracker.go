package prefilter

// Tracker wraps a Finder with effectiveness tracking.
//
// The tracker counts candidates reported by the finder and matches confirmed
// by the caller. Once enough candidates have been seen and the ratio of
// confirms to candidates falls below MinEfficiency, the tracker retires the
// finder and Find reports -1 from then on, telling the caller to scan every
// position instead.
//
// Example usage:
//
//	tracker := prefilter.NewTracker(pf)
//	for at := 0; tracker.IsActive(); {
//	    pos := tracker.Find(haystack, at)
//	    if pos == -1 {
//	        break
//	    }
//	    if d.MatchAt(haystack, pos) >= 0 {
//	        tracker.ConfirmMatch()
//	    }
//	    at = pos + 1
//	}
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	inner Finder

	candidates uint64
	confirms   uint64

	checkInterval  uint64
	minEfficiency  float64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness (in candidates).
	// Default: 64
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of confirms/candidates.
	// Default: 0.1
	MinEfficiency float64

	// WarmupPeriod is the number of candidates seen before the first check.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker with the default configuration.
// Returns nil if inner is nil.
func NewTracker(inner Finder) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration.
// Returns nil if inner is nil.
func NewTrackerWithConfig(inner Finder, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		minEfficiency: config.MinEfficiency,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// Find returns the next candidate position, or -1 when there is none or the
// tracker has retired the finder.
func (t *Tracker) Find(haystack []byte, at int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, at)
	if pos >= 0 {
		t.candidates++
		t.checkEffectiveness()
	}
	return pos
}

// ConfirmMatch records that the last candidate was a real match
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the finder is still in use
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the candidate and confirm counts, their ratio, and whether
// the finder is still active.
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64, active bool) {
	candidates = t.candidates
	confirms = t.confirms
	if candidates > 0 {
		efficiency = float64(confirms) / float64(candidates)
	}
	active = t.active
	return
}

// Reset clears statistics and re-enables the finder
func (t *Tracker) Reset() {
	t.candidates = 0
	t.confirms = 0
	t.lastCheckpoint = 0
	t.active = true
}

func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.warmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.candidates

	if float64(t.confirms)/float64(t.candidates) < t.minEfficiency {
		t.active = false
	}
}
