package weather

import "time"

// Phase is the presentation form of the day/night flag
type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

// IsNight reports whether observed falls outside [sunrise, sunset].
// All arguments are absolute instants; an observation exactly at sunrise or
// sunset counts as day.
func IsNight(observed, sunrise, sunset time.Time) bool {
	return observed.Before(sunrise) || observed.After(sunset)
}

// PhaseOf maps the night flag to a phase
func PhaseOf(night bool) Phase {
	if night {
		return PhaseNight
	}
	return PhaseDay
}

// IsNight classifies the snapshot at its own observation instant
func (s *Snapshot) IsNight() bool {
	return s.IsNightAt(s.ObservedAt)
}

// IsNightAt classifies the snapshot's city at an arbitrary instant
func (s *Snapshot) IsNightAt(t time.Time) bool {
	return IsNight(t, s.Sunrise, s.Sunset)
}

// Phase returns the snapshot's phase at its observation instant
func (s *Snapshot) Phase() Phase {
	return PhaseOf(s.IsNight())
}
