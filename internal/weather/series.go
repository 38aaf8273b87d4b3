package weather

import (
	"sort"
	"time"
)

// Series is an ordered sequence of observations for one location, ordered
// by timestamp ascending. It is built once by a provider and then only
// read; a single run never shares it across goroutines.
type Series []Observation

// SortByTime orders the series by timestamp ascending. Providers call this
// after decoding so downstream code can rely on the ordering invariant.
func (s Series) SortByTime() {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Timestamp.Before(s[j].Timestamp)
	})
}

// Between returns the observations with timestamps between from and to
// (inclusive). The result shares no backing storage with the receiver.
func (s Series) Between(from, to time.Time) Series {
	var result Series
	for _, obs := range s {
		if (obs.Timestamp.Equal(from) || obs.Timestamp.After(from)) &&
			(obs.Timestamp.Equal(to) || obs.Timestamp.Before(to)) {
			result = append(result, obs)
		}
	}
	return result
}

// First returns the earliest observation. The series must not be empty.
func (s Series) First() Observation { return s[0] }

// Last returns the latest observation. The series must not be empty.
func (s Series) Last() Observation { return s[len(s)-1] }
