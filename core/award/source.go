package award

import "strings"

// Source identifies the mileage program availability is requested for.
type Source string

// Known mileage programs. The list drives parameter hints only; any other
// value is still sent upstream.
const (
	SourceAvianca        Source = "avianca"
	SourceAmerican       Source = "american"
	SourceAeromexico     Source = "aeromexico"
	SourceDelta          Source = "delta"
	SourceEthiad         Source = "ethiad"
	SourceUnited         Source = "united"
	SourceVirginAtlantic Source = "virginatlantic"
)

// KnownSources returns the declared mileage programs in display order.
func KnownSources() []Source {
	return []Source{
		SourceAvianca,
		SourceAmerican,
		SourceAeromexico,
		SourceDelta,
		SourceEthiad,
		SourceUnited,
		SourceVirginAtlantic,
	}
}

// IsKnown reports whether s is one of the declared mileage programs.
func (s Source) IsKnown() bool {
	for _, k := range KnownSources() {
		if strings.EqualFold(string(k), string(s)) {
			return true
		}
	}
	return false
}

func (s Source) String() string {
	return string(s)
}
