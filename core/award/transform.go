package award

// Transform is the filter/transform stage applied to an availability response.
//
// With dates set, only entries whose ParsedDate falls inside the inclusive
// range are kept; an entry whose ParsedDate cannot be parsed is dropped. With
// dates nil every entry is kept. Each kept entry has its four mileage costs
// normalized. The input slice is left untouched.
func Transform(entries []Availability, dates *DateRange) []Availability {
	out := make([]Availability, 0, len(entries))
	for _, entry := range entries {
		if dates != nil && !inRange(entry, *dates) {
			continue
		}
		out = append(out, NormalizeCosts(entry))
	}
	return out
}

func inRange(entry Availability, dates DateRange) bool {
	parsed, err := ParseDate(entry.ParsedDate)
	if err != nil {
		return false
	}
	return dates.Contains(parsed)
}

// NormalizeCosts returns a copy of a with every cabin's mileage cost normalized.
func NormalizeCosts(a Availability) Availability {
	for _, cabin := range Cabins {
		cost := a.Cost(cabin)
		*cost = cost.Normalize()
	}
	return a
}

// CountAbsentCosts counts cabin costs that are absent across entries.
func CountAbsentCosts(entries []Availability) int {
	n := 0
	for i := range entries {
		for _, cabin := range Cabins {
			if !entries[i].Cost(cabin).Valid() {
				n++
			}
		}
	}
	return n
}
