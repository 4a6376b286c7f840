package endpoint

import "award-sync/core/award"

// ParamType is the type of an endpoint parameter.
type ParamType string

const (
	ParamString    ParamType = "string"
	ParamDateArray ParamType = "date_array"
)

// Parameter describes one input accepted by an endpoint.
type Parameter struct {
	Name         string    `json:"name"`
	Type         ParamType `json:"type"`
	Description  string    `json:"description"`
	Optional     bool      `json:"optional"`
	Autocomplete []string  `json:"autocomplete,omitempty"`
}

// Descriptor documents an endpoint for discovery surfaces.
type Descriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Path        string      `json:"path"`
	Parameters  []Parameter `json:"parameters"`
}

// SourceParam is the mileage program selector of the availability endpoint.
var SourceParam = Parameter{
	Name:         "source",
	Type:         ParamString,
	Description:  "What mileage program you are requesting availability for",
	Autocomplete: sourceNames(),
}

// DatesParam is the optional date window of the availability endpoint.
var DatesParam = Parameter{
	Name:        "dates",
	Type:        ParamDateArray,
	Description: "What dates you are requesting availability for",
	Optional:    true,
}

// Descriptors lists the endpoints in the order they are offered.
func Descriptors() []Descriptor {
	return []Descriptor{
		{
			Name:        "Routes",
			Description: "All routes tracked by seats.aero",
			Path:        routesPath,
		},
		{
			Name:        "Availability",
			Description: "Award availability for a mileage program",
			Path:        availabilityPath,
			Parameters:  []Parameter{SourceParam, DatesParam},
		},
	}
}

func sourceNames() []string {
	known := award.KnownSources()
	names := make([]string, 0, len(known))
	for _, s := range known {
		names = append(names, s.String())
	}
	return names
}
