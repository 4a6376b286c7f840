package schema

import "strings"

// Route is the row schema of the Routes table.
var Route = &ObjectSchema{
	Name:               "Routes",
	IdentityName:       "Route",
	IDProperty:         "id",
	DisplayProperty:    "id",
	FeaturedProperties: []string{"originAirport", "destinationAirport", "distance", "numDaysOut"},
	Properties: []Property{
		{Name: "id", Type: TypeString, FromKey: "ID"},
		{Name: "originAirport", Type: TypeString, FromKey: "OriginAirport"},
		{Name: "originRegion", Type: TypeString, FromKey: "OriginRegion"},
		{Name: "destinationAirport", Type: TypeString, FromKey: "DestinationAirport"},
		{Name: "destinationRegion", Type: TypeString, FromKey: "DestinationRegion"},
		{Name: "numDaysOut", Type: TypeNumber, FromKey: "NumDaysOut"},
		{Name: "distance", Type: TypeNumber, FromKey: "Distance"},
		{Name: "source", Type: TypeString, FromKey: "Source"},
		{Name: "autoCreated", Type: TypeBoolean, FromKey: "AutoCreated"},
	},
}

// Availability is the row schema of the Availability table.
var Availability = &ObjectSchema{
	Name:            "Availability",
	IdentityName:    "Availability",
	IDProperty:      "id",
	DisplayProperty: "id",
	FeaturedProperties: []string{
		"route", "date",
		"yAvailable", "wAvailable", "jAvailable", "fAvailable",
		"yMileageCost", "wMileageCost", "jMileageCost", "fMileageCost",
	},
	Properties: availabilityProperties(),
}

func availabilityProperties() []Property {
	props := []Property{
		{Name: "id", Type: TypeString, FromKey: "ID"},
		{Name: "routeID", Type: TypeString, FromKey: "RouteID"},
		{Name: "route", Type: TypeObject, FromKey: "Route", Object: Route},
		{Name: "date", Type: TypeString, FromKey: "Date", Hint: HintDate},
	}

	cabins := []string{"Y", "W", "J", "F"}
	perCabin := []struct {
		suffix string
		typ    ValueType
	}{
		{"Available", TypeBoolean},
		{"MileageCost", TypeNumber},
		{"RemainingSeats", TypeNumber},
		{"Airlines", TypeString},
		{"Direct", TypeBoolean},
	}
	for _, field := range perCabin {
		for _, c := range cabins {
			props = append(props, Property{
				Name:    strings.ToLower(c) + field.suffix,
				Type:    field.typ,
				FromKey: c + field.suffix,
			})
		}
	}

	return append(props,
		Property{Name: "source", Type: TypeString, FromKey: "Source"},
		Property{Name: "computedLastSeen", Type: TypeString, FromKey: "ComputedLastSeen"},
		Property{Name: "apiTermsOfUse", Type: TypeString, FromKey: "APITermsOfUse"},
	)
}

// Lookup returns a declared schema by table name, case-insensitively.
// "routes" and "availability" are accepted.
func Lookup(name string) (*ObjectSchema, bool) {
	for _, s := range []*ObjectSchema{Route, Availability} {
		if strings.EqualFold(s.Name, name) || strings.EqualFold(s.IdentityName, name) {
			return s, true
		}
	}
	return nil, false
}
