// Package award models seats.aero routes and award availability and holds the
// filter/transform stage applied to availability responses.
package award

// Route is an origin-destination pair tracked by the upstream service.
// Field names follow the upstream JSON keys.
//
// A Route decoded from JSON keeps the object as received and encodes back to
// it unchanged; the typed fields are a lenient read of that object.
type Route struct {
	ID                 string  `json:"ID"`
	OriginAirport      string  `json:"OriginAirport"`
	OriginRegion       string  `json:"OriginRegion"`
	DestinationAirport string  `json:"DestinationAirport"`
	DestinationRegion  string  `json:"DestinationRegion"`
	NumDaysOut         int     `json:"NumDaysOut"`
	Distance           float64 `json:"Distance"`
	Source             string  `json:"Source"`
	AutoCreated        bool    `json:"AutoCreated"`

	fields object
}

// Availability is a per-date, per-route snapshot of award seats across cabins.
//
// Like Route, a decoded Availability encodes back to the upstream object. The
// only keys that change are the mileage costs, which are written as their
// current value and left out when absent.
type Availability struct {
	ID         string `json:"ID"`
	RouteID    string `json:"RouteID"`
	Route      Route  `json:"Route"`
	Date       string `json:"Date"`
	ParsedDate string `json:"ParsedDate"`

	YAvailable bool `json:"YAvailable"`
	WAvailable bool `json:"WAvailable"`
	JAvailable bool `json:"JAvailable"`
	FAvailable bool `json:"FAvailable"`

	YMileageCost MileageCost `json:"YMileageCost,omitzero"`
	WMileageCost MileageCost `json:"WMileageCost,omitzero"`
	JMileageCost MileageCost `json:"JMileageCost,omitzero"`
	FMileageCost MileageCost `json:"FMileageCost,omitzero"`

	YRemainingSeats int `json:"YRemainingSeats"`
	WRemainingSeats int `json:"WRemainingSeats"`
	JRemainingSeats int `json:"JRemainingSeats"`
	FRemainingSeats int `json:"FRemainingSeats"`

	YAirlines string `json:"YAirlines"`
	WAirlines string `json:"WAirlines"`
	JAirlines string `json:"JAirlines"`
	FAirlines string `json:"FAirlines"`

	YDirect bool `json:"YDirect"`
	WDirect bool `json:"WDirect"`
	JDirect bool `json:"JDirect"`
	FDirect bool `json:"FDirect"`

	Source           string `json:"Source"`
	ComputedLastSeen string `json:"ComputedLastSeen"`
	APITermsOfUse    string `json:"APITermsOfUse"`

	fields object
}

// Cabin is a cabin class code.
type Cabin string

const (
	CabinEconomy  Cabin = "Y"
	CabinPremium  Cabin = "W"
	CabinBusiness Cabin = "J"
	CabinFirst    Cabin = "F"
)

// Cabins lists cabin classes from lowest to highest.
var Cabins = []Cabin{CabinEconomy, CabinPremium, CabinBusiness, CabinFirst}

// Name returns the marketing name of the cabin.
func (c Cabin) Name() string {
	switch c {
	case CabinEconomy:
		return "Economy"
	case CabinPremium:
		return "Premium"
	case CabinBusiness:
		return "Business"
	case CabinFirst:
		return "First"
	default:
		return string(c)
	}
}

// Cost returns a pointer to the mileage cost field for cabin c, or nil for
// an unknown cabin.
func (a *Availability) Cost(c Cabin) *MileageCost {
	switch c {
	case CabinEconomy:
		return &a.YMileageCost
	case CabinPremium:
		return &a.WMileageCost
	case CabinBusiness:
		return &a.JMileageCost
	case CabinFirst:
		return &a.FMileageCost
	default:
		return nil
	}
}
