package award

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// object is an upstream JSON object with its values left undecoded.
type object map[string]json.RawMessage

func decodeObject(data []byte, kind string) (object, error) {
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("%s is not a JSON object: %w", kind, err)
	}
	if o == nil {
		return nil, fmt.Errorf("%s is null", kind)
	}
	return o, nil
}

// value decodes one key, nil when missing or malformed.
func (o object) value(key string) any {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// Typed reads coerce with cast; a value that does not fit reads as zero.

func (o object) text(key string) string { return cast.ToString(o.value(key)) }

func (o object) integer(key string) int { return cast.ToInt(o.value(key)) }

func (o object) number(key string) float64 { return cast.ToFloat64(o.value(key)) }

func (o object) flag(key string) bool { return cast.ToBool(o.value(key)) }

func (c Cabin) key(suffix string) string {
	return string(c) + suffix
}

// UnmarshalJSON reads any JSON object. Fields whose upstream value has the
// wrong type are coerced where possible and otherwise left zero.
func (r *Route) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "route")
	if err != nil {
		return err
	}
	*r = Route{
		ID:                 fields.text("ID"),
		OriginAirport:      fields.text("OriginAirport"),
		OriginRegion:       fields.text("OriginRegion"),
		DestinationAirport: fields.text("DestinationAirport"),
		DestinationRegion:  fields.text("DestinationRegion"),
		NumDaysOut:         fields.integer("NumDaysOut"),
		Distance:           fields.number("Distance"),
		Source:             fields.text("Source"),
		AutoCreated:        fields.flag("AutoCreated"),
		fields:             fields,
	}
	return nil
}

// MarshalJSON writes a decoded route exactly as received.
func (r Route) MarshalJSON() ([]byte, error) {
	if r.fields != nil {
		return json.Marshal(r.fields)
	}
	type plain Route
	return json.Marshal(plain(r))
}

// UnmarshalJSON reads any JSON object. A nested Route that is not an object
// is kept only in the encoded form.
func (a *Availability) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "availability")
	if err != nil {
		return err
	}
	*a = Availability{
		ID:               fields.text("ID"),
		RouteID:          fields.text("RouteID"),
		Date:             fields.text("Date"),
		ParsedDate:       fields.text("ParsedDate"),
		Source:           fields.text("Source"),
		ComputedLastSeen: fields.text("ComputedLastSeen"),
		APITermsOfUse:    fields.text("APITermsOfUse"),
		fields:           fields,
	}
	if raw, ok := fields["Route"]; ok {
		var route Route
		if json.Unmarshal(raw, &route) == nil {
			a.Route = route
		}
	}

	for _, cabin := range Cabins {
		if raw, ok := fields[cabin.key("MileageCost")]; ok {
			if err := a.Cost(cabin).UnmarshalJSON(raw); err != nil {
				return err
			}
		}
		*a.available(cabin) = fields.flag(cabin.key("Available"))
		*a.remainingSeats(cabin) = fields.integer(cabin.key("RemainingSeats"))
		*a.airlines(cabin) = fields.text(cabin.key("Airlines"))
		*a.direct(cabin) = fields.flag(cabin.key("Direct"))
	}
	return nil
}

// MarshalJSON writes a decoded entry as received, with each mileage cost
// replaced by its current value or removed when absent.
func (a Availability) MarshalJSON() ([]byte, error) {
	if a.fields == nil {
		type plain Availability
		return json.Marshal(plain(a))
	}

	out := make(object, len(a.fields))
	for k, v := range a.fields {
		out[k] = v
	}
	for _, cabin := range Cabins {
		key := cabin.key("MileageCost")
		cost := a.Cost(cabin)
		if cost.IsZero() {
			delete(out, key)
			continue
		}
		data, err := cost.MarshalJSON()
		if err != nil {
			return nil, err
		}
		out[key] = data
	}
	return json.Marshal(out)
}

func (a *Availability) available(c Cabin) *bool {
	switch c {
	case CabinPremium:
		return &a.WAvailable
	case CabinBusiness:
		return &a.JAvailable
	case CabinFirst:
		return &a.FAvailable
	default:
		return &a.YAvailable
	}
}

func (a *Availability) remainingSeats(c Cabin) *int {
	switch c {
	case CabinPremium:
		return &a.WRemainingSeats
	case CabinBusiness:
		return &a.JRemainingSeats
	case CabinFirst:
		return &a.FRemainingSeats
	default:
		return &a.YRemainingSeats
	}
}

func (a *Availability) airlines(c Cabin) *string {
	switch c {
	case CabinPremium:
		return &a.WAirlines
	case CabinBusiness:
		return &a.JAirlines
	case CabinFirst:
		return &a.FAirlines
	default:
		return &a.YAirlines
	}
}

func (a *Availability) direct(c Cabin) *bool {
	switch c {
	case CabinPremium:
		return &a.WDirect
	case CabinBusiness:
		return &a.JDirect
	case CabinFirst:
		return &a.FDirect
	default:
		return &a.YDirect
	}
}
