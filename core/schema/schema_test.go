package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclaredSchemasValidate(t *testing.T) {
	require.NoError(t, Route.Validate())
	require.NoError(t, Availability.Validate())
}

func TestAvailabilityDeclaresEveryCabinField(t *testing.T) {
	for _, c := range []string{"y", "w", "j", "f"} {
		for _, suffix := range []string{"Available", "MileageCost", "RemainingSeats", "Airlines", "Direct"} {
			_, ok := Availability.Property(c + suffix)
			assert.True(t, ok, "missing %s%s", c, suffix)
		}
	}

	date, ok := Availability.Property("date")
	require.True(t, ok)
	assert.Equal(t, HintDate, date.Hint)

	route, ok := Availability.Property("route")
	require.True(t, ok)
	assert.Same(t, Route, route.Object)
}

func TestValidateRejectsBrokenSchemas(t *testing.T) {
	tests := []struct {
		name   string
		schema ObjectSchema
	}{
		{
			name:   "no name",
			schema: ObjectSchema{IDProperty: "id", DisplayProperty: "id", Properties: []Property{{Name: "id", Type: TypeString}}},
		},
		{
			name: "duplicate property",
			schema: ObjectSchema{Name: "T", IDProperty: "id", DisplayProperty: "id", Properties: []Property{
				{Name: "id", Type: TypeString},
				{Name: "id", Type: TypeNumber},
			}},
		},
		{
			name:   "unknown type",
			schema: ObjectSchema{Name: "T", IDProperty: "id", DisplayProperty: "id", Properties: []Property{{Name: "id", Type: "date"}}},
		},
		{
			name: "object without nested schema",
			schema: ObjectSchema{Name: "T", IDProperty: "id", DisplayProperty: "id", Properties: []Property{
				{Name: "id", Type: TypeString},
				{Name: "child", Type: TypeObject},
			}},
		},
		{
			name:   "undeclared id property",
			schema: ObjectSchema{Name: "T", IDProperty: "key", DisplayProperty: "id", Properties: []Property{{Name: "id", Type: TypeString}}},
		},
		{
			name:   "undeclared display property",
			schema: ObjectSchema{Name: "T", IDProperty: "id", DisplayProperty: "label", Properties: []Property{{Name: "id", Type: TypeString}}},
		},
		{
			name: "undeclared featured property",
			schema: ObjectSchema{Name: "T", IDProperty: "id", DisplayProperty: "id", FeaturedProperties: []string{"x"},
				Properties: []Property{{Name: "id", Type: TypeString}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.schema.Validate())
		})
	}
}

func TestColumns(t *testing.T) {
	var names []string
	for _, p := range Route.Columns() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"id", "originAirport", "destinationAirport", "distance", "numDaysOut"}, names)
}

func TestProject(t *testing.T) {
	row := Availability.Project(map[string]any{
		"ID":           "av-1",
		"Date":         "2024-01-05",
		"YMileageCost": 12500,
		"Route":        map[string]any{"ID": "r1", "OriginAirport": "JFK", "Unknown": true},
		"Extra":        "dropped",
	})

	assert.Equal(t, "av-1", row["id"])
	assert.Equal(t, "2024-01-05", row["date"])
	assert.Equal(t, 12500, row["yMileageCost"])
	assert.Equal(t, map[string]any{"id": "r1", "originAirport": "JFK"}, row["route"])
	assert.NotContains(t, row, "Extra")
	assert.NotContains(t, row, "wMileageCost")
}

func TestProjectRows(t *testing.T) {
	type upstreamRoute struct {
		ID       string  `json:"ID"`
		Distance float64 `json:"Distance"`
	}

	rows, err := Route.ProjectRows([]upstreamRoute{{ID: "r1", Distance: 3451}, {ID: "r2"}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "r1", rows[0]["id"])
	assert.Equal(t, float64(3451), rows[0]["distance"])

	_, err = Route.ProjectRows("not an array")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"routes", "Route", "availability", "AVAILABILITY"} {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := Lookup("flights")
	assert.False(t, ok)
}
