// Package weather implements the weather demo on top of a fixed table of
// mock observations.
package weather

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCity is returned for cities outside the mock table
var ErrUnknownCity = errors.New("weather data not available")

// Report is the mock observation for one city
type Report struct {
	City        string `json:"city"`
	Temperature int    `json:"temperature"`
	Unit        string `json:"unit"`
	Condition   string `json:"condition"`
}

// Table is an immutable city lookup
type Table struct {
	reports map[string]Report
}

// NewTable builds a table keyed by normalized city name
func NewTable(reports ...Report) *Table {
	t := &Table{reports: make(map[string]Report, len(reports))}
	for _, r := range reports {
		t.reports[normalize(r.City)] = r
	}
	return t
}

// DefaultTable holds the demo cities
var DefaultTable = NewTable(
	Report{City: "New York", Temperature: 22, Unit: "celsius", Condition: "Sunny"},
	Report{City: "London", Temperature: 18, Unit: "celsius", Condition: "Rainy"},
	Report{City: "Tokyo", Temperature: 26, Unit: "celsius", Condition: "Cloudy"},
	Report{City: "Sydney", Temperature: 20, Unit: "celsius", Condition: "Clear"},
)

// Lookup returns the report for city, ignoring case and surrounding spaces
func (t *Table) Lookup(city string) (Report, error) {
	r, ok := t.reports[normalize(city)]
	if !ok {
		return Report{}, fmt.Errorf("%w for %q", ErrUnknownCity, city)
	}
	return r, nil
}

// Cities returns the known city names in alphabetical order
func (t *Table) Cities() []string {
	out := make([]string, 0, len(t.reports))
	for _, r := range t.reports {
		out = append(out, r.City)
	}
	sort.Strings(out)
	return out
}

func normalize(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}
