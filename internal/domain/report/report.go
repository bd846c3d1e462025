// Package report holds the read-only analytics documents served under
// /api/reports.
package report

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Report types known to the backend.
const (
	SystemOverview       = "system-overview"
	UserAnalytics        = "user-analytics"
	EmployeeDemographics = "employee-demographics"
)

// Types lists every report type.
var Types = []string{SystemOverview, UserAnalytics, EmployeeDemographics}

// Catalog is the body of GET /api/reports/available-reports.
type Catalog struct {
	Reports      []string          `json:"reports"`
	Descriptions map[string]string `json:"descriptions"`
}

// Document is an aggregate report. Its shape differs per type, so it is kept
// as decoded JSON.
type Document map[string]any

// Title returns reportTitle, falling back to the type.
func (d Document) Title() string {
	if s, ok := d["reportTitle"].(string); ok && s != "" {
		return s
	}
	if s, ok := d["reportType"].(string); ok {
		return s
	}
	return ""
}

// Metric is one leaf value of a document, addressed by its dotted path.
type Metric struct {
	Path  string
	Value string
}

// Metrics flattens the document into sorted leaf metrics. Nested objects
// contribute dotted paths; arrays are joined with commas.
func (d Document) Metrics() []Metric {
	var out []Metric
	flatten("", map[string]any(d), &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func flatten(prefix string, v any, out *[]Metric) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatScalar(item))
		}
		*out = append(*out, Metric{Path: prefix, Value: strings.Join(parts, ", ")})
	default:
		*out = append(*out, Metric{Path: prefix, Value: formatScalar(val)})
	}
}

func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}

// Known reports whether t is a report type served by the backend.
func Known(t string) bool {
	return slices.Contains(Types, t)
}
