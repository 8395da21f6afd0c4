// Package report derives filtered views and summary statistics from a
// snapshot of treatment records. Every function is a pure read over its
// input slice; nothing here mutates the snapshot, and statistics are
// recomputed in full on every call.
package report

import (
	"sort"
	"time"

	"github.com/healthtrack/treatment-tracker/model"
)

// monthGroupLimit caps the monthly distribution to the most recent groups
// shown in the statistics panel.
const monthGroupLimit = 6

// Filters narrows which records are displayed and aggregated. Empty fields
// do not constrain. Dates are ISO YYYY-MM-DD and compared as calendar
// dates.
type Filters struct {
	DateFrom      string
	DateTo        string
	TreatmentType string
}

// Matches reports whether a single record passes the filter conjunction.
func (f Filters) Matches(t model.Treatment) bool {
	// ISO dates compare correctly as strings.
	if f.DateFrom != "" && t.TreatmentDate < f.DateFrom {
		return false
	}
	if f.DateTo != "" && t.TreatmentDate > f.DateTo {
		return false
	}
	if f.TreatmentType != "" && t.TreatmentType != f.TreatmentType {
		return false
	}
	return true
}

// Filter returns the records passing all three optional predicates,
// preserving input order. The input slice is never modified.
func Filter(treatments []model.Treatment, f Filters) []model.Treatment {
	filtered := []model.Treatment{}
	for _, t := range treatments {
		if f.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// AvailableTypes returns the distinct treatment types present in the
// unfiltered snapshot, sorted lexically. An empty snapshot falls back to
// the fixed default set so the type filter is never empty.
func AvailableTypes(treatments []model.Treatment) []string {
	if len(treatments) == 0 {
		defaults := make([]string, len(model.ValidTreatmentTypes))
		copy(defaults, model.ValidTreatmentTypes)
		sort.Strings(defaults)
		return defaults
	}

	seen := map[string]bool{}
	types := []string{}
	for _, t := range treatments {
		if !seen[t.TreatmentType] {
			seen[t.TreatmentType] = true
			types = append(types, t.TreatmentType)
		}
	}
	sort.Strings(types)
	return types
}

// TypeCount is one row of the per-type distribution.
type TypeCount struct {
	Type  string
	Count int
}

// MonthCount is one row of the per-month distribution, keyed by YYYY-MM.
type MonthCount struct {
	Month string
	Count int
}

// Stats summarizes a (usually filtered) list of treatment records.
type Stats struct {
	Total         int
	DistinctTypes int
	ByType        []TypeCount  // sorted by count descending, then type name
	ByMonth       []MonthCount // most recent first, capped at 6 groups
	Earliest      string
	Latest        string
	SpanDays      int
}

// Summarize computes all summary statistics over the given records.
// Invariant: the ByType counts always sum to Total.
func Summarize(treatments []model.Treatment) Stats {
	stats := Stats{Total: len(treatments)}
	if len(treatments) == 0 {
		return stats
	}

	typeCounts := map[string]int{}
	monthCounts := map[string]int{}
	stats.Earliest = treatments[0].TreatmentDate
	stats.Latest = treatments[0].TreatmentDate

	for _, t := range treatments {
		typeCounts[t.TreatmentType]++
		if len(t.TreatmentDate) >= 7 {
			monthCounts[t.TreatmentDate[:7]]++
		}
		if t.TreatmentDate < stats.Earliest {
			stats.Earliest = t.TreatmentDate
		}
		if t.TreatmentDate > stats.Latest {
			stats.Latest = t.TreatmentDate
		}
	}

	stats.DistinctTypes = len(typeCounts)

	for typ, n := range typeCounts {
		stats.ByType = append(stats.ByType, TypeCount{Type: typ, Count: n})
	}
	sort.Slice(stats.ByType, func(i, j int) bool {
		if stats.ByType[i].Count != stats.ByType[j].Count {
			return stats.ByType[i].Count > stats.ByType[j].Count
		}
		return stats.ByType[i].Type < stats.ByType[j].Type
	})

	for month, n := range monthCounts {
		stats.ByMonth = append(stats.ByMonth, MonthCount{Month: month, Count: n})
	}
	sort.Slice(stats.ByMonth, func(i, j int) bool {
		return stats.ByMonth[i].Month > stats.ByMonth[j].Month
	})
	if len(stats.ByMonth) > monthGroupLimit {
		stats.ByMonth = stats.ByMonth[:monthGroupLimit]
	}

	stats.SpanDays = spanDays(stats.Earliest, stats.Latest)
	return stats
}

// spanDays returns the elapsed days between two ISO dates, 0 when either
// fails to parse.
func spanDays(earliest, latest string) int {
	from, err := time.Parse(model.DateLayout, earliest)
	if err != nil {
		return 0
	}
	to, err := time.Parse(model.DateLayout, latest)
	if err != nil {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
