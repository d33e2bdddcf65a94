package order

import (
	"fmt"
	"sort"
	"time"
)

// Granularity selects the calendar period orders are grouped by.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByMonth Granularity = "month"
)

// ParseGranularity maps the query-string value to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case ByDay, ByMonth:
		return Granularity(s), nil
	case "":
		return ByDay, nil
	}
	return "", fmt.Errorf("invalid granularity %q (allowed: day, month)", s)
}

// Group is one calendar period of the report.
type Group struct {
	Key    string  `json:"key"`    // YYYY-MM-DD or YYYY-MM
	Total  float64 `json:"total"`  // sum of valorTotal over the group
	Orders []Order `json:"orders"` // caller-supplied relative order
}

// Report is the aggregated view of the order history.
type Report struct {
	Groups     []Group `json:"groups"`
	GrandTotal float64 `json:"grandTotal"`
}

// DayKey returns the calendar date of t in UTC.
func DayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// MonthKey returns the calendar year-month of t in UTC.
func MonthKey(t time.Time) string { return t.UTC().Format("2006-01") }

// Aggregate groups orders by calendar day or month (UTC) and computes the
// totals. It is pure: no stored state is read or written.
//
// Orders without a parseable timestamp land in no group, but still count
// toward GrandTotal, which always covers the entire input list regardless
// of granularity. Within a group the caller's relative order is preserved;
// callers are expected to pass orders newest first. Totals coerce valorTotal
// tolerantly: a missing or non-numeric value contributes 0 rather than
// failing the report. Formatting for display is left to the HTTP boundary.
func Aggregate(orders []Order, granularity Granularity) Report {
	key := DayKey
	if granularity == ByMonth {
		key = MonthKey
	}

	var report Report
	byKey := map[string]int{}

	for _, o := range orders {
		report.GrandTotal += o.ValorTotal.Float64()

		t, ok := o.Time()
		if !ok {
			continue
		}
		k := key(t)
		idx, seen := byKey[k]
		if !seen {
			idx = len(report.Groups)
			byKey[k] = idx
			report.Groups = append(report.Groups, Group{Key: k})
		}
		report.Groups[idx].Orders = append(report.Groups[idx].Orders, o)
		report.Groups[idx].Total += o.ValorTotal.Float64()
	}

	// Most recent period first. Both key shapes order chronologically when
	// compared as strings.
	sort.SliceStable(report.Groups, func(i, j int) bool {
		return report.Groups[i].Key > report.Groups[j].Key
	})
	return report
}

// SortNewestFirst orders the list by timestamp descending, the order the
// admin report expects. Orders without a parseable timestamp sort last,
// keeping their relative positions.
func SortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		ti, iok := orders[i].Time()
		tj, jok := orders[j].Time()
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
}
