package search

import (
	"regexp"
	"strconv"
	"strings"
)

// DateField identifies which part of a timestamp a parsed fragment
// constrains.
type DateField string

// Timestamp parts a search fragment can constrain.
const (
	FieldMonth DateField = "month"
	FieldDay   DateField = "day"
	FieldYear  DateField = "year"
)

// DatePart is one recognized date fragment. A search matching several
// fragments yields several parts, which the query compiler ANDs together.
type DatePart struct {
	Field DateField
	Value int
}

// monthNames lists English month names and their three-letter
// abbreviations with month numbers. Matching is substring-based, so
// "january bookmarks" and "links from jan" both hit month 1. Ordered so
// parsing is deterministic.
var monthNames = []struct {
	name string
	num  int
}{
	{"jan", 1}, {"january", 1}, {"feb", 2}, {"february", 2}, {"mar", 3}, {"march", 3},
	{"apr", 4}, {"april", 4}, {"may", 5}, {"jun", 6}, {"june", 6},
	{"jul", 7}, {"july", 7}, {"aug", 8}, {"august", 8}, {"sep", 9}, {"september", 9},
	{"oct", 10}, {"october", 10}, {"nov", 11}, {"november", 11}, {"dec", 12}, {"december", 12},
}

var (
	// Standalone one- or two-digit number, read as a day of month.
	dayRe = regexp.MustCompile(`\b([0-9]{1,2})\b`)
	// Four-digit year in the 2020-2039 range.
	yearRe = regexp.MustCompile(`\b(20[2-3][0-9])\b`)
	// day/month or day-month pair.
	dayMonthRe = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})`)
)

// ParseDateParts scans free-form search text for date-like fragments:
// month names, a standalone day number, a year, and a day/month pair.
// Best-effort by design: "15" in "windows 15" is read as a day. The
// caller ANDs the parts into one optional match channel, so a stray hit
// only widens the OR on the query side, never narrows other channels.
func ParseDateParts(input string) []DatePart {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return nil
	}

	var parts []DatePart
	add := func(f DateField, v int) {
		for _, p := range parts {
			if p.Field == f && p.Value == v {
				return
			}
		}
		parts = append(parts, DatePart{Field: f, Value: v})
	}

	for _, m := range monthNames {
		if strings.Contains(lower, m.name) {
			add(FieldMonth, m.num)
		}
	}

	if m := dayRe.FindStringSubmatch(lower); m != nil {
		if day, err := strconv.Atoi(m[1]); err == nil && day >= 1 && day <= 31 {
			add(FieldDay, day)
		}
	}

	if m := yearRe.FindStringSubmatch(lower); m != nil {
		year, _ := strconv.Atoi(m[1])
		add(FieldYear, year)
	}

	// Bare numeric dates are read day-first: "15/3" is March 15th.
	if m := dayMonthRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day >= 1 && day <= 31 {
			add(FieldDay, day)
		}
		if month >= 1 && month <= 12 {
			add(FieldMonth, month)
		}
	}

	return parts
}
