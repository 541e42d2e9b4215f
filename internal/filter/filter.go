package filter

import (
	"fmt"
	"strings"

	"github.com/xolan/focus/internal/record"
)

// Kind is how a record was logged.
type Kind string

const (
	KindAny    Kind = ""
	KindManual Kind = "manual"
	KindTimed  Kind = "timed"
	KindClock  Kind = "clock"
)

// ParseKind accepts "manual", "timed", "clock" or an empty string for any kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAny, KindManual, KindTimed, KindClock:
		return k, nil
	default:
		return KindAny, fmt.Errorf("invalid record kind %q: must be manual, timed or clock", s)
	}
}

// KindOf classifies r. Clock sessions take precedence over the manual
// classification they would otherwise share.
func KindOf(r record.Record) Kind {
	switch {
	case r.IsClockEntry():
		return KindClock
	case r.IsManualEntry():
		return KindManual
	default:
		return KindTimed
	}
}

// Filter represents search criteria for records.
// All fields are optional - empty values match all records.
type Filter struct {
	Keyword string // Case-insensitive substring search in notes
	Kind    Kind
}

// NewFilter creates a new Filter with the given criteria.
func NewFilter(keyword string, kind Kind) *Filter {
	return &Filter{
		Keyword: strings.TrimSpace(keyword),
		Kind:    kind,
	}
}

// IsEmpty returns true if the filter matches every record
func (f *Filter) IsEmpty() bool {
	return f == nil || (f.Keyword == "" && f.Kind == KindAny)
}

// FilterRecords returns the records that match f, keeping their order.
// If the filter is empty, returns records unchanged.
func FilterRecords(records []record.Record, f *Filter) []record.Record {
	if f.IsEmpty() {
		return records
	}

	filtered := make([]record.Record, 0)
	for _, r := range records {
		if f.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// MatchesKeyword returns true if the keyword is found in the record's notes (case-insensitive).
// An empty keyword matches all records.
func (f *Filter) MatchesKeyword(r record.Record) bool {
	if f.Keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Notes), strings.ToLower(f.Keyword))
}

// MatchesKind returns true if the record was logged the way the filter asks.
func (f *Filter) MatchesKind(r record.Record) bool {
	return f.Kind == KindAny || KindOf(r) == f.Kind
}

// Matches returns true if the record satisfies every criterion.
func (f *Filter) Matches(r record.Record) bool {
	if f.IsEmpty() {
		return true
	}
	return f.MatchesKeyword(r) && f.MatchesKind(r)
}

// String describes the criteria, e.g. `"standup", clock`.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "all records"
	}
	var parts []string
	if f.Keyword != "" {
		parts = append(parts, fmt.Sprintf("%q", f.Keyword))
	}
	if f.Kind != KindAny {
		parts = append(parts, string(f.Kind))
	}
	return strings.Join(parts, ", ")
}
