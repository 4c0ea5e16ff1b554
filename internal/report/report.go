package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// NoRecordValue is rendered wherever a check-in or check-out is missing for a
// day, both in API rows and exported spreadsheets.
const NoRecordValue = "No registrada"

// Interval is one matched check-in/check-out pair within a day.
type Interval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (iv Interval) Duration() time.Duration {
	return iv.CheckOut.Sub(iv.CheckIn)
}

// DaySummary is the reconciled view of one employee's day: the intervals that
// could be paired, plus the first check-in and last matched check-out for
// display.
type DaySummary struct {
	Intervals     []Interval
	FirstCheckIn  *time.Time
	LastCheckOut  *time.Time
	TotalDuration time.Duration
}

// Reconcile pairs raw check-in and check-out timestamps for a single employee
// and day. Each check-in is matched greedily with the earliest check-out that
// is strictly later and not already consumed; leftovers on either side are
// dropped from the total.
func Reconcile(checkIns, checkOuts []time.Time) DaySummary {
	ins := append([]time.Time(nil), checkIns...)
	outs := append([]time.Time(nil), checkOuts...)
	sort.Slice(ins, func(i, j int) bool { return ins[i].Before(ins[j]) })
	sort.Slice(outs, func(i, j int) bool { return outs[i].Before(outs[j]) })

	used := make([]bool, len(outs))
	var summary DaySummary

	for _, in := range ins {
		for i, out := range outs {
			if used[i] || !out.After(in) {
				continue
			}
			used[i] = true
			iv := Interval{CheckIn: in, CheckOut: out}
			summary.Intervals = append(summary.Intervals, iv)
			summary.TotalDuration += iv.Duration()
			break
		}
	}

	if len(ins) > 0 {
		first := ins[0]
		summary.FirstCheckIn = &first
	}
	if n := len(summary.Intervals); n > 0 {
		last := summary.Intervals[n-1].CheckOut
		summary.LastCheckOut = &last
	}
	return summary
}

// FormatDuration renders a duration as Spanish prose, omitting zero units:
// "1 hora, 30 minutos", "45 segundos". A zero duration renders "0 segundos".
func FormatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	if total <= 0 {
		return "0 segundos"
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, pluralize(hours, "hora", "horas"))
	}
	if minutes > 0 {
		parts = append(parts, pluralize(minutes, "minuto", "minutos"))
	}
	if seconds > 0 {
		parts = append(parts, pluralize(seconds, "segundo", "segundos"))
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int64, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// WorkedLabel renders the worked-hours cell for a day: "N/A" when no interval
// could be matched, otherwise the formatted total.
func (d DaySummary) WorkedLabel() string {
	if len(d.Intervals) == 0 {
		return "N/A"
	}
	return FormatDuration(d.TotalDuration)
}

// TotalSeconds is the raw matched total, for aggregation across days.
func (d DaySummary) TotalSeconds() int64 {
	return int64(d.TotalDuration.Seconds())
}
