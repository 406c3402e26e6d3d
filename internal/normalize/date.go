package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date without a time-of-day or zone. The zero value
// means "absent" (IsZero reports true); the core never allocates a pointer
// just to express a missing date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf drops the time component of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }
func (d Date) After(o Date) bool  { return d.Time().After(o.Time()) }
func (d Date) Equal(o Date) bool  { return d == o }

// DaysUntil returns the number of whole days from d to o (negative when o
// is earlier).
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()) / (24 * time.Hour))
}

// String renders ISO yyyy-mm-dd, the canonical form used for JSON and search.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON renders the ISO form; an absent date is the empty string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid date literal %s", data)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}

// MonthKey renders the yyyy-mm bucket used by monthly revenue grouping.
func (d Date) MonthKey() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

type dateKind int

const (
	dateKindText dateKind = iota
	dateKindTime
)

// DateValue is the normalizer input: either a native time value or raw text.
// The external store hands us text; form posts and spreadsheet timestamp
// cells can hand us a real time.Time.
type DateValue struct {
	kind dateKind
	t    time.Time
	text string
}

func FromTime(t time.Time) DateValue { return DateValue{kind: dateKindTime, t: t} }
func FromText(s string) DateValue    { return DateValue{kind: dateKindText, text: s} }

// sentenceRe matches the store's localized date sentence "ngày D tháng M năm Y".
var sentenceRe = regexp.MustCompile(`ngày\s*(\d{1,2})\s*tháng\s*(\d{1,2})\s*năm\s*(\d{4})`)

// Layout sets for generic parsing. Day-first is tried before month-first:
// the store's users write 22/5/2025, not 5/22/2025.
var (
	isoLayouts = []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006/01/02",
	}
	dayFirstLayouts = []string{
		"2/1/2006",
		"2-1-2006",
		"2.1.2006",
		"2/1/06",
		"2 January 2006",
		"2 Jan 2006",
	}
	monthFirstLayouts = []string{
		"1/2/2006",
		"1-2-2006",
		"1.2.2006",
		"1/2/06",
		"January 2, 2006",
		"Jan 2, 2006",
	}
)

// ParseDate normalizes a heterogeneous date representation into a calendar
// date. It never fails loudly: unparseable input reports ok=false.
//
// Priority: native time value, then the localized sentence form (extracted by
// numeric groups so day/month can never swap), then generic parsing with
// day-first layouts, then month-first layouts.
func ParseDate(v DateValue) (Date, bool) {
	if v.kind == dateKindTime {
		if v.t.IsZero() {
			return Date{}, false
		}
		return DateOf(v.t), true
	}

	s := strings.ToLower(strings.TrimSpace(v.text))
	if s == "" {
		return Date{}, false
	}

	if m := sentenceRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return makeDate(year, month, day)
	}

	for _, layouts := range [][]string{isoLayouts, dayFirstLayouts, monthFirstLayouts} {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return DateOf(t), true
			}
		}
	}
	return Date{}, false
}

// makeDate validates the components by round-tripping through time.Date,
// which silently normalizes overflow (e.g. Feb 30 -> Mar 2).
func makeDate(year, month, day int) (Date, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, true
}

// FormatDate renders the localized sentence form the external store persists,
// e.g. "ngày 22 tháng 5 năm 2025". ParseDate(FromText(FormatDate(d))) == d
// for every valid date.
func FormatDate(d Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("ngày %d tháng %d năm %d", d.Day, int(d.Month), d.Year)
}
