package valueobject

import (
	"errors"
	"fmt"
	"time"
)

// DateRange is a value object representing a closed date interval
// [Start, End]. Both bounds are inclusive and normalized to midnight UTC,
// so two ranges sharing a boundary day intersect.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange creates a DateRange, validating start <= end
func NewDateRange(start, end time.Time) (DateRange, error) {
	s := TruncateToDay(start)
	e := TruncateToDay(end)
	if s.After(e) {
		return DateRange{}, errors.New("start date must not be after end date")
	}
	return DateRange{start: s, end: e}, nil
}

// TruncateToDay normalizes a timestamp to midnight UTC
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Start returns the inclusive lower bound
func (r DateRange) Start() time.Time {
	return r.start
}

// End returns the inclusive upper bound
func (r DateRange) End() time.Time {
	return r.end
}

// IsZero returns true if the range has not been set
func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// Contains returns true if the given date falls inside the closed interval
func (r DateRange) Contains(date time.Time) bool {
	d := TruncateToDay(date)
	return !d.Before(r.start) && !d.After(r.end)
}

// Overlaps returns true if the two closed intervals intersect.
// Bound equality counts as overlap: [1,5] and [5,10] intersect at day 5.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

// Days returns the number of days in the closed interval (both bounds count)
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// ElapsedDays returns how many days of the interval have elapsed as of the
// given date, counting the start day itself. The result is clamped to
// [0, Days()].
func (r DateRange) ElapsedDays(asOf time.Time) int {
	d := TruncateToDay(asOf)
	if d.Before(r.start) {
		return 0
	}
	if d.After(r.end) {
		return r.Days()
	}
	return int(d.Sub(r.start).Hours()/24) + 1
}

// Equals returns true if both ranges have identical bounds
func (r DateRange) Equals(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

// String returns a human-readable representation
func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.start.Format("2006-01-02"), r.end.Format("2006-01-02"))
}
