package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Season indexes double as the chronological order within a year.
type Season int

const (
	Spring Season = iota
	Summer
	Fall
)

var seasonNames = [...]string{"Spring", "Summer", "Fall"}

func (s Season) String() string {
	if s < Spring || s > Fall {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return seasonNames[s]
}

// Semester is one of the three fixed academic terms:
// Spring is Jan-May, Summer is Jun-Aug and Fall is Sep-Dec.
type Semester struct {
	Season Season
	Year   int
}

// SemesterOf maps a point in time to its semester as seen in loc.
func SemesterOf(t time.Time, loc *time.Location) Semester {
	t = t.In(loc)
	switch m := t.Month(); {
	case m <= time.May:
		return Semester{Season: Spring, Year: t.Year()}
	case m <= time.August:
		return Semester{Season: Summer, Year: t.Year()}
	default:
		return Semester{Season: Fall, Year: t.Year()}
	}
}

// ParseSemester is the inverse of Label.
func ParseSemester(label string) (Semester, error) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return Semester{}, fmt.Errorf("invalid semester label %q", label)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Semester{}, fmt.Errorf("invalid semester year in %q: %w", label, err)
	}
	for i, name := range seasonNames {
		if name == parts[0] {
			return Semester{Season: Season(i), Year: year}, nil
		}
	}
	return Semester{}, fmt.Errorf("invalid season in %q", label)
}

// Label renders "<Season> <Year>", e.g. "Fall 2024".
func (s Semester) Label() string {
	return fmt.Sprintf("%s %d", s.Season, s.Year)
}

func (s Semester) String() string { return s.Label() }

// Range returns the inclusive window of the semester in loc for display. The
// end is the last whole second of the final day; use Contains for membership.
func (s Semester) Range(loc *time.Location) (start, end time.Time) {
	var first, last time.Month
	switch s.Season {
	case Spring:
		first, last = time.January, time.May
	case Summer:
		first, last = time.June, time.August
	default:
		first, last = time.September, time.December
	}
	start = time.Date(s.Year, first, 1, 0, 0, 0, 0, loc)
	// day 0 of the following month is the last day of this one
	end = time.Date(s.Year, last+1, 0, 23, 59, 59, 0, loc)
	return start, end
}

// Contains reports whether t falls in [start, next semester's start), so
// fractional seconds at the end of the last day still belong to s.
func (s Semester) Contains(t time.Time, loc *time.Location) bool {
	start, _ := s.Range(loc)
	end, _ := s.Next().Range(loc)
	return !t.Before(start) && t.Before(end)
}

func (s Semester) Next() Semester {
	if s.Season == Fall {
		return Semester{Season: Spring, Year: s.Year + 1}
	}
	return Semester{Season: s.Season + 1, Year: s.Year}
}

// Compare orders semesters by year, then season.
func (s Semester) Compare(o Semester) int {
	switch {
	case s.Year != o.Year:
		if s.Year < o.Year {
			return -1
		}
		return 1
	case s.Season < o.Season:
		return -1
	case s.Season > o.Season:
		return 1
	}
	return 0
}

func SortSemesters(list []Semester) {
	sort.Slice(list, func(i, j int) bool { return list[i].Compare(list[j]) < 0 })
}
