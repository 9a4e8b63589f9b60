package daterange

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	fromToRe   = regexp.MustCompile(`^from\s+(.+?)\s+to\s+(.+)$`)
	relativeRe = regexp.MustCompile(`^(?:the\s+)?(?:last|past)\s+(\d+)?\s*(\w+)$`)
	monthDayRe = regexp.MustCompile(`^([a-z]+)\s+(\d{1,2})(?:,?\s+(\d{4}))?$`)
)

// Parse resolves a natural language date range ("last 7 days",
// "from monday to friday", "yesterday") into a start and end time,
// relative to now. Matching is case-insensitive and ignores surrounding
// whitespace. Unparseable input returns an error; an empty range is not a
// valid range.
func Parse(s string, now time.Time) (time.Time, time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("daterange: empty range")
	}

	if m := fromToRe.FindStringSubmatch(s); m != nil {
		start, ok := parseSingle(m[1], now)
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("daterange: could not parse start date %q", m[1])
		}
		end, ok := parseSingle(m[2], now)
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("daterange: could not parse end date %q", m[2])
		}
		// The end day is inclusive.
		end = endOfDay(end)
		return start, end, nil
	}

	if m := relativeRe.FindStringSubmatch(s); m != nil {
		count := 1
		if m[1] != "" {
			count, _ = strconv.Atoi(m[1])
		}
		unit := strings.TrimSuffix(m[2], "s")
		switch unit {
		case "day":
			return now.AddDate(0, 0, -count), now, nil
		case "week":
			return now.AddDate(0, 0, -7*count), now, nil
		case "month":
			return now.AddDate(0, 0, -30*count), now, nil
		case "year":
			return now.AddDate(0, 0, -365*count), now, nil
		}
		// "last tuesday" and friends fall through to single-date parsing.
	}

	start, ok := parseSingle(s, now)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("daterange: could not parse date range %q", s)
	}
	return start, now, nil
}

// parseSingle resolves one natural-language date expression, preferring
// dates in the past (the most recent Tuesday, the most recent December 1).
func parseSingle(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "last "))

	switch s {
	case "now":
		return now, true
	case "today":
		return startOfDay(now), true
	case "yesterday":
		return startOfDay(now.AddDate(0, 0, -1)), true
	case "week":
		return now.AddDate(0, 0, -7), true
	}

	if wd, ok := weekdays[s]; ok {
		return previousWeekday(now, wd), true
	}

	for _, layout := range []string{"2006-01-02", "01/02/2006", "1/2/2006"} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, true
		}
	}

	if m := monthDayRe.FindStringSubmatch(s); m != nil {
		month, ok := months[m[1]]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 {
			return time.Time{}, false
		}
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		t := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		// Without an explicit year, prefer the most recent occurrence.
		if m[3] == "" && t.After(now) {
			t = t.AddDate(-1, 0, 0)
		}
		return t, true
	}

	return time.Time{}, false
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// previousWeekday returns the start of the most recent wd strictly before
// or on today's weekday, looking back up to a full week.
func previousWeekday(now time.Time, wd time.Weekday) time.Time {
	days := int(now.Weekday() - wd)
	if days <= 0 {
		days += 7
	}
	return startOfDay(now.AddDate(0, 0, -days))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
