package main

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockRe    = regexp.MustCompile(`(?i)\b(\d{1,2})(?::([0-5]\d))?\s*(am|pm)?`)
	durationRe = regexp.MustCompile(`(?i)(\d+)\s*(hours?|hrs?|h|minutes?|mins?|m)\b`)
	bareNumRe  = regexp.MustCompile(`^\d+$`)
	rangeRe    = regexp.MustCompile(`(?i)(\d{1,2})(?::([0-5]\d))?\s*(am|pm)?\s*(?:-|–|to|until)\s*(\d{1,2})(?::([0-5]\d))?\s*(am|pm)?`)
)

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseClockTime extracts a clock time like "2pm", "14:30" or "9:15am" from
// free text. The returned hour is 0-23.
func ParseClockTime(text string) (hour, minute int, ok bool) {
	m := clockRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	meridiem := strings.ToLower(m[3])
	switch meridiem {
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return 0, 0, false
		}
	}
	return hour, minute, true
}

// ParseDateTime turns an informal date/time phrase into a precise local
// instant. It never fails: text that matches nothing resolves to the current
// instant so a conversational turn is never lost to an unparseable phrase.
func ParseDateTime(text string) time.Time {
	now := time.Now()
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return now
	}
	lower := strings.ToLower(trimmed)

	base := now
	rest := lower
	hasDateWord := false
	switch {
	case strings.Contains(lower, "tomorrow"):
		base = now.AddDate(0, 0, 1)
		rest = strings.ReplaceAll(lower, "tomorrow", " ")
		hasDateWord = true
	case strings.Contains(lower, "today"):
		rest = strings.ReplaceAll(lower, "today", " ")
		hasDateWord = true
	default:
		for _, layout := range dateTimeLayouts {
			if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
				return t
			}
		}
	}

	if h, m, ok := ParseClockTime(rest); ok {
		return time.Date(base.Year(), base.Month(), base.Day(), h, m, 0, 0, time.Local)
	}
	if hasDateWord {
		// A bare "today"/"tomorrow" gets a working-hours default.
		return time.Date(base.Year(), base.Month(), base.Day(), 9, 0, 0, 0, time.Local)
	}
	return now
}

// ParseDuration converts phrases like "2 hours", "45 min" or a bare "90"
// into minutes. Anything unrecognizable defaults to 60.
func ParseDuration(text string) int {
	trimmed := strings.TrimSpace(text)
	if bareNumRe.MatchString(trimmed) {
		if n, err := strconv.Atoi(trimmed); err == nil && n > 0 {
			return n
		}
	}
	m := durationRe.FindStringSubmatch(trimmed)
	if m == nil {
		return 60
	}
	n, _ := strconv.Atoi(m[1])
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		return n * 60
	}
	return n
}

// ParseTimeRange anchors a range phrase ("2pm-4pm", "morning") to the given
// date. Unrecognized input falls back to the 09:00-17:00 working day.
func ParseTimeRange(text string, date time.Time) (time.Time, time.Time) {
	at := func(h, m int) time.Time {
		return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, time.Local)
	}

	if m := rangeRe.FindStringSubmatch(text); m != nil {
		// "2-4pm" means both ends are afternoon; inherit a trailing
		// meridiem when the first half has none.
		first, second := m[3], m[6]
		if first == "" {
			first = second
		}
		h1, min1, ok1 := ParseClockTime(m[1] + ":" + orZero(m[2]) + first)
		h2, min2, ok2 := ParseClockTime(m[4] + ":" + orZero(m[5]) + second)
		if ok1 && ok2 && at(h1, min1).Before(at(h2, min2)) {
			return at(h1, min1), at(h2, min2)
		}
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "morning"):
		return at(8, 0), at(12, 0)
	case strings.Contains(lower, "afternoon"):
		return at(12, 0), at(17, 0)
	case strings.Contains(lower, "evening"):
		return at(17, 0), at(21, 0)
	}
	return at(9, 0), at(17, 0)
}

func orZero(s string) string {
	if s == "" {
		return "00"
	}
	return s
}
