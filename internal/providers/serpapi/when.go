// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package serpapi

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// isoLayout is the naive local timestamp format emitted for parsed dates
const isoLayout = "2006-01-02T15:04:05"

var (
	// Oct 1 – 10
	multiDayPattern = regexp.MustCompile(`^(?:(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun),? )?([A-Z][a-z]{2}) (\d{1,2}) ?[–-] ?(\d{1,2})$`)

	// Fri, Oct 7, 7 – 8 PM | Oct 7, 7 AM – 3 PM | Oct 7
	singleDayPattern = regexp.MustCompile(`^(?:(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun),? )?([A-Z][a-z]{2}) (\d{1,2})(?:,? ?(\d{1,2}(?::\d{2})?(?: ?[AP]M)?)(?: ?[–-] ?(\d{1,2}(?::\d{2})? ?[AP]M))?)?`)

	months = map[string]time.Month{
		"Jan": time.January, "Feb": time.February, "Mar": time.March, "Apr": time.April,
		"May": time.May, "Jun": time.June, "Jul": time.July, "Aug": time.August,
		"Sep": time.September, "Oct": time.October, "Nov": time.November, "Dec": time.December,
	}
)

// ParseWhen converts Google Events "when" text into ISO-8601 start and end
// timestamps in the current year of now. end is empty when the text names no
// end time. ok is false when the text is not recognised; callers keep the raw
// text in that case.
func ParseWhen(text string, now time.Time) (start, end string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", false
	}
	year := now.Year()

	if m := multiDayPattern.FindStringSubmatch(text); m != nil {
		month, ok := months[m[1]]
		if !ok {
			return "", "", false
		}
		first, okFirst := calendarDay(year, month, m[2])
		last, okLast := calendarDay(year, month, m[3])
		if !okFirst || !okLast {
			return "", "", false
		}
		last = last.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		return first.Format(isoLayout), last.Format(isoLayout), true
	}

	m := singleDayPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	month, found := months[m[1]]
	if !found {
		return "", "", false
	}
	day, valid := calendarDay(year, month, m[2])
	if !valid {
		return "", "", false
	}

	startText, endText := m[3], m[4]
	startAt := day
	var endAt time.Time

	if endText != "" {
		h, mins, ok := parseClock(endText, "")
		if !ok {
			return "", "", false
		}
		endAt = day.Add(time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute)
	}
	if startText != "" {
		// "7 – 8 PM" shares the end's meridiem, "11 – 1 PM" does not
		borrowed := ""
		if meridiem(startText) == "" {
			borrowed = meridiem(endText)
		}
		h, mins, ok := parseClock(startText, borrowed)
		if !ok {
			return "", "", false
		}
		startAt = day.Add(time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute)

		if borrowed != "" && startAt.After(endAt) {
			if h, mins, ok := parseClock(startText, otherMeridiem(borrowed)); ok {
				if alt := day.Add(time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute); !alt.After(endAt) {
					startAt = alt
				}
			}
		}
	}

	if endAt.IsZero() {
		return startAt.Format(isoLayout), "", true
	}
	if endAt.Before(startAt) {
		endAt = endAt.Add(12 * time.Hour)
	}
	return startAt.Format(isoLayout), endAt.Format(isoLayout), true
}

// calendarDay rejects days that time.Date would silently normalise (Feb 30)
func calendarDay(year int, month time.Month, dayText string) (time.Time, bool) {
	d, err := strconv.Atoi(dayText)
	if err != nil || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	if t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func meridiem(clock string) string {
	switch {
	case strings.HasSuffix(clock, "AM"):
		return "AM"
	case strings.HasSuffix(clock, "PM"):
		return "PM"
	default:
		return ""
	}
}

func otherMeridiem(mer string) string {
	if mer == "AM" {
		return "PM"
	}
	return "AM"
}

// parseClock reads "7", "7 PM", "7:30PM" into 24h hour and minute.
func parseClock(clock, fallbackMeridiem string) (hour, minute int, ok bool) {
	clock = strings.TrimSpace(clock)
	mer := meridiem(clock)
	if mer == "" {
		mer = fallbackMeridiem
	}
	clock = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(clock, "AM"), "PM"))

	hourText, minuteText, hasMinutes := strings.Cut(clock, ":")
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return 0, 0, false
	}
	if hasMinutes {
		minute, err = strconv.Atoi(minuteText)
		if err != nil || minute > 59 {
			return 0, 0, false
		}
	}

	switch mer {
	case "AM", "PM":
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
		if mer == "PM" {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, 0, false
		}
	}
	return hour, minute, true
}
