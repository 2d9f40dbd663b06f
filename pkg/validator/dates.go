package validator

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func date(value any, _ ...any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	if s == "" {
		return true
	}
	_, ok = parseDate(s, time.UTC)
	return ok
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if !reDate.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// compareDate builds before and after.
//
// With a single date argument the value is compared to that date. Otherwise the
// arguments are (amount, unit) pairs added to the value, which is then compared
// to the current time. A missing unit means years.
func compareDate(now func() time.Time, cmp func(value, comparator time.Time) bool) Func {
	return func(value any, args ...any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		if s == "" {
			return true
		}

		current := now()
		v, ok := parseDate(s, current.Location())
		if !ok {
			return false
		}

		if len(args) == 1 {
			if ds, isString := args[0].(string); isString {
				if c, isDate := parseDate(ds, current.Location()); isDate {
					return cmp(v, c)
				}
			}
		}

		for i := 0; i < len(args); i += 2 {
			amount, ok := toInt(args[i])
			if !ok {
				return false
			}
			unit := "years"
			if i+1 < len(args) {
				if u, isString := args[i+1].(string); isString && u != "" {
					unit = u
				}
			}
			v, ok = addOffset(v, amount, unit)
			if !ok {
				return false
			}
		}
		return cmp(v, current)
	}
}

func addOffset(t time.Time, n int, unit string) (time.Time, bool) {
	switch strings.ToLower(unit) {
	case "years", "year", "y":
		return t.AddDate(n, 0, 0), true
	case "months", "month", "m":
		return t.AddDate(0, n, 0), true
	case "weeks", "week", "w":
		return t.AddDate(0, 0, 7*n), true
	case "days", "day", "d":
		return t.AddDate(0, 0, n), true
	case "hours", "hour", "h":
		return t.Add(time.Duration(n) * time.Hour), true
	case "minutes", "minute":
		return t.Add(time.Duration(n) * time.Minute), true
	case "seconds", "second", "s":
		return t.Add(time.Duration(n) * time.Second), true
	default:
		return t, false
	}
}
