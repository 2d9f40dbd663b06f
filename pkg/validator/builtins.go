package validator

import (
	"regexp"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/formwizard/pkg/field"
)

var (
	reURL           = regexp.MustCompile(`[-a-zA-Z0-9@:%._\+~#=]{2,256}\.[a-z]{2,6}\b([-a-zA-Z0-9@:%_\+.~#?&//=]*)`)
	reEmail         = regexp.MustCompile(`(?i)^[a-z0-9\._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,6}$`)
	reAlphanum      = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
	reNumeric       = regexp.MustCompile(`^\d*$`)
	rePhoneNumber   = regexp.MustCompile(`^\(?\+?[\d()-]{0,15}$`)
	reUKMobilePhone = regexp.MustCompile(`^(07)\d{9}$`)
	reDate          = regexp.MustCompile(`\d{4}\-\d{2}\-\d{2}`)
	reYear          = regexp.MustCompile(`^\d{4}$`)
	reTwoDigits     = regexp.MustCompile(`^\d{2}$`)
	rePostcode      = regexp.MustCompile(`(?i)^(([GIR] ?0[A]{2})|((([A-Z][0-9]{1,2})|(([A-Z][A-HJ-Y][0-9]{1,2})|(([A-Z][0-9][A-Z])|([A-Z][A-HJ-Y][0-9]?[A-Z])))) ?[0-9][A-Z]{2}))$`)
)

// patterns caches regular expressions passed to the regex validator.
var patterns sync.Map

func builtins(now func() time.Time) map[string]Func {
	return map[string]Func{
		"string":        isString,
		"regex":         matchesPattern,
		"required":      required,
		"url":           emptyOr(reURL),
		"email":         emptyOr(reEmail),
		"minlength":     minLength,
		"maxlength":     maxLength,
		"exactlength":   exactLength,
		"alphanum":      matches(reAlphanum),
		"numeric":       matches(reNumeric),
		"equal":         equal,
		"phonenumber":   emptyOr(rePhoneNumber),
		"ukmobilephone": emptyOr(reUKMobilePhone),
		"postcode":      emptyOr(rePostcode),
		"date":          date,
		"date-year":     matches(reYear),
		"date-month":    twoDigitsInRange(1, 12),
		"date-day":      twoDigitsInRange(1, 31),
		"before":        compareDate(now, func(v, c time.Time) bool { return v.Before(c) }),
		"after":         compareDate(now, func(v, c time.Time) bool { return v.After(c) }),
	}
}

func isString(value any, _ ...any) bool {
	_, ok := value.(string)
	return ok
}

// required fails only for a missing value and the empty string.
func required(value any, _ ...any) bool {
	if value == nil {
		return false
	}
	s, ok := value.(string)
	return !ok || s != ""
}

// matchesPattern accepts a pattern string or a compiled expression.
func matchesPattern(value any, args ...any) bool {
	s, ok := value.(string)
	if !ok || len(args) == 0 {
		return false
	}
	switch p := args[0].(type) {
	case *regexp.Regexp:
		return p.MatchString(s)
	case string:
		re, err := compilePattern(p)
		if err != nil {
			return false
		}
		return re.MatchString(s)
	default:
		return false
	}
}

func compilePattern(p string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(p); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, err
	}
	patterns.Store(p, re)
	return re, nil
}

func matches(re *regexp.Regexp) Func {
	return func(value any, _ ...any) bool {
		s, ok := value.(string)
		return ok && re.MatchString(s)
	}
}

func emptyOr(re *regexp.Regexp) Func {
	return func(value any, _ ...any) bool {
		s, ok := value.(string)
		return ok && (s == "" || re.MatchString(s))
	}
}

func lengthCheck(cmp func(length, n int) bool, defaultN int) Func {
	return func(value any, args ...any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		if s == "" {
			return true
		}
		n := defaultN
		if len(args) > 0 {
			parsed, ok := toInt(args[0])
			if !ok {
				return false
			}
			n = parsed
		}
		return cmp(utf8.RuneCountInString(s), n)
	}
}

var (
	minLength   = lengthCheck(func(l, n int) bool { return l >= n }, 0)
	maxLength   = lengthCheck(func(l, n int) bool { return l <= n }, 0)
	exactLength = lengthCheck(func(l, n int) bool { return l == n }, 0)
)

// equal requires at least one allowed value. A list value is valid when every
// element is empty or allowed.
func equal(value any, allowed ...any) bool {
	if len(allowed) == 0 {
		return false
	}
	for _, item := range castList(value) {
		if s, ok := item.(string); ok && s == "" {
			continue
		}
		found := false
		for _, a := range allowed {
			if field.Equal(item, a) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func twoDigitsInRange(lo, hi int) Func {
	return func(value any, _ ...any) bool {
		s, ok := value.(string)
		if !ok || !reTwoDigits.MatchString(s) {
			return false
		}
		n, err := strconv.Atoi(s)
		return err == nil && n >= lo && n <= hi
	}
}

func castList(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return []any{value}
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
