package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sandgrund/pkg/model"
)

var (
	ErrInvalidDate = errors.New("not a recognizable date")
	ErrInvalidBool = errors.New("expected true, false or All")
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04",
	"2006-01-02",
	"02/01/2006",
}

func exactString(get func(*model.Booking) string) builder {
	return func(value any) (Predicate, error) {
		want := stringify(value)
		return func(b *model.Booking) bool {
			return get(b) == want
		}, nil
	}
}

func containsString(get func(*model.Booking) string) builder {
	return func(value any) (Predicate, error) {
		want := stringify(value)
		return func(b *model.Booking) bool {
			return strings.Contains(get(b), want)
		}, nil
	}
}

func sentinelString(get func(*model.Booking) string) builder {
	return func(value any) (Predicate, error) {
		want := stringify(value)
		if want == All {
			return matchAll, nil
		}
		return func(b *model.Booking) bool {
			return get(b) == want
		}, nil
	}
}

func sentinelBool(get func(*model.Booking) bool) builder {
	return func(value any) (Predicate, error) {
		var want bool
		switch v := value.(type) {
		case bool:
			want = v
		case *bool:
			want = *v
		case string:
			if v == All {
				return matchAll, nil
			}
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return nil, ErrInvalidBool
			}
			want = parsed
		default:
			return nil, ErrInvalidBool
		}
		return func(b *model.Booking) bool {
			return get(b) == want
		}, nil
	}
}

// onOrAfterDay keeps bookings whose UTC calendar day is the criterion's day
// or later.
func onOrAfterDay(get func(*model.Booking) time.Time) builder {
	return func(value any) (Predicate, error) {
		t, err := toTime(value)
		if err != nil {
			return nil, err
		}
		from := dayUTC(t)
		return func(b *model.Booking) bool {
			return !dayUTC(get(b)).Before(from)
		}, nil
	}
}

func matchAll(*model.Booking) bool {
	return true
}

func dayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, ErrInvalidDate
		}
		return *v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms), nil
		}
	case int64:
		return time.UnixMilli(v), nil
	case float64:
		return time.UnixMilli(int64(v)), nil
	}
	return time.Time{}, ErrInvalidDate
}

// stringify coerces a criterion value to the string form used for
// comparison. Whole floats print without exponent so phone numbers decoded
// from JSON compare equal to their stored text.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
