package filter

import (
	"fmt"
	"net/url"
	"reflect"
	"time"

	"sandgrund/pkg/model"
)

const (
	FieldGuide         = "guide"
	FieldTitle         = "title"
	FieldStatus        = "status"
	FieldStart         = "start"
	FieldContactPerson = "contactPerson"
	FieldContactPhone  = "contactPhone"
	FieldContactEmail  = "contactEmail"
	FieldSnacks        = "snacks"

	// All disables the status and snacks constraints.
	All = model.StatusAll
)

// Criteria maps a booking field name to the wanted value.
type Criteria map[string]any

// Predicate reports whether a booking satisfies one criterion.
type Predicate func(b *model.Booking) bool

type builder func(value any) (Predicate, error)

// evaluation order is fixed so short-circuiting is deterministic
var fieldOrder = []string{
	FieldGuide,
	FieldTitle,
	FieldStatus,
	FieldStart,
	FieldContactPerson,
	FieldContactPhone,
	FieldContactEmail,
	FieldSnacks,
}

var builders = map[string]builder{
	FieldGuide:         exactString(func(b *model.Booking) string { return b.Guide }),
	FieldTitle:         containsString(func(b *model.Booking) string { return b.Title }),
	FieldStatus:        sentinelString(func(b *model.Booking) string { return b.Status }),
	FieldStart:         onOrAfterDay(func(b *model.Booking) time.Time { return b.Start }),
	FieldContactPerson: containsString(func(b *model.Booking) string { return b.ContactPerson }),
	FieldContactPhone:  exactString(func(b *model.Booking) string { return b.ContactPhone }),
	FieldContactEmail:  exactString(func(b *model.Booking) string { return b.ContactEmail }),
	FieldSnacks:        sentinelBool(func(b *model.Booking) bool { return b.Snacks }),
}

// Fields lists the criteria names the engine understands.
func Fields() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// IsSupported reports whether field has a predicate.
func IsSupported(field string) bool {
	_, ok := builders[field]
	return ok
}

type Matcher struct {
	predicates []Predicate
	fields     []string
	ignored    []string
}

// Compile validates criteria and builds a Matcher from them.
func Compile(criteria Criteria) (*Matcher, error) {
	m := &Matcher{}

	for key, value := range criteria {
		if _, ok := builders[key]; !ok && !isEmpty(value) {
			m.ignored = append(m.ignored, key)
		}
	}

	for _, field := range fieldOrder {
		value, ok := criteria[field]
		if !ok || isEmpty(value) {
			continue
		}
		predicate, err := builders[field](value)
		if err != nil {
			return nil, &CriterionError{Field: field, Value: value, Err: err}
		}
		m.predicates = append(m.predicates, predicate)
		m.fields = append(m.fields, field)
	}

	return m, nil
}

// Match applies every predicate, stopping at the first failure.
func (m *Matcher) Match(b *model.Booking) bool {
	for _, predicate := range m.predicates {
		if !predicate(b) {
			return false
		}
	}
	return true
}

// Filter returns the matching bookings in their original order.
func (m *Matcher) Filter(bookings []model.Booking) []model.Booking {
	out := make([]model.Booking, 0, len(bookings))
	for i := range bookings {
		if m.Match(&bookings[i]) {
			out = append(out, bookings[i])
		}
	}
	return out
}

// Fields returns the criteria that survived compilation, in evaluation order.
func (m *Matcher) Fields() []string {
	return m.fields
}

// Ignored returns criteria keys with no predicate.
func (m *Matcher) Ignored() []string {
	return m.ignored
}

// Bookings returns the bookings of year that satisfy criteria. A year with no
// document yields an empty result.
func Bookings(docs []model.YearDocument, year int, criteria Criteria) ([]model.Booking, error) {
	doc := FindYear(docs, year)
	if doc == nil {
		return []model.Booking{}, nil
	}

	matcher, err := Compile(criteria)
	if err != nil {
		return nil, err
	}
	return matcher.Filter(doc.Bookings), nil
}

func FindYear(docs []model.YearDocument, year int) *model.YearDocument {
	for i := range docs {
		if docs[i].Year == year {
			return &docs[i]
		}
	}
	return nil
}

// FromQuery turns query parameters into criteria, keeping the first value of
// each key and skipping the excluded keys.
func FromQuery(values url.Values, exclude ...string) Criteria {
	skip := make(map[string]struct{}, len(exclude))
	for _, key := range exclude {
		skip[key] = struct{}{}
	}

	criteria := Criteria{}
	for key, vals := range values {
		if _, ok := skip[key]; ok || len(vals) == 0 {
			continue
		}
		criteria[key] = vals[0]
	}
	return criteria
}

type CriterionError struct {
	Field string
	Value any
	Err   error
}

func (e *CriterionError) Error() string {
	return fmt.Sprintf("invalid %s filter %q: %v", e.Field, fmt.Sprint(e.Value), e.Err)
}

func (e *CriterionError) Unwrap() error {
	return e.Err
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case *string:
		return v == nil || *v == ""
	case *bool:
		return v == nil
	case *time.Time:
		return v == nil
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
