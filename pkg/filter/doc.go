// Package filter narrows the bookings of one year by field level criteria.
//
// Each supported field maps to a typed predicate builder. Criteria are
// compiled once into a Matcher: empty values are dropped, unknown fields are
// ignored and reported, and values that cannot be interpreted for their
// field (an unparseable start date, a snacks value that is neither a boolean
// nor "All") fail compilation. A booking matches when every compiled
// predicate holds; evaluation stops at the first failing predicate.
package filter
