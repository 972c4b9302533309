// Package planner is the client side of the booking system: an explicit
// state store filled from the REST API and the commands that work on it.
package planner

import (
	"slices"
	"sync"

	"sandgrund/pkg/filter"
	"sandgrund/pkg/model"
)

// Store holds the bookings per year and the guides fetched from the API.
// Readers get copies; the store is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	years  map[int][]model.Booking
	guides []model.Guide
}

func NewStore() *Store {
	return &Store{years: make(map[int][]model.Booking)}
}

// Bookings returns the bookings of year, or nil when the year is unknown.
func (s *Store) Bookings(year int) []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.years[year])
}

// SetBookings replaces the bookings of one year.
func (s *Store) SetBookings(year int, bookings []model.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.years[year] = slices.Clone(bookings)
}

// YearDocs returns every known year, oldest first.
func (s *Store) YearDocs() []model.YearDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]model.YearDocument, 0, len(s.years))
	for year, bookings := range s.years {
		docs = append(docs, model.YearDocument{Year: year, Bookings: slices.Clone(bookings)})
	}
	slices.SortFunc(docs, func(a, b model.YearDocument) int { return a.Year - b.Year })
	return docs
}

// SetYearDocs replaces all years. Duplicate years keep the last document.
func (s *Store) SetYearDocs(docs []model.YearDocument) {
	years := make(map[int][]model.Booking, len(docs))
	for _, doc := range docs {
		years[doc.Year] = slices.Clone(doc.Bookings)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.years = years
}

func (s *Store) Guides() []model.Guide {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.guides)
}

func (s *Store) SetGuides(guides []model.Guide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guides = slices.Clone(guides)
}

// UpsertBooking stores b under the year of its start, removing any copy
// kept under another year.
func (s *Store) UpsertBooking(b model.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for year, bookings := range s.years {
		if i := slices.IndexFunc(bookings, func(x model.Booking) bool { return x.ID == b.ID }); i >= 0 {
			s.years[year] = slices.Delete(bookings, i, i+1)
		}
	}

	b.Year = b.PartitionYear()
	s.years[b.Year] = append(s.years[b.Year], b)
}

// UpsertGuide replaces the guide with the same id or appends it.
func (s *Store) UpsertGuide(g model.Guide) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.IndexFunc(s.guides, func(x model.Guide) bool { return x.ID == g.ID }); i >= 0 {
		s.guides[i] = g
		return
	}
	s.guides = append(s.guides, g)
}

// Filter narrows the stored bookings of year with the filter engine.
func (s *Store) Filter(year int, criteria filter.Criteria) ([]model.Booking, error) {
	return filter.Bookings(s.YearDocs(), year, criteria)
}
