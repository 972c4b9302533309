package planner

import (
	"context"
	"errors"
	"strings"

	"sandgrund/pkg/model"

	"golang.org/x/sync/errgroup"
)

// Source is the read side of client.Fetcher. A nil result means the fetch
// failed and was already reported to the user.
type Source interface {
	BookingsByYear(ctx context.Context, year int) []model.Booking
	Guides(ctx context.Context) []model.Guide
	TourDocs(ctx context.Context) []model.YearDocument
}

// IncompleteError lists the parts Load could not fetch.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return "could not load " + strings.Join(e.Missing, ", ")
}

// Load fetches the bookings of year and the guides concurrently and populates
// the store only after both calls returned. Parts that failed leave the
// store's previous state in place.
func Load(ctx context.Context, src Source, store *Store, year int) error {
	var (
		bookings []model.Booking
		guides   []model.Guide
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bookings = src.BookingsByYear(ctx, year)
		return ctx.Err()
	})
	g.Go(func() error {
		guides = src.Guides(ctx)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return err
	}

	var missing []string
	if bookings != nil {
		store.SetBookings(year, bookings)
	} else {
		missing = append(missing, "bookings")
	}
	if guides != nil {
		store.SetGuides(guides)
	} else {
		missing = append(missing, "guides")
	}

	if len(missing) > 0 {
		return &IncompleteError{Missing: missing}
	}
	return nil
}

// LoadAll replaces every year with the year documents from the API.
func LoadAll(ctx context.Context, src Source, store *Store) error {
	docs := src.TourDocs(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	if docs == nil {
		return &IncompleteError{Missing: []string{"year documents"}}
	}
	store.SetYearDocs(docs)
	return nil
}

func IsIncomplete(err error) bool {
	var ie *IncompleteError
	return errors.As(err, &ie)
}
