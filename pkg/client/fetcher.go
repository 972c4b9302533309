package client

import (
	"context"
	"errors"
	"io"
	"net/url"

	"sandgrund/pkg/model"
)

// Notifier surfaces a failed fetch to the user. It never affects control flow.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Fetcher performs one authenticated call per method. A failure is reported
// to the Notifier and the method returns the zero value instead of an error.
type Fetcher struct {
	tours    *ToursClient
	guides   *GuidesClient
	users    *UsersClient
	notifier Notifier
}

func NewFetcher(httpClient *HttpClient, notifier Notifier) *Fetcher {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Fetcher{
		tours:    NewToursClient(httpClient),
		guides:   NewGuidesClient(httpClient),
		users:    NewUsersClient(httpClient),
		notifier: notifier,
	}
}

func (f *Fetcher) BookingsByYear(ctx context.Context, year int) []model.Booking {
	bookings, err := f.tours.BookingsByYear(ctx, year)
	if err != nil {
		f.fail(err)
		return nil
	}
	return bookings
}

func (f *Fetcher) Guides(ctx context.Context) []model.Guide {
	guides, err := f.guides.List(ctx, nil)
	if err != nil {
		f.fail(err)
		return nil
	}
	return guides
}

func (f *Fetcher) TourDocs(ctx context.Context) []model.YearDocument {
	docs, err := f.tours.TourDocs(ctx)
	if err != nil {
		f.fail(err)
		return nil
	}
	return docs
}

// LogIn stores the issued token on the shared HttpClient, so later calls of
// this Fetcher are authenticated.
func (f *Fetcher) LogIn(ctx context.Context, creds model.Credentials) *model.Session {
	session, err := f.users.LogIn(ctx, creds)
	if err != nil {
		f.fail(err)
		return nil
	}
	return session
}

// ResetToken returns "" when no token could be issued.
func (f *Fetcher) ResetToken(ctx context.Context, email string) string {
	token, err := f.users.ResetPassword(ctx, email)
	if err != nil {
		f.fail(err)
		return ""
	}
	return token
}

func (f *Fetcher) UpdateBooking(ctx context.Context, id string, update model.BookingUpdate) *model.Booking {
	booking, err := f.tours.UpdateBooking(ctx, id, update)
	if err != nil {
		f.fail(err)
		return nil
	}
	return booking
}

func (f *Fetcher) CreateGuide(ctx context.Context, guide model.Guide) *model.Guide {
	created, err := f.guides.Create(ctx, guide)
	if err != nil {
		f.fail(err)
		return nil
	}
	return created
}

func (f *Fetcher) UpdateGuide(ctx context.Context, id string, update model.GuideUpdate) *model.Guide {
	updated, err := f.guides.Update(ctx, id, update)
	if err != nil {
		f.fail(err)
		return nil
	}
	return updated
}

// DeleteGuide reports whether the guide was deactivated.
func (f *Fetcher) DeleteGuide(ctx context.Context, id string) bool {
	if err := f.guides.Delete(ctx, id); err != nil {
		f.fail(err)
		return false
	}
	return true
}

func (f *Fetcher) UploadImage(ctx context.Context, id, filename string, content io.Reader) *model.Guide {
	guide, err := f.guides.UploadImage(ctx, id, filename, content)
	if err != nil {
		f.fail(err)
		return nil
	}
	return guide
}

func (f *Fetcher) SearchBookings(ctx context.Context, year int, criteria url.Values) []model.Booking {
	bookings, err := f.tours.Search(ctx, year, criteria)
	if err != nil {
		f.fail(err)
		return nil
	}
	return bookings
}

func (f *Fetcher) fail(err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		f.notifier.Notify(apiErr.Message)
		return
	}
	f.notifier.Notify(err.Error())
}
