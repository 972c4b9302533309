package sanitizer

import (
	"strings"

	"sandgrund/pkg/model"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var emailPipeline = Pipeline{
	strings.TrimSpace,
	strings.ToLower,
}

func NormalizeEmail(email string) string {
	return emailPipeline.Apply(email)
}

// Booking normalizes the contact fields of b in place.
func Booking(b *model.Booking) {
	b.Title = TrimAndNormalize(b.Title)
	b.ContactPerson = NormalizeName(b.ContactPerson)
	b.ContactPhone = NormalizePhone(b.ContactPhone)
	b.ContactEmail = NormalizeEmail(b.ContactEmail)
	b.Guide = strings.TrimSpace(b.Guide)
}

func BookingUpdate(u *model.BookingUpdate) {
	apply(u.Title, TrimAndNormalize)
	apply(u.ContactPerson, NormalizeName)
	apply(u.ContactPhone, NormalizePhone)
	apply(u.ContactEmail, NormalizeEmail)
	apply(u.Guide, strings.TrimSpace)
	u.GuideEmail = NormalizeEmail(u.GuideEmail)
}

func Guide(g *model.Guide) {
	g.FullName = NormalizeName(g.FullName)
	g.Email = NormalizeEmail(g.Email)
	g.Photo = NormalizeURL(g.Photo)
}

func GuideUpdate(u *model.GuideUpdate) {
	apply(u.FullName, NormalizeName)
	apply(u.Email, NormalizeEmail)
	apply(u.Photo, NormalizeURL)
}

func apply(s *string, fn Strategy) {
	if s != nil {
		*s = fn(*s)
	}
}
