package model

import (
	"time"
)

const (
	StatusAll = "All"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is a single tour reservation. Bookings live embedded in the
// YearDocument of the calendar year their start falls in.
type Booking struct {
	ID            string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Year          int       `json:"year" bson:"year"`
	Title         string    `json:"title" bson:"title" validate:"required,min=1,max=200"`
	Start         time.Time `json:"start" bson:"start" validate:"required"`
	End           time.Time `json:"end" bson:"end" validate:"required"`
	Status        string    `json:"status" bson:"status" validate:"max=50"`
	Guide         string    `json:"guide,omitempty" bson:"guide,omitempty"`
	ContactPerson string    `json:"contactPerson,omitempty" bson:"contactPerson,omitempty" validate:"max=200"`
	ContactPhone  string    `json:"contactPhone,omitempty" bson:"contactPhone,omitempty" validate:"max=40"`
	ContactEmail  string    `json:"contactEmail,omitempty" bson:"contactEmail,omitempty" validate:"omitempty,email"`
	Participants  int       `json:"participants" bson:"participants" validate:"min=0,max=1000"`
	Snacks        bool      `json:"snacks" bson:"snacks"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty" validate:"max=5000"`
	CreatedBy     string    `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	UpdatedBy     string    `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// PartitionYear is the UTC calendar year of the booking start.
func (b *Booking) PartitionYear() int {
	return b.Start.UTC().Year()
}

type BookingUpdate struct {
	Title         *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Start         *time.Time `json:"start,omitempty"`
	End           *time.Time `json:"end,omitempty"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,max=50"`
	Guide         *string    `json:"guide,omitempty"`
	ContactPerson *string    `json:"contactPerson,omitempty" validate:"omitempty,max=200"`
	ContactPhone  *string    `json:"contactPhone,omitempty" validate:"omitempty,max=40"`
	ContactEmail  *string    `json:"contactEmail,omitempty" validate:"omitempty,email"`
	Participants  *int       `json:"participants,omitempty" validate:"omitempty,min=0,max=1000"`
	Snacks        *bool      `json:"snacks,omitempty"`
	Description   *string    `json:"description,omitempty" validate:"omitempty,max=5000"`

	// GuideEmail is not persisted; when set together with Guide the guide is notified.
	GuideEmail string `json:"guideEmail,omitempty" validate:"omitempty,email"`
}

// Apply merges the update into a copy of b.
func (u *BookingUpdate) Apply(b Booking) Booking {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Start != nil {
		b.Start = *u.Start
	}
	if u.End != nil {
		b.End = *u.End
	}
	if u.Status != nil {
		b.Status = *u.Status
	}
	if u.Guide != nil {
		b.Guide = *u.Guide
	}
	if u.ContactPerson != nil {
		b.ContactPerson = *u.ContactPerson
	}
	if u.ContactPhone != nil {
		b.ContactPhone = *u.ContactPhone
	}
	if u.ContactEmail != nil {
		b.ContactEmail = *u.ContactEmail
	}
	if u.Participants != nil {
		b.Participants = *u.Participants
	}
	if u.Snacks != nil {
		b.Snacks = *u.Snacks
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	return b
}

// YearDocument groups all bookings of one calendar year.
type YearDocument struct {
	ID       string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Year     int       `json:"year" bson:"year"`
	Bookings []Booking `json:"bookings" bson:"bookings"`
}
