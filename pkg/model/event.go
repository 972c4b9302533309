package model

import "time"

const (
	EventGuideAssigned = "booking.guide_assigned"

	EventSchemaVersion = "1"
)

// GuideAssigned is published when a booking update assigns a guide who can
// be reached by e-mail.
type GuideAssigned struct {
	BookingID     string    `json:"bookingId"`
	Title         string    `json:"title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Guide         string    `json:"guide"`
	GuideEmail    string    `json:"guideEmail"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	ContactPhone  string    `json:"contactPhone,omitempty"`
	Participants  int       `json:"participants"`
	Snacks        bool      `json:"snacks"`
	Description   string    `json:"description,omitempty"`
	AssignedBy    string    `json:"assignedBy,omitempty"`
}

func NewGuideAssigned(b *Booking, guideEmail, actor string) GuideAssigned {
	return GuideAssigned{
		BookingID:     b.ID,
		Title:         b.Title,
		Start:         b.Start,
		End:           b.End,
		Guide:         b.Guide,
		GuideEmail:    guideEmail,
		ContactPerson: b.ContactPerson,
		ContactPhone:  b.ContactPhone,
		Participants:  b.Participants,
		Snacks:        b.Snacks,
		Description:   b.Description,
		AssignedBy:    actor,
	}
}
