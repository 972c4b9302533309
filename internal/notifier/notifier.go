// Package notifier mails guides about the tours they were assigned to.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"sandgrund/pkg/kafka"
	"sandgrund/pkg/logger"
	"sandgrund/pkg/mailer"
	"sandgrund/pkg/model"
)

const timeLayout = "Mon 2 Jan 2006 15:04"

type Notifier struct {
	mail     mailer.Sender
	location *time.Location
	log      *logger.Logger
}

// New renders times in loc; nil means UTC.
func New(mail mailer.Sender, loc *time.Location, log *logger.Logger) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{mail: mail, location: loc, log: log}
}

// Handle is a kafka.MessageHandler. Events other than guide assignments are
// acknowledged without side effects.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	if msg.GetEventType() != model.EventGuideAssigned {
		n.log.Debug("Skipping event", "event_type", msg.GetEventType(), "event_id", msg.GetEventID())
		return nil
	}

	var event model.GuideAssigned
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("invalid guide_assigned payload", err)
	}
	if strings.TrimSpace(event.GuideEmail) == "" {
		return kafka.NewPermanentError(fmt.Sprintf("booking %s has no guide e-mail", event.BookingID), nil)
	}

	if err := n.mail.Send(ctx, n.compose(event)); err != nil {
		return classify(err)
	}

	n.log.Info("Guide notified", "booking_id", event.BookingID, "guide", event.Guide, "correlation_id", msg.GetCorrelationID())
	return nil
}

// classify retries rate limits, 5xx responses and transport failures.
// Other API rejections will not succeed on resend.
func classify(err error) error {
	var statusErr *mailer.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Temporary() {
			return kafka.NewTransientError("mail API unavailable", err)
		}
		return kafka.NewPermanentError("mail API rejected message", err)
	}
	return kafka.NewTransientError("mail delivery failed", err)
}

func (n *Notifier) compose(e model.GuideAssigned) mailer.Mail {
	start := e.Start.In(n.location)
	end := e.End.In(n.location)

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(e.Guide))
	fmt.Fprintf(&b, "<p>you have been assigned to <strong>%s</strong>.</p><ul>", html.EscapeString(e.Title))
	fmt.Fprintf(&b, "<li>When: %s to %s</li>", start.Format(timeLayout), end.Format("15:04"))
	fmt.Fprintf(&b, "<li>Participants: %d</li>", e.Participants)
	if e.Snacks {
		b.WriteString("<li>Snacks are ordered</li>")
	}
	if e.ContactPerson != "" {
		fmt.Fprintf(&b, "<li>Contact: %s %s</li>", html.EscapeString(e.ContactPerson), html.EscapeString(e.ContactPhone))
	}
	b.WriteString("</ul>")
	if e.Description != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(e.Description))
	}

	return mailer.Mail{
		To:       e.GuideEmail,
		ToName:   e.Guide,
		Subject:  fmt.Sprintf("New tour: %s, %s", e.Title, start.Format("2 Jan")),
		HTMLBody: b.String(),
	}
}
